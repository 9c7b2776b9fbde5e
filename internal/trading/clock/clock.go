package clock

import (
	"fmt"
	"time"
	// Embedded zone database so America/New_York resolves on minimal images.
	_ "time/tzdata"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/us"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

// Config describes the trading session.
type Config struct {
	Location string `yaml:"location" json:"location" jsonschema:"default=America/New_York"`
	// Open, Close, CloseOut and OpeningSwingEnd are HH:MM wall-clock times in Location.
	Open            string `yaml:"open" json:"open" jsonschema:"default=09:30"`
	Close           string `yaml:"close" json:"close" jsonschema:"default=16:00"`
	CloseOut        string `yaml:"close_out" json:"close_out" jsonschema:"default=15:58"`
	OpeningSwingEnd string `yaml:"opening_swing_end" json:"opening_swing_end" jsonschema:"default=10:15"`
	// ExtraClosures are YYYY-MM-DD dates the exchange is closed beyond the fixed holiday set.
	ExtraClosures []string `yaml:"extra_closures" json:"extra_closures"`
}

// DefaultConfig returns the regular US equity session.
func DefaultConfig() Config {
	return Config{
		Location:        "America/New_York",
		Open:            "09:30",
		Close:           "16:00",
		CloseOut:        "15:58",
		OpeningSwingEnd: "10:15",
		ExtraClosures:   []string{},
	}
}

var (
	// New Year falling on a Saturday is not observed.
	exchangeNewYear = aa.NewYear.Clone(&cal.Holiday{
		Name:     "New Year's Day",
		Type:     cal.ObservancePublic,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 1}},
	})
	exchangeGoodFriday = aa.GoodFriday.Clone(&cal.Holiday{Name: "Good Friday", Type: cal.ObservanceOther})
)

// USMarketClock answers session questions for US equities.
type USMarketClock struct {
	location        *time.Location
	open            time.Duration
	close           time.Duration
	closeOut        time.Duration
	openingSwingEnd time.Duration
	calendar        *cal.BusinessCalendar
	closures        map[string]struct{}
}

// NewUSMarketClock builds the clock from config.
func NewUSMarketClock(config Config) (*USMarketClock, error) {
	location, err := time.LoadLocation(config.Location)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown location %q", config.Location)
	}

	offsets := make([]time.Duration, 4)
	for i, s := range []string{config.Open, config.Close, config.CloseOut, config.OpeningSwingEnd} {
		offsets[i], err = parseClock(s)
		if err != nil {
			return nil, err
		}
	}

	if offsets[0] >= offsets[1] {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "open %s is not before close %s", config.Open, config.Close)
	}

	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(
		exchangeNewYear,
		us.MlkDay,
		us.PresidentsDay,
		exchangeGoodFriday,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)

	closures := make(map[string]struct{}, len(config.ExtraClosures))
	for _, d := range config.ExtraClosures {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid closure date %q", d)
		}

		closures[d] = struct{}{}
	}

	return &USMarketClock{
		location:        location,
		open:            offsets[0],
		close:           offsets[1],
		closeOut:        offsets[2],
		openingSwingEnd: offsets[3],
		calendar:        calendar,
		closures:        closures,
	}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid time of day %q", s)
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// sinceMidnight returns now in the exchange zone and its offset into the day.
func (c *USMarketClock) sinceMidnight(now time.Time) (time.Time, time.Duration) {
	local := now.In(c.location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.location)

	return local, local.Sub(midnight)
}

// IsTradingDay reports whether the exchange opens at all on now's date.
func (c *USMarketClock) IsTradingDay(now time.Time) bool {
	local := now.In(c.location)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	if _, closed := c.closures[local.Format("2006-01-02")]; closed {
		return false
	}

	_, observed, _ := c.calendar.IsHoliday(local)

	return !observed
}

// IsMarketClosed is true on weekends, holidays and outside [open, close).
func (c *USMarketClock) IsMarketClosed(now time.Time) bool {
	if !c.IsTradingDay(now) {
		return true
	}

	_, offset := c.sinceMidnight(now)

	return offset < c.open || offset >= c.close
}

// InClosingWindow is true from the close-out time until the close on trading days.
func (c *USMarketClock) InClosingWindow(now time.Time) bool {
	if !c.IsTradingDay(now) {
		return false
	}

	_, offset := c.sinceMidnight(now)

	return offset >= c.closeOut && offset < c.close
}

// InOpeningSwing is true from the open until the end of the opening swing on trading days.
func (c *USMarketClock) InOpeningSwing(now time.Time) bool {
	if c.IsMarketClosed(now) {
		return false
	}

	_, offset := c.sinceMidnight(now)

	return offset < c.openingSwingEnd
}

// String describes the session.
func (c *USMarketClock) String() string {
	return fmt.Sprintf("%s %s-%s", c.location, c.open, c.close)
}
