package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ClockTestSuite struct {
	suite.Suite
	clock *USMarketClock
	ny    *time.Location
}

func TestClockTestSuite(t *testing.T) {
	suite.Run(t, new(ClockTestSuite))
}

func (s *ClockTestSuite) SetupTest() {
	config := DefaultConfig()
	config.ExtraClosures = []string{"2026-09-14"}

	clock, err := NewUSMarketClock(config)
	s.Require().NoError(err)
	s.clock = clock

	ny, err := time.LoadLocation("America/New_York")
	s.Require().NoError(err)
	s.ny = ny
}

func (s *ClockTestSuite) at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, s.ny)
}

func (s *ClockTestSuite) TestIsMarketClosed() {
	tests := []struct {
		name   string
		now    time.Time
		closed bool
	}{
		{name: "weekday morning", now: s.at(2026, time.March, 2, 10, 0), closed: false},
		{name: "at the open", now: s.at(2026, time.March, 2, 9, 30), closed: false},
		{name: "before the open", now: s.at(2026, time.March, 2, 9, 29), closed: true},
		{name: "last minute", now: s.at(2026, time.March, 2, 15, 59), closed: false},
		{name: "at the close", now: s.at(2026, time.March, 2, 16, 0), closed: true},
		{name: "evening", now: s.at(2026, time.March, 2, 20, 0), closed: true},
		{name: "saturday", now: s.at(2026, time.March, 7, 11, 0), closed: true},
		{name: "sunday", now: s.at(2026, time.March, 8, 11, 0), closed: true},
		{name: "independence day observed", now: s.at(2026, time.July, 3, 11, 0), closed: true},
		{name: "thanksgiving", now: s.at(2026, time.November, 26, 11, 0), closed: true},
		{name: "christmas", now: s.at(2026, time.December, 25, 11, 0), closed: true},
		{name: "configured closure", now: s.at(2026, time.September, 14, 11, 0), closed: true},
		{name: "good friday", now: s.at(2026, time.April, 3, 11, 0), closed: true},
		{name: "good friday next year", now: s.at(2027, time.March, 26, 11, 0), closed: true},
		{name: "friday before a saturday new year", now: s.at(2027, time.December, 31, 11, 0), closed: false},
		{name: "sunday new year observed monday", now: s.at(2023, time.January, 2, 11, 0), closed: true},
		{name: "new year", now: s.at(2027, time.January, 1, 11, 0), closed: true},
		{name: "day after thanksgiving", now: s.at(2026, time.November, 27, 11, 0), closed: false},
		{name: "utc input", now: time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC), closed: false},
		{name: "utc input after hours", now: time.Date(2026, time.March, 2, 21, 30, 0, 0, time.UTC), closed: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.closed, s.clock.IsMarketClosed(tt.now))
		})
	}
}

func (s *ClockTestSuite) TestInClosingWindow() {
	s.False(s.clock.InClosingWindow(s.at(2026, time.March, 2, 15, 57)))
	s.True(s.clock.InClosingWindow(s.at(2026, time.March, 2, 15, 58)))
	s.True(s.clock.InClosingWindow(s.at(2026, time.March, 2, 15, 59)))
	s.False(s.clock.InClosingWindow(s.at(2026, time.March, 2, 16, 0)))
	s.False(s.clock.InClosingWindow(s.at(2026, time.March, 7, 15, 58)))
}

func (s *ClockTestSuite) TestInOpeningSwing() {
	s.False(s.clock.InOpeningSwing(s.at(2026, time.March, 2, 9, 0)))
	s.True(s.clock.InOpeningSwing(s.at(2026, time.March, 2, 9, 30)))
	s.True(s.clock.InOpeningSwing(s.at(2026, time.March, 2, 10, 14)))
	s.False(s.clock.InOpeningSwing(s.at(2026, time.March, 2, 10, 15)))
	s.False(s.clock.InOpeningSwing(s.at(2026, time.March, 7, 9, 45)))
}

func (s *ClockTestSuite) TestInvalidConfig() {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown location", mutate: func(c *Config) { c.Location = "Mars/Olympus" }},
		{name: "bad open", mutate: func(c *Config) { c.Open = "9.30" }},
		{name: "open after close", mutate: func(c *Config) { c.Open = "17:00" }},
		{name: "bad closure", mutate: func(c *Config) { c.ExtraClosures = []string{"04/03/2026"} }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			config := DefaultConfig()
			tt.mutate(&config)

			_, err := NewUSMarketClock(config)
			s.Error(err)
		})
	}
}
