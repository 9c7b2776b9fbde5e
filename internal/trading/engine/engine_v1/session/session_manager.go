package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	TransactionsFileName = "transactions.parquet"
	StatsFileName        = "stats.yaml"
)

var runPattern = regexp.MustCompile(`^run_(\d+)$`)

// SessionManager owns the run folder of a trading session:
//
//	{dataOutputPath}/{YYYY-MM-DD}/run_N/
//
// Dates are taken in the market's time zone so a session never splits at UTC midnight.
type SessionManager struct {
	dataOutputPath string
	runID          string
	runNumber      int
	sessionStart   time.Time
	currentDate    string
	currentRunPath string
	location       *time.Location
	mu             sync.Mutex
	logger         *logger.Logger
}

// NewSessionManager creates a SessionManager. A nil location means UTC.
func NewSessionManager(location *time.Location, log *logger.Logger) *SessionManager {
	if location == nil {
		location = time.UTC
	}

	return &SessionManager{
		dataOutputPath: "",
		runID:          "",
		runNumber:      0,
		sessionStart:   time.Time{},
		currentDate:    "",
		currentRunPath: "",
		location:       location,
		mu:             sync.Mutex{},
		logger:         log.Named("session"),
	}
}

// Initialize picks the next run number for the day of start and creates its folder.
func (s *SessionManager) Initialize(dataOutputPath string, start time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataOutputPath = dataOutputPath
	s.sessionStart = start
	s.currentDate = start.In(s.location).Format(dateLayout)

	runNumber, err := s.nextRunNumber(s.currentDate)
	if err != nil {
		return err
	}

	s.runNumber = runNumber
	s.runID = fmt.Sprintf("run_%d", runNumber)

	if err := s.createRunFolder(); err != nil {
		return err
	}

	s.logger.Info("Session initialized",
		zap.String("run_id", s.runID),
		zap.String("date", s.currentDate),
		zap.String("path", s.currentRunPath),
	)

	return nil
}

//nolint:funcorder // helper method used by Initialize
func (s *SessionManager) nextRunNumber(date string) (int, error) {
	entries, err := os.ReadDir(filepath.Join(s.dataOutputPath, date))
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}

		return 0, errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to read date directory", err)
	}

	highest := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		matches := runPattern.FindStringSubmatch(entry.Name())
		if len(matches) != 2 {
			continue
		}

		if num, err := strconv.Atoi(matches[1]); err == nil && num > highest {
			highest = num
		}
	}

	return highest + 1, nil
}

//nolint:funcorder // helper method used by Initialize and HandleDateBoundary
func (s *SessionManager) createRunFolder() error {
	s.currentRunPath = filepath.Join(s.dataOutputPath, s.currentDate, s.runID)

	if err := os.MkdirAll(s.currentRunPath, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeLedgerWriteFailed, "failed to create run folder", err)
	}

	return nil
}

// HandleDateBoundary moves to a new date folder, keeping the run id, when now falls on a later day.
// It reports whether the folder changed.
func (s *SessionManager) HandleDateBoundary(now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newDate := now.In(s.location).Format(dateLayout)
	if newDate == s.currentDate {
		return false, nil
	}

	oldDate := s.currentDate
	s.currentDate = newDate

	if err := s.createRunFolder(); err != nil {
		return false, err
	}

	s.logger.Info("Date boundary crossed",
		zap.String("old_date", oldDate),
		zap.String("new_date", newDate),
		zap.String("new_path", s.currentRunPath),
	)

	return true, nil
}

func (s *SessionManager) GetCurrentRunPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentRunPath
}

// GetRunID returns the session run ID (e.g., "run_1").
func (s *SessionManager) GetRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runID
}

func (s *SessionManager) GetSessionStart() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessionStart
}

// GetCurrentDate returns the current date in YYYY-MM-DD format.
func (s *SessionManager) GetCurrentDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentDate
}

// GetFilePath returns the full path for a file in the current run folder.
func (s *SessionManager) GetFilePath(filename string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return filepath.Join(s.currentRunPath, filename)
}
