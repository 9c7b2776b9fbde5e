package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/stretchr/testify/suite"
)

type SessionManagerTestSuite struct {
	suite.Suite
	tempDir string
	logger  *logger.Logger
	newYork *time.Location
}

func (s *SessionManagerTestSuite) SetupSuite() {
	s.logger = logger.NewNopLogger()

	location, err := time.LoadLocation("America/New_York")
	s.Require().NoError(err)
	s.newYork = location
}

func (s *SessionManagerTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
}

func TestSessionManagerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionManagerTestSuite))
}

func (s *SessionManagerTestSuite) TestInitialize_FirstRun() {
	sm := NewSessionManager(s.newYork, s.logger)
	start := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	s.Require().NoError(sm.Initialize(s.tempDir, start))

	s.Equal("run_1", sm.GetRunID())
	s.Equal("2026-03-02", sm.GetCurrentDate())
	s.Equal(start, sm.GetSessionStart())

	expected := filepath.Join(s.tempDir, "2026-03-02", "run_1")
	s.Equal(expected, sm.GetCurrentRunPath())
	s.DirExists(expected)
	s.Equal(filepath.Join(expected, TransactionsFileName), sm.GetFilePath(TransactionsFileName))
}

func (s *SessionManagerTestSuite) TestInitialize_NextRunNumber() {
	for _, name := range []string{"run_1", "run_3", "notes", "run_x"} {
		s.Require().NoError(os.MkdirAll(filepath.Join(s.tempDir, "2026-03-02", name), 0755))
	}

	sm := NewSessionManager(s.newYork, s.logger)
	s.Require().NoError(sm.Initialize(s.tempDir, time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)))
	s.Equal("run_4", sm.GetRunID())
}

func (s *SessionManagerTestSuite) TestDateUsesMarketZone() {
	sm := NewSessionManager(s.newYork, s.logger)

	// 01:00 UTC on the 3rd is still the 2nd in New York
	s.Require().NoError(sm.Initialize(s.tempDir, time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)))
	s.Equal("2026-03-02", sm.GetCurrentDate())
}

func (s *SessionManagerTestSuite) TestHandleDateBoundary() {
	sm := NewSessionManager(nil, s.logger)
	start := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	s.Require().NoError(sm.Initialize(s.tempDir, start))

	changed, err := sm.HandleDateBoundary(start.Add(time.Hour))
	s.NoError(err)
	s.False(changed)

	changed, err = sm.HandleDateBoundary(start.Add(24 * time.Hour))
	s.NoError(err)
	s.True(changed)
	s.Equal("2026-03-03", sm.GetCurrentDate())
	s.Equal("run_1", sm.GetRunID())
	s.DirExists(filepath.Join(s.tempDir, "2026-03-03", "run_1"))
}
