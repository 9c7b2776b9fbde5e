package watchlist

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Store persists the watch-list between sessions.
type Store interface {
	// Load returns the saved symbols. A missing file is an empty list.
	Load() ([]string, error)
	Save(symbols []string) error
}

type document struct {
	Watchlist []string `yaml:"watchlist"`
}

// FileStore keeps the watch-list in a YAML file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		mu:   sync.Mutex{},
		path: path,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}

		return nil, errors.Wrapf(errors.ErrCodeWatchlistIOFailed, err, "failed to read watch-list %s", s.path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCorruptWatchlist, err, "watch-list %s is corrupt", s.path)
	}

	return Dedupe(doc.Watchlist), nil
}

// Save writes the list through a temp file so a crash never leaves a truncated watch-list.
func (s *FileStore) Save(symbols []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(document{Watchlist: Dedupe(symbols)})
	if err != nil {
		return errors.Wrap(errors.ErrCodeWatchlistIOFailed, "failed to encode watch-list", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeWatchlistIOFailed, "failed to create watch-list directory", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeWatchlistIOFailed, "failed to write watch-list", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeWatchlistIOFailed, "failed to replace watch-list", err)
	}

	return nil
}

// Dedupe normalises symbols and drops blanks and repeats, keeping first-seen order.
func Dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))

	for _, symbol := range symbols {
		normalized := types.NormalizeSymbol(symbol)
		if normalized == "" {
			continue
		}

		if _, ok := seen[normalized]; ok {
			continue
		}

		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}

	return out
}

// MemoryStore is a Store without a backing file.
type MemoryStore struct {
	mu      sync.Mutex
	symbols []string
}

func NewMemoryStore(symbols ...string) *MemoryStore {
	return &MemoryStore{
		mu:      sync.Mutex{},
		symbols: Dedupe(symbols),
	}
}

func (s *MemoryStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.symbols...), nil
}

func (s *MemoryStore) Save(symbols []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.symbols = Dedupe(symbols)

	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
