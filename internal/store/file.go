package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one JSON document per namespace on disk.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// DefaultDir returns $XDG_DATA_HOME/wavemaster, falling back to
// ~/.local/share/wavemaster.
func DefaultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "wavemaster"), nil
}

// OpenFileStore prepares dir for writing and checks that any existing
// document is readable. An empty dir means DefaultDir.
func OpenFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dir = d
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &FileStore{
		path:   filepath.Join(dir, Namespace+".json"),
		logger: logger,
	}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	logger.Info("store opened", "path", s.path)
	return s, nil
}

var _ Store = (*FileStore)(nil)

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) HighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	return rec.HighScore, err
}

func (s *FileStore) SetHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	rec.HighScore = score
	return s.save(rec)
}

func (s *FileStore) Leaderboard() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	return rec.Leaderboard, err
}

func (s *FileStore) AppendScore(e Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	rec.Leaderboard = insert(rec.Leaderboard, e)
	if err := s.save(rec); err != nil {
		return nil, err
	}
	return clone(rec.Leaderboard), nil
}

// load reads the document. A missing file is an empty record.
func (s *FileStore) load() (record, error) {
	var rec record
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return rec, nil
}

// save writes the document through a temp file so a crash never leaves it
// half written.
func (s *FileStore) save(rec record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	s.logger.Debug("store saved", "path", s.path, "high_score", rec.HighScore, "entries", len(rec.Leaderboard))
	return nil
}
