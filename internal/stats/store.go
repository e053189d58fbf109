package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gap "github.com/muesli/go-app-paths"
)

// ErrIsDir is returned when the stats path points at a directory.
var ErrIsDir = errors.New("stats path is a directory")

// DecodeError reports a stats file that exists but cannot be parsed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode stats file %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Store persists the card stats map.
type Store interface {
	// Load returns every stored entry. An uninitialized store returns an
	// empty map and no error.
	Load(ctx context.Context) (map[string]CardStats, error)

	// Save replaces the stored entries with stats.
	Save(ctx context.Context, stats map[string]CardStats) error
}

// fileDocument is the JSON layout of the stats file.
type fileDocument struct {
	CardStats map[string]CardStats `json:"card_stats"`
}

// FileStore keeps stats in a single JSON document.
type FileStore struct {
	Path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the stats file. A missing file yields empty stats.
func (f *FileStore) Load(_ context.Context) (map[string]CardStats, error) {
	info, err := os.Stat(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]CardStats), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat stats file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrIsDir)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read stats file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Path: f.Path, Err: err}
	}
	if doc.CardStats == nil {
		doc.CardStats = make(map[string]CardStats)
	}
	return doc.CardStats, nil
}

// Save writes the stats file, creating parent directories as needed. The
// file is replaced atomically.
func (f *FileStore) Save(_ context.Context, stats map[string]CardStats) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create stats dir: %w", err)
	}

	data, err := json.MarshalIndent(fileDocument{CardStats: stats}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stats-*.json")
	if err != nil {
		return fmt.Errorf("create temp stats file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write stats: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close stats: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace stats file: %w", err)
	}
	return nil
}

// DefaultPath resolves the stats file path: CARDIZ_STATS when set,
// otherwise stats.json in the per-user config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv("CARDIZ_STATS"); p != "" {
		return p, nil
	}
	scope := gap.NewScope(gap.User, "cardiz")
	p, err := scope.ConfigPath("stats.json")
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return p, nil
}
