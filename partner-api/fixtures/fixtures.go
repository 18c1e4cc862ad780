package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed data/*.json
var embedded embed.FS

// ErrMissing is returned when a fixture file does not exist.
var ErrMissing = errors.New("fixture not found")

// Store reads partner fixtures on every call, so files under a data
// directory can be edited while the server runs.
type Store struct {
	fsys fs.FS
}

// New serves fixtures from dir, or the embedded set when dir is empty.
func New(dir string) *Store {
	if dir == "" {
		sub, _ := fs.Sub(embedded, "data")
		return &Store{fsys: sub}
	}
	return &Store{fsys: os.DirFS(dir)}
}

func NewFromFS(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Decode unmarshals the named fixture into v.
func (s *Store) Decode(name string, v any) error {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissing, name)
		}
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}
