package options

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spacebear01/osbc/internal/conventions"
	"github.com/spacebear01/osbc/internal/model"
)

// YAMLStore persists option values as one YAML file per bot inside a
// directory.
type YAMLStore struct {
	fsys fs.FS
	dir  string
}

// NewYAMLStore returns a store rooted at the given directory.
func NewYAMLStore(dir string) *YAMLStore {
	return &YAMLStore{fsys: os.DirFS(dir), dir: dir}
}

// Load reads the saved values for the named bot. Returns ErrNotFound when the
// bot has no saved options.
func (s *YAMLStore) Load(ctx context.Context, botName string) (Values, error) {
	data, err := fs.ReadFile(s.fsys, botName+conventions.OptionsFileExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("options for %q: %w", botName, model.ErrNotFound)
		}
		return nil, fmt.Errorf("reading options file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var values Values
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return values, nil
}

// Save writes the values for the named bot, creating the directory if needed.
func (s *YAMLStore) Save(ctx context.Context, botName string, values Values) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating options directory: %w", err)
	}

	path := filepath.Join(s.dir, botName+conventions.OptionsFileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing options file: %w", err)
	}

	return nil
}
