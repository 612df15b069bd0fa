package settings

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// Store holds site options keyed by option name. It is read only once loaded.
type Store struct {
	options map[string]map[string]any
}

type document struct {
	Options map[string]map[string]any `yaml:"options"`
}

// Load reads a YAML settings file. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(nil), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Store, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return New(doc.Options), nil
}

func New(options map[string]map[string]any) *Store {
	if options == nil {
		options = map[string]map[string]any{}
	}
	return &Store{options: options}
}

// Option returns a copy of the stored mapping for key.
func (s *Store) Option(key string) (map[string]any, bool) {
	option, ok := s.options[key]
	if !ok || option == nil {
		return nil, false
	}
	return maps.Clone(option), true
}
