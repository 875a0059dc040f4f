package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/ports"
)

// Fixtures describes the stores a test run starts with.
type Fixtures struct {
	Stores []StoreFixture `yaml:"stores" json:"stores" validate:"dive"`

	// dir anchors relative file references; set by Load.
	dir string
}

// StoreFixture seeds one named store.
type StoreFixture struct {
	Name    string          `yaml:"name" json:"name" validate:"required"`
	Objects []ObjectFixture `yaml:"objects" json:"objects,omitempty" validate:"dive"`
}

// ObjectFixture seeds one object. Exactly one of Data and File supplies
// the body: Data inline, File from disk relative to the fixture file.
type ObjectFixture struct {
	Key      string `yaml:"key" json:"key" validate:"required"`
	Data     string `yaml:"data" json:"data,omitempty" validate:"excluded_with=File"`
	File     string `yaml:"file" json:"file,omitempty" validate:"excluded_with=Data"`
	Metadata string `yaml:"metadata" json:"metadata,omitempty"`
}

// Parse unmarshals and validates a fixture document.
func Parse(raw []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return &f, nil
}

// Load reads and parses a fixture file. Relative file references inside
// the document resolve against the file's directory.
func Load(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Apply creates every store and inserts every seed object into the
// backend. Object keys are validated the same way guest-supplied keys
// are; a bad fixture key fails the whole apply.
func (f *Fixtures) Apply(backend ports.ObjectBackend) error {
	for _, sf := range f.Stores {
		store := entities.StoreKey(sf.Name)
		if err := backend.CreateStore(store); err != nil {
			return fmt.Errorf("failed to create store %q: %w", sf.Name, err)
		}
		for _, of := range sf.Objects {
			key, err := entities.NewObjectKey(of.Key)
			if err != nil {
				return fmt.Errorf("store %q: invalid key %q: %w", sf.Name, of.Key, err)
			}
			body, err := f.objectBody(of)
			if err != nil {
				return fmt.Errorf("store %q, key %q: %w", sf.Name, of.Key, err)
			}
			opts := ports.InsertOptions{Mode: entities.InsertOverwrite}
			if of.Metadata != "" {
				opts.Metadata = []byte(of.Metadata)
			}
			if err := backend.Insert(store, key, body, opts); err != nil {
				return fmt.Errorf("store %q, key %q: %w", sf.Name, of.Key, err)
			}
		}
	}
	return nil
}

func (f *Fixtures) objectBody(of ObjectFixture) ([]byte, error) {
	if of.File == "" {
		return []byte(of.Data), nil
	}
	path := of.File
	if !filepath.IsAbs(path) && f.dir != "" {
		path = filepath.Join(f.dir, path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return body, nil
}
