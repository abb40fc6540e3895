// Package config loads optional YAML defaults for the primes CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/dbtrnl/primes/pkg/batch"
)

// DefaultFile is read when no explicit config path is given.
const DefaultFile = ".primes.yaml"

// File mirrors the YAML config file.
type File struct {
	// Op is the default batch operation.
	Op string `yaml:"op,omitempty"`

	// Workers is the default batch concurrency; 0 means one per CPU.
	Workers int `yaml:"workers,omitempty"`

	// JSON enables JSON output.
	JSON bool `yaml:"json,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Load reads the config at path. A missing file is not an error when
// path is DefaultFile; an explicitly named file must exist.
func Load(path string) (*File, error) {
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultFile {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return f, nil
}

// Validate checks field values.
func (f *File) Validate() error {
	if f.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if f.Op != "" {
		if _, err := batch.ParseOp(f.Op); err != nil {
			return err
		}
	}
	return nil
}
