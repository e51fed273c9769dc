package ebench

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ZipWorkload describes a zip run:
// one interval source per entry in Sources,
// zipped together until Count rows have been joined.
type ZipWorkload struct {
	// Scheduler worker count; zero means one per CPU.
	Workers int `yaml:"workers"`

	Sources []IntervalSource `yaml:"sources"`

	Count int `yaml:"count"`
}

// IntervalSource is one interval source of a [ZipWorkload].
type IntervalSource struct {
	Name   string        `yaml:"name"`
	Period time.Duration `yaml:"period"`
}

// LoadZipWorkload decodes a YAML zip workload from r and validates it.
func LoadZipWorkload(r io.Reader) (ZipWorkload, error) {
	var wl ZipWorkload

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&wl); err != nil {
		return ZipWorkload{}, fmt.Errorf("failed to decode zip workload: %w", err)
	}

	if err := wl.Validate(); err != nil {
		return ZipWorkload{}, err
	}

	return wl, nil
}

// LoadZipWorkloadFile is [LoadZipWorkload] reading from the named file.
func LoadZipWorkloadFile(path string) (ZipWorkload, error) {
	f, err := os.Open(path)
	if err != nil {
		return ZipWorkload{}, fmt.Errorf("failed to open zip workload: %w", err)
	}
	defer f.Close()

	return LoadZipWorkload(f)
}

// Validate reports every problem with wl at once.
func (wl ZipWorkload) Validate() error {
	var errs error

	if wl.Workers < 0 {
		errs = errors.Join(errs, fmt.Errorf("workers must not be negative (got %d)", wl.Workers))
	}

	if len(wl.Sources) == 0 {
		errs = errors.Join(errs, errors.New("at least one source is required"))
	}

	seen := make(map[string]bool, len(wl.Sources))
	for i, src := range wl.Sources {
		if src.Name == "" {
			errs = errors.Join(errs, fmt.Errorf("sources[%d]: name must not be empty", i))
		} else if seen[src.Name] {
			errs = errors.Join(errs, fmt.Errorf("sources[%d]: duplicate name %q", i, src.Name))
		}
		seen[src.Name] = true

		if src.Period <= 0 {
			errs = errors.Join(errs, fmt.Errorf("sources[%d]: period must be positive (got %s)", i, src.Period))
		}
	}

	if wl.Count < 0 {
		errs = errors.Join(errs, fmt.Errorf("count must not be negative (got %d)", wl.Count))
	}

	return errs
}
