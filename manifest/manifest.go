// Package manifest handles rtcore.toml runtime configuration.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/rtcore/vm"
)

// FileName is the name of the configuration file.
const FileName = "rtcore.toml"

// ErrInvalid is wrapped by validation failures.
var ErrInvalid = errors.New("invalid manifest")

// Manifest represents an rtcore.toml configuration.
type Manifest struct {
	Runtime Runtime `toml:"runtime"`
	Heap    Heap    `toml:"heap"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the rtcore.toml file (set at load time).
	Dir string `toml:"-"`
}

// Runtime configures container defaults.
type Runtime struct {
	StringGrowth   int `toml:"string-growth"`
	ArrayGrowth    int `toml:"array-growth"`
	RawArrayGrowth int `toml:"raw-array-growth"`
}

// Heap configures the allocator.
type Heap struct {
	Count bool `toml:"count"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no rtcore.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

// Load parses an rtcore.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// Parse decodes and validates configuration text. Missing values take
// their defaults.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrInvalid, undecoded[0])
	}
	if err := m.validate(md); err != nil {
		return nil, err
	}
	m.applyDefaults()
	return &m, nil
}

// FindAndLoad walks up from startDir to find an rtcore.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) validate(md toml.MetaData) error {
	checks := []struct {
		key   string
		value int
	}{
		{"string-growth", m.Runtime.StringGrowth},
		{"array-growth", m.Runtime.ArrayGrowth},
		{"raw-array-growth", m.Runtime.RawArrayGrowth},
	}
	for _, c := range checks {
		if md.IsDefined("runtime", c.key) && c.value <= 0 {
			return fmt.Errorf("%w: runtime.%s must be positive, got %d", ErrInvalid, c.key, c.value)
		}
	}
	if m.Log.Verbosity < 0 {
		return fmt.Errorf("%w: log.verbosity cannot be negative", ErrInvalid)
	}
	return nil
}

func (m *Manifest) applyDefaults() {
	if m.Runtime.StringGrowth == 0 {
		m.Runtime.StringGrowth = vm.DefaultStringGrowth
	}
	if m.Runtime.ArrayGrowth == 0 {
		m.Runtime.ArrayGrowth = vm.DefaultArrayGrowth
	}
	if m.Runtime.RawArrayGrowth == 0 {
		m.Runtime.RawArrayGrowth = vm.DefaultRawArrayGrowth
	}
}

// LogPath returns the absolute log file path, or nil to log to stderr.
func (m *Manifest) LogPath() *string {
	if m.Log.File == "" {
		return nil
	}
	p := m.Log.File
	if !filepath.IsAbs(p) && m.Dir != "" {
		p = filepath.Join(m.Dir, p)
	}
	return &p
}

// Settings converts the manifest into runtime settings. When heap counting
// is enabled the returned heaps are *vm.CountingHeap values.
func (m *Manifest) Settings() vm.Settings {
	s := vm.DefaultSettings()
	s.StringGrowth = m.Runtime.StringGrowth
	s.ArrayGrowth = m.Runtime.ArrayGrowth
	s.RawArrayGrowth = m.Runtime.RawArrayGrowth
	if m.Heap.Count {
		s.Bytes = vm.NewCountingHeap[byte](nil)
		s.Refs = vm.NewCountingHeap[vm.Object](nil)
	}
	return s
}
