package vm

import (
	"sync/atomic"
)

// Default growth factors.
const (
	DefaultStringGrowth   = 16
	DefaultArrayGrowth    = 5
	DefaultRawArrayGrowth = 4
)

// Settings holds process-wide defaults applied to newly constructed
// containers. Containers copy what they need at construction, so changing
// the settings never affects existing instances.
type Settings struct {
	StringGrowth   int // CharacterBuffer growth factor
	ArrayGrowth    int // ReferenceArray growth factor
	RawArrayGrowth int // RawArray growth factor

	Bytes Heap[byte]   // backs strings and raw arrays
	Refs  Heap[Object] // backs reference arrays

	Threads ThreadService // runs Thread routines
}

// DefaultSettings returns the built-in defaults backed by the Go heap.
func DefaultSettings() Settings {
	return Settings{
		StringGrowth:   DefaultStringGrowth,
		ArrayGrowth:    DefaultArrayGrowth,
		RawArrayGrowth: DefaultRawArrayGrowth,
		Bytes:          GoHeap[byte]{},
		Refs:           GoHeap[Object]{},
		Threads:        GoroutineService{},
	}
}

var settings atomic.Pointer[Settings]

func init() {
	s := DefaultSettings()
	settings.Store(&s)
}

// Configure installs s as the process-wide settings. Zero or negative growth
// factors and nil heaps are replaced by their defaults.
func Configure(s Settings) {
	d := DefaultSettings()
	if s.StringGrowth <= 0 {
		s.StringGrowth = d.StringGrowth
	}
	if s.ArrayGrowth <= 0 {
		s.ArrayGrowth = d.ArrayGrowth
	}
	if s.RawArrayGrowth <= 0 {
		s.RawArrayGrowth = d.RawArrayGrowth
	}
	if s.Bytes == nil {
		s.Bytes = d.Bytes
	}
	if s.Refs == nil {
		s.Refs = d.Refs
	}
	if s.Threads == nil {
		s.Threads = d.Threads
	}
	settings.Store(&s)
}

// CurrentSettings returns a copy of the installed settings.
func CurrentSettings() Settings {
	return *settings.Load()
}

func current() *Settings {
	return settings.Load()
}
