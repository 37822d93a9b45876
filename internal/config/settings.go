package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the interpreter configuration read from quandary.yaml.
// Command line flags override whatever the file provides.
type Settings struct {
	// GC selects the memory manager (NoGC, MarkSweep, Explicit, RefCount).
	// Only NoGC is implemented.
	GC string `yaml:"gc"`

	// HeapSize is the heap capacity in bytes. Must be a positive multiple of 8.
	HeapSize int64 `yaml:"heapSize"`

	// LockTimeout bounds how long acq() waits for a cell lock (e.g. "50ms").
	LockTimeout time.Duration `yaml:"lockTimeout"`

	// MaxDepth bounds evaluator recursion per thread.
	MaxDepth int `yaml:"maxDepth"`

	// Logic is "eager" (both operands of && and || are evaluated) or
	// "short-circuit".
	Logic string `yaml:"logic"`

	// DetectRaces reports unlocked writes to the same cell field from both
	// sides of a concurrent expression as a data race.
	DetectRaces bool `yaml:"detectRaces"`

	// Seed fixes the randomInt source. Nil means seeded from the clock.
	Seed *int64 `yaml:"seed,omitempty"`

	// Journal is the path of a SQLite database recording each run.
	Journal string `yaml:"journal,omitempty"`

	// Trace enables structured evaluator logging on stderr.
	Trace bool `yaml:"trace"`
}

// Default returns the settings used when no file and no flags are given.
func Default() Settings {
	return Settings{
		GC:          DefaultGC,
		HeapSize:    DefaultHeapSize,
		LockTimeout: DefaultLockTimeoutMs * time.Millisecond,
		MaxDepth:    DefaultMaxDepth,
		Logic:       DefaultLogic,
	}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads a settings file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	return Parse(data)
}

// Locate picks the settings file: the explicit path, then $QUANDARY_CONFIG,
// then ./quandary.yaml if it exists. Returns "" when there is none.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env
	}
	if info, err := os.Stat(DefaultConfigFile); err == nil && !info.IsDir() {
		return DefaultConfigFile
	}
	return ""
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.HeapSize <= 0 || s.HeapSize%WordSize != 0 {
		return fmt.Errorf("settings: heap size %d must be a positive multiple of %d", s.HeapSize, WordSize)
	}
	if s.LockTimeout < 0 {
		return fmt.Errorf("settings: negative lock timeout %s", s.LockTimeout)
	}
	if s.MaxDepth <= 0 {
		return fmt.Errorf("settings: maxDepth must be positive, got %d", s.MaxDepth)
	}
	switch s.Logic {
	case LogicEager, LogicShortCircuit:
	default:
		return fmt.Errorf("settings: unknown logic mode %q", s.Logic)
	}
	return nil
}

// ShortCircuit reports whether && and || skip their right operand when
// the left one decides the result.
func (s Settings) ShortCircuit() bool {
	return s.Logic == LogicShortCircuit
}
