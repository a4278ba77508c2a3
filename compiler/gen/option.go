package gen

import (
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/entforge/entforge/rules"
)

// Config carries the engine configuration.
type Config struct {
	// Target is the output directory for generated files.
	Target string
	// Package is the output package name. Defaults to the target
	// directory's base name.
	Package string
	// Header is the first header-comment line of every generated file.
	Header string
	// Tables are the rule tables every generator reads. Defaults to the
	// embedded tables.
	Tables *rules.Tables
	// Registry holds the pattern generators. Defaults to DefaultRegistry.
	Registry *Registry
	// Workers bounds parallel type generation.
	Workers int
	// Logger receives engine progress events. Nop by default.
	Logger zerolog.Logger
}

// Option configures the engine.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the output package name.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTables sets the rule tables for this engine, overriding the
// process-wide defaults.
func WithTables(t *rules.Tables) Option {
	return func(c *Config) error {
		if t == nil {
			return NewConfigError("Tables", nil, "tables cannot be nil")
		}
		c.Tables = t
		return nil
	}
}

// WithRegistry sets a custom generator registry.
func WithRegistry(r *Registry) Option {
	return func(c *Config) error {
		if r == nil || len(r.Generators()) == 0 {
			return NewConfigError("Registry", nil, "registry must hold at least one generator")
		}
		c.Registry = r
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config. It returns the first error
// encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a Config with defaults applied, then the options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:  "Code generated by entforge. DO NOT EDIT.",
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zerolog.Nop(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Tables == nil {
		c.Tables = rules.Default()
	}
	if c.Registry == nil {
		c.Registry = DefaultRegistry()
	}
	if c.Package == "" && c.Target != "" {
		c.Package = filepath.Base(c.Target)
	}
	return c, nil
}
