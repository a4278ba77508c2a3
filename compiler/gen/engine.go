package gen

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/entforge/entforge/compiler/load"
)

// Engine runs the pattern generators over a parsed spec.
type Engine struct {
	cfg *Config
}

// New creates an engine from the given options.
func New(opts ...Option) (*Engine, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Generate produces one file per descriptor. Types are generated in
// parallel; within a type, generation is synchronous and pure. The
// returned files follow the spec's type order regardless of which worker
// finished first. Context cancellation is consulted between types only.
func (e *Engine) Generate(ctx context.Context, spec *load.Spec) ([]*File, error) {
	files := make([]*File, len(spec.Types))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(e.cfg.Workers)
	for i, t := range spec.Types {
		i, t := i, t
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := e.generateType(t)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Write generates the spec and writes every file under the target
// directory.
func (e *Engine) Write(ctx context.Context, spec *load.Spec) error {
	if e.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory")
	}
	files, err := e.Generate(ctx, spec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(e.cfg.Target, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		path := filepath.Join(e.cfg.Target, f.Name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return err
		}
		e.cfg.Logger.Info().Str("file", path).Msg("wrote generated file")
	}
	return nil
}

// generateType fans one descriptor out to every applicable generator,
// validates the composition, and emits the merged file.
func (e *Engine) generateType(t *load.TypeDescriptor) (*File, error) {
	var (
		artifacts []*Artifact
		levels    = make(map[string]int)
	)
	for _, g := range e.cfg.Registry.Generators() {
		if !g.Applies(t) {
			continue
		}
		a, err := g.Generate(t, e.cfg.Tables)
		if err != nil {
			return nil, &GenerationError{Type: t.Name, Generator: g.Name(), Cause: err}
		}
		artifacts = append(artifacts, a)
		levels[g.Name()] = g.Level()
		e.cfg.Logger.Debug().
			Str("type", t.Name).
			Str("generator", g.Name()).
			Int("symbols", len(a.Symbols)).
			Msg("generated artifact")
	}
	if err := Compose(t.Name, artifacts, levels); err != nil {
		return nil, err
	}
	return Emit(e.cfg.Package, e.cfg.Header, t, artifacts, e.cfg.Registry)
}
