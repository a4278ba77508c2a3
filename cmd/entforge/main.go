// Command entforge generates pattern code from a declarative type spec.
//
//	entforge -spec types.yaml -out ./model
//
// With -watch the command stays resident and regenerates whenever the spec
// or rules file changes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/entforge/entforge/compiler/gen"
	"github.com/entforge/entforge/compiler/load"
	"github.com/entforge/entforge/rules"
)

func main() {
	var (
		specPath  = flag.String("spec", "", "path to the type spec document (required)")
		outDir    = flag.String("out", "", "output directory for generated files (required)")
		pkg       = flag.String("pkg", "", "output package name (default: base of -out)")
		rulesPath = flag.String("rules", "", "rule table document overriding the embedded defaults")
		watch     = flag.Bool("watch", false, "regenerate when the spec or rules change")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if *specPath == "" || *outDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	run := func(ctx context.Context) error {
		opts := []gen.Option{
			gen.WithTarget(*outDir),
			gen.WithLogger(log),
		}
		if *pkg != "" {
			opts = append(opts, gen.WithPackage(*pkg))
		}
		if *rulesPath != "" {
			tables, err := rules.LoadFile(*rulesPath)
			if err != nil {
				return err
			}
			opts = append(opts, gen.WithTables(tables))
		}
		engine, err := gen.New(opts...)
		if err != nil {
			return err
		}
		spec, err := load.ParseFile(*specPath)
		if err != nil {
			return err
		}
		return engine.Write(ctx, spec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}
	if !*watch {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal().Err(err).Msg("starting watcher")
	}
	defer watcher.Close()
	for _, p := range []string{*specPath, *rulesPath} {
		if p == "" {
			continue
		}
		if err := watcher.Add(p); err != nil {
			log.Fatal().Err(err).Str("path", p).Msg("watching file")
		}
	}
	log.Info().Str("spec", *specPath).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Info().Str("file", ev.Name).Msg("change detected")
			if err := run(ctx); err != nil {
				// Keep watching: a half-saved spec should not kill the loop.
				log.Error().Err(err).Msg("generation failed")
				continue
			}
			// Editors that replace the file drop the watch; re-add it.
			if ev.Has(fsnotify.Rename) {
				_ = watcher.Add(ev.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}
