// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jeranaias/chartpad/internal/catalog"
	"github.com/jeranaias/chartpad/internal/config"
	"github.com/jeranaias/chartpad/internal/editor"
	"github.com/jeranaias/chartpad/internal/generate"
)

// =============================================================================
// CONFIG LOADING
// =============================================================================

// LoadConfig loads the config file named by --config, or the default one,
// and applies the command-line overrides.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.Patient != "" {
		cfg.Patient.Name = args.Patient
	}
	if args.Vocab != "" {
		cfg.Vocabulary.File = args.Vocab
	}
	return cfg, nil
}

// =============================================================================
// RUNTIME
// =============================================================================

// Runtime is an editor session together with the background resources it
// depends on.
type Runtime struct {
	Session *editor.Session
	Catalog *catalog.Catalog

	watcher *catalog.Watcher
}

// RuntimeOptions adjusts how NewRuntime builds the session.
type RuntimeOptions struct {
	Logger *log.Logger
	Hooks  editor.Hooks
	Anchor editor.AnchorFunc

	// NoWatch disables vocabulary hot reload
	NoWatch bool
}

// NewRuntime builds a session from cfg: the vocabulary catalog (and its
// watcher), the generation backend, and the patient and form defaults.
func NewRuntime(cfg *config.Config, opts RuntimeOptions) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cat := catalog.Default()
	var watcher *catalog.Watcher
	if file := cfg.Vocabulary.File; file != "" {
		if err := cat.Load(file); err != nil {
			return nil, &CommandError{Command: "vocabulary", Action: "load", Subject: file, Err: err}
		}
		if cfg.Vocabulary.Watch && !opts.NoWatch {
			debounce := time.Duration(cfg.Vocabulary.DebounceMS) * time.Millisecond
			w, err := catalog.NewWatcher(cat, file, debounce, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to watch vocabulary: %w", err)
			}
			if err := w.Watch(); err != nil {
				w.Close()
				return nil, fmt.Errorf("failed to watch vocabulary: %w", err)
			}
			watcher = w
		}
	}

	gen, err := NewGenerator(cfg.Generation)
	if err != nil {
		if watcher != nil {
			watcher.Close()
		}
		return nil, err
	}

	session := editor.New(editor.Config{
		Patient:   cfg.PatientContext(),
		Catalog:   cat,
		Defaults:  cfg.FormDefaults(),
		Generator: gen,
		Logger:    logger,
		Hooks:     opts.Hooks,
		Anchor:    opts.Anchor,
	})
	logger.Printf("SESSION_START | patient=%q vocab=%d backend=%s", cfg.Patient.Name, cat.Len(), cfg.Generation.Backend)

	return &Runtime{Session: session, Catalog: cat, watcher: watcher}, nil
}

// Close stops the vocabulary watcher and any generation in flight.
func (r *Runtime) Close() error {
	r.Session.CancelGeneration()
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}

// NewGenerator builds the configured generation backend, throttled when a
// request rate is set.
func NewGenerator(cfg config.GenerationConfig) (generate.Service, error) {
	var svc generate.Service
	switch strings.ToLower(cfg.Backend) {
	case "", "canned":
		svc = generate.NewCanned(time.Duration(cfg.DelayMS) * time.Millisecond)
	case "ollama":
		svc = generate.NewOllama(generate.OllamaConfig{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.OllamaModel,
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown generation backend %q", cfg.Backend)
	}

	if cfg.RequestsPerMinute > 0 {
		svc = generate.NewThrottled(svc, cfg.RequestsPerMinute)
	}
	return svc, nil
}
