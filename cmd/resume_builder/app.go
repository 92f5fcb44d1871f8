package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/contact"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/kv"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/store"
)

// app holds everything a command needs, built from config, env and flags.
type app struct {
	cfg     config.Config
	backend kv.Store
	client  llm.Client
	store   *store.Store
	themes  *store.ThemeStore
	session *builder.Session
	contact *contact.Client
}

// loadConfig resolves the configuration: file, then environment, then
// command line flags, with defaults for anything left empty.
func loadConfig(lookup func(string) (string, bool)) (config.Config, error) {
	cfg := &config.Config{}
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if storeFlag != "" {
		cfg.Store = storeFlag
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return config.Config{}, err
	}
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// newApp opens the store and wires the session. The AI gateway is only
// created when an API key is configured.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LoggerConfig(), os.Stderr)

	backend, err := kv.Open(ctx, cfg.KVOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}

	a := &app{
		cfg:     cfg,
		backend: backend,
		store:   store.New(ctx, backend),
		themes:  store.NewThemeStore(backend),
		contact: contact.NewClient(contact.WithEndpoint(cfg.ContactEndpoint)),
	}

	var gateway *assist.Gateway
	if cfg.APIKey != "" {
		a.client, err = llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		gateway = assist.New(a.client, assist.WithTiers(cfg.AssistTiers()))
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.session, err = builder.NewSession(a.store, gateway, builder.WithExporter(exporter))
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// newExporter stores exports in the configured bucket, or in the export directory.
func newExporter(ctx context.Context, cfg config.Config) (*export.Exporter, error) {
	if !cfg.HasMinio() {
		return export.New(export.WithSink(export.FileSink{Dir: cfg.ExportDir})), nil
	}
	sink, err := export.NewMinioSink(ctx, cfg.MinioSinkConfig())
	if err != nil {
		return nil, err
	}
	return export.New(export.WithSink(sink)), nil
}

// Close releases the model client and the store backend.
func (a *app) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.backend != nil {
		_ = a.backend.Close()
	}
}

// withApp runs fn with a fully wired app and closes it afterwards.
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
