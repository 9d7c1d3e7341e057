package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/langbuddy/internal/config"
	"github.com/abhisek/langbuddy/internal/llm"
	"github.com/abhisek/langbuddy/internal/logging"
	"github.com/abhisek/langbuddy/internal/prompt"
	"github.com/abhisek/langbuddy/internal/store"
	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/vocab"
)

// envOptions controls how much of the runtime a command needs.
type envOptions struct {
	// logToFile sends logs next to the database instead of stderr, for
	// commands that take over the terminal.
	logToFile bool

	// quietProvider suppresses the "provider not configured" notice.
	quietProvider bool
}

// env is everything a command may use. Close releases it.
type env struct {
	cfg        *config.Config
	log        *logrus.Logger
	store      *store.Store
	kv         store.KV
	provider   llm.Provider
	translator *vocab.Translator
	tutor      *tutor.Tutor

	closers   []io.Closer
	logCloser io.Closer
}

// loadConfig reads configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file})
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.SQLite.Path = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	return cfg, nil
}

// openStore opens the SQLite database that holds the event log and, for
// the default backend, the tutor state.
func openStore(cfg *config.Config) (*store.Store, string, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return st, dbPath, nil
}

// setup builds the tutor and its collaborators. A missing LLM provider is
// not an error: the tutor falls back to canned content.
func setup(cmd *cobra.Command, opts envOptions) (*env, error) {
	ctx := contextOf(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	st, dbPath, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, store: st}
	e.closers = append(e.closers, st)

	if opts.logToFile && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(dbPath), "langbuddy.log")
	}
	log, logCloser, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		e.Close()
		return nil, err
	}
	e.log = log
	e.logCloser = logCloser

	kv, err := store.OpenKV(ctx, cfg.Store, st)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	e.kv = kv
	if cfg.Store.Backend != store.BackendSQLite {
		e.closers = append(e.closers, kv)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		log.WithError(err).Warn("LLM provider unavailable")
		if !opts.quietProvider {
			fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
			fmt.Fprintln(cmd.ErrOrStderr(), "Replies, translations and exercises will use offline fallbacks.")
		}
	} else {
		e.provider = provider
	}

	deps := tutor.Deps{
		Provider:    e.provider,
		Store:       store.NewPersistence(kv, log),
		Examples:    vocab.NewExampleGenerator(e.provider, log),
		Builder:     prompt.Builder{HistoryWindow: cfg.Chat.HistoryWindow},
		Log:         log,
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.Chat.Temperature,
	}
	if tr, err := vocab.NewTranslator(e.provider, log); err != nil {
		log.WithError(err).Warn("Translator unavailable, using placeholders")
	} else {
		e.translator = tr
		deps.Translator = tr
	}

	e.tutor = tutor.New(deps)
	e.tutor.Load(ctx)

	log.WithFields(logrus.Fields{
		"db":       dbPath,
		"backend":  cfg.Store.Backend,
		"provider": cfg.LLM.Provider,
	}).Debug("Environment ready")
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	if e.translator != nil {
		e.translator.Close()
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && e.log != nil {
			e.log.WithError(err).Debug("Close failed")
		}
	}
	if e.logCloser != nil {
		e.logCloser.Close()
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
