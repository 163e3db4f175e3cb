package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sellerconsole/internal/config"
	"sellerconsole/internal/console"
	"sellerconsole/internal/leadsource"
	"sellerconsole/internal/prefs"
	"sellerconsole/internal/telemetry"
	"sellerconsole/internal/ui"
)

func runConsole(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tp, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.Service)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error flushing traces", zap.Error(err))
		}
	}()

	var store prefs.Store
	s, closeStore, err := openPrefs(ctx, cfg.Prefs)
	if err != nil {
		logger.Warn("preferences will not be saved", zap.Error(err))
	} else {
		store = s
		defer func() { _ = closeStore() }()
	}

	src := leadsource.New(cfg.Leads.URL, cfg.Leads.File, cfg.Leads.Timeout)
	logger.Info("starting console",
		zap.String("source", src.Describe()),
		zap.String("prefs_backend", cfg.Prefs.Backend),
		zap.Bool("tracing", tp.Enabled()))

	app := ui.NewAppModel(ui.Options{
		Context:      ctx,
		Console:      console.New(console.WithLogger(logger)),
		Source:       src,
		Prefs:        store,
		Logger:       logger,
		LoadDelay:    cfg.Delays.Load,
		SaveDelay:    cfg.Delays.Save,
		ConvertDelay: cfg.Delays.Convert,
		Debounce:     cfg.Search.Debounce,
	})
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}

// openPrefs opens the configured preferences backend. The returned close
// func releases its connection.
func openPrefs(ctx context.Context, c config.PrefsConfig) (prefs.Store, func() error, error) {
	if c.Backend == config.BackendRedis {
		rs := prefs.NewRedisStore(c.RedisAddr, c.RedisPrefix)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", c.RedisAddr, err)
		}
		return rs, rs.Close, nil
	}
	fs, err := prefs.NewFileStore(c.Dir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() error { return nil }, nil
}
