package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sellerconsole/internal/config"
	"sellerconsole/internal/logging"
	"sellerconsole/internal/prefs"
)

var (
	v      = config.New()
	cfg    *config.Config
	logger *zap.Logger

	configFile string
)

// rootCmd runs the interactive console.
var rootCmd = &cobra.Command{
	Use:   "sellerconsole",
	Short: "Terminal console for triaging leads and converting them to opportunities",
	Long: `sellerconsole loads a list of leads and lets you search, filter and sort
them, edit a lead's email and status, and convert a lead into an opportunity.

Run without arguments to start the interactive console. Filter and sort
choices are remembered between runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			v.SetConfigFile(configFile)
		}
		var err error
		cfg, err = config.Load(v)
		if err != nil {
			return err
		}
		// the console owns the terminal, so it logs to a file
		if cmd == cmd.Root() {
			logger, err = logging.NewFile(cfg.Log.Level, logPath(cfg.Log.File))
		} else {
			logger, err = logging.NewConsole(cfg.Log.Level)
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runConsole,
}

func logPath(configured string) string {
	if configured != "" {
		return configured
	}
	return filepath.Join(prefs.StateDir(), "sellerconsole.log")
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ./sellerconsole.yaml)")
	flags.String("leads-url", "", "Base URL serving /leads.json")
	flags.String("leads-file", "", "Read leads from a local JSON file instead")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("prefs-backend", config.BackendFile, "Where filter preferences are kept: file or redis")
	flags.String("redis-addr", "", "Redis address for the redis preferences backend")

	for key, flag := range map[string]string{
		"leads.url":        "leads-url",
		"leads.file":       "leads-file",
		"log.level":        "log-level",
		"prefs.backend":    "prefs-backend",
		"prefs.redis_addr": "redis-addr",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leadsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
