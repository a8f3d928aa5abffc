package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nyanyapushkina/log-analysis-bot/internal/bot"
	"github.com/nyanyapushkina/log-analysis-bot/internal/engine"
	"github.com/nyanyapushkina/log-analysis-bot/internal/hub"
	"github.com/nyanyapushkina/log-analysis-bot/internal/rules"
	"github.com/nyanyapushkina/log-analysis-bot/internal/server"
	"github.com/nyanyapushkina/log-analysis-bot/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and HTTP API",
	Long: `Start the long-polling Telegram bot and, unless disabled in the
config, the HTTP API with its websocket activity stream. The rule file
is watched and hot-reloaded on change.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// --- Set up context with graceful shutdown ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nlogbot shutting down gracefully...")
		cancel()
	}()

	// --- Rules with hot reload ---
	provider, err := rules.NewProvider(cfg.Rules.File)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	go func() {
		if err := provider.Watch(ctx); err != nil {
			log.Printf("rules: watcher stopped: %v", err)
		}
	}()

	// --- Core ---
	events := hub.New()
	defer events.Close()

	core := engine.New(session.NewStore(), provider, events, engine.Limits{
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	// --- HTTP API ---
	if cfg.Server.Enabled {
		srv := server.New(core, events, cfg.Server.Port)
		go func() {
			log.Printf("server: listening on :%s", cfg.Server.Port)
			if err := srv.Start(); err != nil {
				log.Printf("server: stopped: %v", err)
				cancel()
			}
		}()
	}

	// --- Telegram bot ---
	tg, err := bot.New(core, cfg)
	if err != nil {
		return err
	}
	return tg.Run(ctx)
}
