package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"beseda/internal/access"
	"beseda/internal/audio"
	"beseda/internal/config"
	"beseda/internal/inference"
	"beseda/internal/logger"
	"beseda/internal/menu"
	"beseda/internal/queue"
	"beseda/internal/ratelimit"
	"beseda/internal/session"
	"beseda/internal/telegram"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bot",
	Long: `Start the bot in the foreground. It long-polls Telegram for updates
and runs until interrupted.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	zl := log.GetZerolog()
	zl.Info().Str("version", version).Msg("Starting beseda")

	// Session storage
	backing, err := session.NewSQLiteBacking(cfg.Sessions.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}

	store := session.NewStore(backing, zl)
	defer store.Close()

	cleanup := session.NewCleanup(backing, store,
		time.Duration(cfg.Sessions.MaxIdleDays)*24*time.Hour, zl)
	if err := cleanup.Start(); err != nil {
		return fmt.Errorf("failed to start session cleanup: %w", err)
	}
	defer cleanup.Stop()

	// Core components
	gate := access.NewGate(cfg.Telegram.OwnerID, cfg.Telegram.AdminID, zl)
	machine := menu.NewMachine()
	lanes := queue.New(zl)
	limiter := ratelimit.New(
		time.Duration(cfg.RateLimit.MinIntervalMs)*time.Millisecond, zl)
	defer limiter.Stop()

	llm := inference.NewRouter(cfg.OpenAI.APIKey, cfg.Anthropic.APIKey, zl)

	transcoder := audio.NewTranscoder("", zl)
	if !transcoder.Available() {
		zl.Warn().Msg("ffmpeg not found in PATH, voice messages will fail")
	}

	// Transport
	bot, err := telegram.NewBot(cfg.Telegram.BotToken, log)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	handler := telegram.NewHandler(bot, gate, store, machine, lanes, limiter, llm, transcoder, log)

	// Config hot reload: runtime tunables only.
	watcher := config.NewWatcher(loader, zl, func(next *config.Config) {
		log.SetLevel(next.Logging.Level)
		limiter.SetMinInterval(
			time.Duration(next.RateLimit.MinIntervalMs) * time.Millisecond)
	})
	if err := watcher.Start(); err != nil {
		zl.Warn().Err(err).Msg("Config watcher unavailable, continuing without hot reload")
	} else {
		defer watcher.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		zl.Info().Str("signal", sig.String()).Msg("Shutting down")
		bot.Stop()
		cancel()
	}()

	handler.Run(ctx)

	// Let in-flight lanes finish before closing storage.
	if err := lanes.Close(); err != nil {
		zl.Error().Err(err).Msg("Failed to drain task lanes")
	}

	zl.Info().Msg("Stopped")
	return nil
}
