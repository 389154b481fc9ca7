package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dispatchrepublic/trip-rate-bot/internal/api"
	"github.com/dispatchrepublic/trip-rate-bot/internal/bot"
	"github.com/dispatchrepublic/trip-rate-bot/internal/config"
	"github.com/dispatchrepublic/trip-rate-bot/internal/schedule"
)

const version = "1.0.0"

func main() {
	apiOnly := flag.Bool("api-only", false, "Run only the HTTP API (no Telegram polling)")
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides APP_ADDR)")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Trip Rate Bot
by Dispatch Republic

Watches group chats for trip posts, replies with the team guidance prompts,
and recalculates Rate and $/mi when someone replies "Add N" or "Minus N".

Usage:
  trip-rate-bot [flags]

Environment:
  BOT_TOKEN   Telegram bot token from BotFather (required unless --api-only)
  APP_ADDR    HTTP listen address (default :8080)
  ADMIN_ONLY  "true" to only handle messages from chat admins
  LOG_LEVEL   "debug" for verbose logging

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag {
		fmt.Println("trip-rate-bot", version)
		return
	}

	env := config.LoadEnv()
	if *addrFlag != "" {
		env.AppAddr = *addrFlag
	}

	logCfg := zap.NewProductionConfig()
	if *verboseFlag || strings.EqualFold(env.LogLevel, "debug") {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sched := schedule.NewScheduler(logger)
	srv := api.NewServer(logger)

	go func() {
		logger.Info("api listening", zap.String("addr", env.AppAddr))
		if err := srv.Listen(env.AppAddr); err != nil {
			logger.Fatal("api server failed", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !*apiOnly {
		if env.BotToken == "" {
			logger.Fatal("BOT_TOKEN not set; export the token from BotFather or run with --api-only")
		}
		b, err := bot.New(env.BotToken, sched, logger, bot.Options{AdminOnly: env.AdminOnly})
		if err != nil {
			logger.Fatal("telegram connect failed", zap.Error(err))
		}
		go func() {
			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("bot stopped", zap.Error(err))
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	cancel()
	sched.Close()
	if err := srv.Shutdown(); err != nil {
		logger.Warn("api shutdown", zap.Error(err))
	}
}
