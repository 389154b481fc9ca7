package config

import (
	"os"
	"strings"
)

// Env holds process configuration, all sourced from the environment.
type Env struct {
	BotToken  string
	AppAddr   string
	AdminOnly bool
	LogLevel  string
}

// LoadEnv reads the environment with defaults applied.
func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		BotToken:  strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		AppAddr:   appAddr,
		AdminOnly: strings.EqualFold(strings.TrimSpace(os.Getenv("ADMIN_ONLY")), "true"),
		LogLevel:  strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}
}
