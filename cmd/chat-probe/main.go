// ABOUTME: Interactive probe console for exercising a chat backend by hand.
// ABOUTME: Wires config, auth gateway, websocket session, and the console loop together.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/chat-probe/internal/authgw"
	"github.com/2389/chat-probe/internal/config"
	"github.com/2389/chat-probe/internal/console"
	"github.com/2389/chat-probe/internal/framelog"
	"github.com/2389/chat-probe/internal/session"
)

var version = "dev"

// getConfigPath returns the config file location, checking the
// CHAT_PROBE_CONFIG env var, then XDG_CONFIG_HOME, then ~/.config.
func getConfigPath() string {
	if path := os.Getenv("CHAT_PROBE_CONFIG"); path != "" {
		return path
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "chat-probe", "config.yaml")
}

func main() {
	configPath := flag.String("config", getConfigPath(), "Path to config file")
	authURL := flag.String("auth-url", "", "Auth service base URL (overrides config)")
	socketURL := flag.String("socket-url", "", "Realtime socket URL (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *authURL, *socketURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, authURL, socketURL string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if authURL != "" {
		cfg.Auth.URL = authURL
	}
	if socketURL != "" {
		cfg.Socket.URL = socketURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging)

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	cyan.Printf("chat-probe %s\n", version)
	green.Print("  ▶ ")
	fmt.Printf("Auth:   %s\n", cfg.Auth.URL)
	green.Print("  ▶ ")
	fmt.Printf("Socket: %s\n", cfg.Socket.URL)
	gray.Println("  Type /help for commands. Ctrl+C to quit.")
	fmt.Println()

	auth := authgw.New(cfg.Auth.URL, cfg.Timeouts.Request)
	dialer := &session.WebSocketDialer{HandshakeTimeout: cfg.Timeouts.Handshake}

	c := console.New(cfg, dialer, auth, framelog.New(), os.Stdin, os.Stdout, logger)
	defer c.Close()

	return c.Run(ctx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Logs go to stderr so they never interleave with console output on
	// a redirected stdout.
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
