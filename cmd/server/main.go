package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"groupchat/infrastructure/ws"
	"groupchat/internal"
	"groupchat/moderation"
	"groupchat/quip"
	"groupchat/runtime"
)

//go:embed censored/*
var censoredFolder embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so deferred cleanup always executes
// before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Moderation (censored word lists are embedded in the binary)
	maskChar, err := internal.CharacterRune(config.CensoredChar)
	if err != nil {
		return err
	}
	words, err := moderation.LoadWordList(censoredFolder, "censored")
	if err != nil {
		return fmt.Errorf("loading censored words: %w", err)
	}
	log.Info(fmt.Sprintf("%d censored words loaded [%s]",
		len(words.Words), strings.Join(words.Languages, ",")))

	censor, err := moderation.NewModerator(words.Words, maskChar)
	if err != nil {
		return fmt.Errorf("building moderator: %w", err)
	}

	// 3. Core components
	registry := runtime.NewRegistry()
	quips := quip.NewClient(log, config.QuipURL, config.QuipTimeout)
	server := ws.NewServer(log, registry, quips, censor, config.SendBufferSize)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. HTTP server hosting the websocket endpoint
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:    address,
		Handler: server.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting chat server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}
