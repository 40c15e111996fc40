package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nwei/chatgate/internal/auth"
	"github.com/nwei/chatgate/internal/config"
	"github.com/nwei/chatgate/internal/gateway"
	"github.com/nwei/chatgate/internal/handler"
	"github.com/nwei/chatgate/internal/service/ai"
	"github.com/nwei/chatgate/internal/service/thread"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if len(cfg.Auth.Tokens) == 0 {
		log.Println("warning: AUTH_TOKENS is empty, every handshake will be rejected")
	}
	verifier := auth.NewStaticVerifier(cfg.Auth.Tokens)

	threadService := thread.NewService()

	// Initialize the response generator
	var generator gateway.Generator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, threadService, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality, chat messages will be answered with errors")
		} else {
			generator = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI initialization")
	}

	gw := gateway.New(verifier, generator, cfg.Gateway.HeartbeatInterval)
	gw.Start()
	defer gw.Shutdown()

	router := handler.NewRouter(gw, cfg.Gateway.AllowedOrigins)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("chat gateway listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
