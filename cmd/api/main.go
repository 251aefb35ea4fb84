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

	"github.com/manasmitra/backend/internal/analysis/crisis"
	"github.com/manasmitra/backend/internal/config"
	"github.com/manasmitra/backend/internal/handler"
	"github.com/manasmitra/backend/internal/service/ai"
	authservice "github.com/manasmitra/backend/internal/service/auth"
	chatservice "github.com/manasmitra/backend/internal/service/chat"
	"github.com/manasmitra/backend/internal/service/mentalhealth"
	"github.com/manasmitra/backend/internal/storage"
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

	db, err := storage.Open(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	tokens := authservice.NewTokenService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLHours)*time.Hour,
		time.Duration(cfg.Auth.RefreshTTLHours)*time.Hour,
	)
	authSvc := authservice.NewService(db, tokens)

	if !cfg.AI.Enabled() {
		log.Println("warning: HUGGINGFACE_TOKEN not set, inference calls will fall back to canned replies")
	}
	aiSvc := ai.NewService(cfg.AI)

	probeCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.AI.Timeout)*time.Second)
	aiSvc.Initialize(probeCtx)
	cancel()

	classifier := crisis.NewClassifier(crisis.DefaultKeywords())
	mhSvc := mentalhealth.NewService(classifier, aiSvc)
	mhSvc.Initialize(ctx)
	log.Printf("mental health service initialized: ready=%t", mhSvc.Ready())

	store := chatservice.NewSessionStore()
	chatSvc := chatservice.NewService(store, mhSvc)

	router := handler.NewRouter(chatSvc, aiSvc, mhSvc, authSvc, tokens)

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

	log.Printf("Manas Mitra backend listening on %s", addr)
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
