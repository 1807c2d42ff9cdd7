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

	"github.com/docufill/backend/internal/config"
	"github.com/docufill/backend/internal/handler"
	"github.com/docufill/backend/internal/model/document"
	"github.com/docufill/backend/internal/service/ai"
	"github.com/docufill/backend/internal/service/docfill"
	"github.com/docufill/backend/internal/service/scanner"
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

	store := document.NewStore(cfg.Session.TTL)
	go sweepSessions(ctx, store, cfg.Session.SweepInterval)

	// The phrasing service is optional at startup: without it, uploads that
	// contain only labeled markers still work.
	var phraser scanner.Phraser
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize phrasing service: %v", err)
			log.Println("continuing without generated questions - check the Ark model environment variables")
		} else {
			log.Println("phrasing service initialized successfully")
			phraser = aiService
		}
	} else {
		log.Println("ark credentials not configured, documents with blank-run markers will be rejected")
	}

	docService := docfill.NewService(store, scanner.New(phraser))

	router := handler.NewRouter(docService, cfg.Upload.MaxBytes)

	startServer(ctx, cfg.Server, router)
}

// sweepSessions drops expired sessions on a fixed interval until shutdown.
func sweepSessions(ctx context.Context, store *document.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := store.Sweep(now); removed > 0 {
				log.Printf("[store] swept %d expired session(s)", removed)
			}
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Docufill backend listening on %s", addr)
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
