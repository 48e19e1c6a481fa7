package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/userhub/internal/api"
	"github.com/ignite/userhub/internal/config"
	"github.com/ignite/userhub/internal/notify"
	"github.com/ignite/userhub/internal/pkg/logger"
	"github.com/ignite/userhub/internal/repository/memory"
	"github.com/ignite/userhub/internal/repository/postgres"
	"github.com/ignite/userhub/internal/repository/rediscache"
	"github.com/ignite/userhub/internal/service/user"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.RedactEnabled())

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repository: Postgres when configured, in-memory for local development.
	var repo user.Repository
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		repo = postgres.NewUserRepo(db)
		logger.Info("using postgres repository")
	} else {
		repo = memory.NewUserRepo()
		logger.Warn("DATABASE_URL not set, using in-memory repository (data is not persisted)")
	}

	// Optional Redis cache in front of the repository.
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer rdb.Close()
		repo = rediscache.NewUserRepo(repo, rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		logger.Info("user lookup cache enabled", "addr", cfg.Redis.Addr)
	}

	// Notifier: SES when configured, log-only otherwise.
	var notifier user.Notifier
	if cfg.SES.Enabled {
		sesNotifier, err := notify.NewSESNotifier(ctx, cfg.SES)
		if err != nil {
			log.Fatalf("Failed to initialize SES notifier: %v", err)
		}
		notifier = sesNotifier
		logger.Info("SES notifier enabled", "region", cfg.SES.Region)
	} else {
		notifier = notify.NewLogNotifier()
		logger.Warn("SES not configured, notifications are log-only")
	}

	svc := user.NewService(repo, notifier)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	api.NewHandlers(svc).RegisterRoutes(r)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
