package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reelist/internal/auth"
	"reelist/internal/catalog"
	"reelist/internal/config"
	"reelist/internal/db"
	httpx "reelist/internal/http"
	"reelist/internal/watchlist"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, _ := config.Load()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	var store watchlist.Store
	var mongoClient *mongo.Client
	switch cfg.StoreDriver {
	case "mongo":
		mongoClient, err = mongo.Connect(options.Client().ApplyURI(cfg.MongoURL))
		if err != nil {
			logger.Error("mongo connect failed", "error", err)
			os.Exit(1)
		}
		store = watchlist.NewMongoStore(mongoClient.Database(cfg.MongoDB))
	case "postgres":
		store = &watchlist.PostgresStore{DB: gdb}
	default:
		logger.Error("unknown watchlist store driver", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	cat, err := catalog.New(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBImageBaseURL)
	if err != nil {
		logger.Error("catalog client init failed", "error", err)
		os.Exit(1)
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	r := httpx.NewRouter(cfg, gdb, jwtSvc, store, cat)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
}
