package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pefman/citadel-calc/internal/catalog"
	"github.com/pefman/citadel-calc/internal/config"
	"github.com/pefman/citadel-calc/internal/game"
	"github.com/pefman/citadel-calc/internal/logger"
	"github.com/pefman/citadel-calc/internal/session"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $CITADEL_CONFIG)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	log := logger.Must(cfg.LogLevel, cfg.LogEncoding)
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal("load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	if missing := cat.Unordered(game.DisplayOrder); len(missing) > 0 {
		log.Warn("catalog troops without display order, listed last", zap.Strings("troops", missing))
	}
	log.Info("catalog loaded",
		zap.Int("troops", len(cat.Troops())),
		zap.Strings("citadels", cat.CitadelLevels()),
		zap.Any("tuning", cfg.Tuning))

	s := &server{
		cat:       cat,
		tuning:    cfg.Tuning,
		sessions:  session.NewRegistry(),
		publicDir: cfg.PublicDir,
		log:       log.Named("api"),
	}
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("citadel calculator listening", zap.String("addr", cfg.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}
