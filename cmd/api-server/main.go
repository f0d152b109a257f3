package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/live"
	"github.com/conorfabian/streamlinks/internal/logging"
	"github.com/conorfabian/streamlinks/internal/metadata"
	"github.com/conorfabian/streamlinks/internal/search"
	"github.com/conorfabian/streamlinks/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default $STREAMLINKS_CONFIG)")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("load config failed", "err", err)
	}
	logging.SetLevel(cfg.Log.Level)
	logger := logging.New("api")

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	cat, err := catalog.Open(loadCtx, cfg.Catalog)
	cancelLoad()
	if err != nil {
		logger.Fatal("catalog load failed", "err", err)
	}
	logger.Info("catalog loaded", "sites", cat.Len(), "file", cfg.Catalog.Path, "db", cfg.Catalog.DBPath)

	lookup, err := metadata.NewFromConfig(cfg.TMDB, logging.New("metadata"))
	if err != nil {
		logger.Fatal("metadata provider setup failed", "err", err)
	}
	if !lookup.Enabled() {
		logger.Warn("TMDB_API_KEY not set, content search uses fallback results only")
	}
	svc := search.NewService(cat, lookup, search.WithLogger(logging.New("search")))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logging.New("http")))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := live.NewHub()
	router.GET("/ws/suggest", live.WSHandler(hub, live.SuggestFetcher(svc), cfg.Live, logging.New("live")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", readyHandler(cat, lookup.Enabled(), hub))

	search.NewHandler(svc).RegisterRoutes(router.Group("/api"))
	catalog.NewHandler(cat).RegisterRoutes(router.Group(""))

	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP API server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.CloseAll()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "err", err)
	}

	wg.Wait()
	logger.Info("server stopped")
}
