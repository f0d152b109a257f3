package main

import (
	"flag"

	"github.com/gin-gonic/gin"

	"github.com/conorfabian/streamlinks/internal/logging"
	"github.com/conorfabian/streamlinks/internal/tmdb"
)

// Serves an offline TMDB search mirror. Point TMDB_BASE_URL at it and set any
// non-empty TMDB_API_KEY to run the stack without network access.
func main() {
	var (
		addr     = flag.String("addr", ":9000", "listen address")
		dataPath = flag.String("data", "data/tmdb-mirror.json", "mirror JSON with movies and tv result lists")
	)
	flag.Parse()

	logger := logging.New("tmdb-mirror")

	mirror, err := tmdb.LoadMirror(*dataPath)
	if err != nil {
		logger.Fatal("cannot load mirror", "path", *dataPath, "err", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logger))
	mirror.RegisterRoutes(router.Group(""))

	logger.Info("tmdb mirror listening", "addr", *addr, "movies", len(mirror.Movies), "tv", len(mirror.TV))
	if err := router.Run(*addr); err != nil {
		logger.Fatal("mirror stopped", "err", err)
	}
}
