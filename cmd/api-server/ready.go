package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/live"
)

// readyHandler reports not ready once shutdown has started draining live
// sessions, so load balancers stop routing new connections here.
func readyHandler(cat *catalog.Catalog, providerEnabled bool, hub *live.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := hub.Stats()
		if stats.Closing {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":        "not_ready",
				"live_sessions": stats.Sessions,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":         "ready",
			"sites":          cat.Len(),
			"provider":       providerEnabled,
			"live_sessions":  stats.Sessions,
			"total_sessions": stats.TotalSessions,
		})
	}
}
