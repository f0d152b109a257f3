// Package logging builds the charmbracelet loggers shared by the binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
)

// New returns a logger writing to stderr. Output is text on a terminal and
// JSON otherwise.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, log.GetLevel())
}

func NewWithWriter(w io.Writer, prefix string, level log.Level) *log.Logger {
	formatter := log.JSONFormatter
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		formatter = log.TextFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
		Formatter:       formatter,
	})
}

// SetLevel parses a level name and applies it globally. Unknown names keep
// the current level.
func SetLevel(name string) {
	if lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name))); err == nil {
		log.SetLevel(lvl)
	}
}

// Discard is a logger that drops everything, used by tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// GinMiddleware logs one line per request.
func GinMiddleware(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
