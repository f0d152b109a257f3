package search

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/conorfabian/streamlinks/internal/lexical"
	"github.com/conorfabian/streamlinks/pkg/models"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search/suggestions", h.suggestions) // GET /api/search/suggestions?q=&type=&limit=
	rg.GET("/search/content", h.content)         // GET /api/search/content?q=
}

func (h *Handler) suggestions(c *gin.Context) {
	q := c.Query("q")
	if utf8.RuneCountInString(q) < lexical.MinQueryLen {
		c.JSON(http.StatusOK, Response{Suggestions: []models.Suggestion{}})
		return
	}
	scope, err := ParseScope(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp := h.Service.Suggest(c.Request.Context(), Request{
		Query: q,
		Scope: scope,
		Limit: parseInt(c.Query("limit"), DefaultLimit),
	})
	status := http.StatusOK
	if resp.Failed() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

func (h *Handler) content(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q"})
		return
	}
	results, err := h.Service.SearchContent(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "results": results})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
