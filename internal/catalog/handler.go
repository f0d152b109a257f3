package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conorfabian/streamlinks/pkg/models"
)

type Handler struct {
	Catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{Catalog: c}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sites", h.list)                     // GET /sites?category=&status=&sort=&limit=&offset=
	rg.GET("/sites/popular", h.popular)          // GET /sites/popular?n=6
	rg.GET("/sites/search", h.search)            // GET /sites/search?q=
	rg.GET("/sites/:name", h.getByName)          // GET /sites/:name
	rg.GET("/categories", h.categories)          // GET /categories
	rg.GET("/categories/:slug", h.categorySites) // GET /categories/:slug
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Status: c.Query("status"),
		Sort:   c.DefaultQuery("sort", "rating"),
		Limit:  parseInt(c.Query("limit"), 0),
		Offset: parseInt(c.Query("offset"), 0),
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cat, ok := models.CategoryFromSlug(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		q.Category = cat
	}

	items, total := h.Catalog.List(q)
	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  nonNil(items),
	})
}

func (h *Handler) popular(c *gin.Context) {
	n := parseInt(c.Query("n"), 6)
	c.JSON(http.StatusOK, gin.H{"items": nonNil(h.Catalog.Popular(n))})
}

func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	c.JSON(http.StatusOK, gin.H{"query": q, "items": nonNil(h.Catalog.Search(q))})
}

func (h *Handler) getByName(c *gin.Context) {
	s, ok := h.Catalog.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Catalog.Categories()})
}

func (h *Handler) categorySites(c *gin.Context) {
	cat, ok := models.CategoryFromSlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category": cat,
		"slug":     cat.Slug(),
		"items":    nonNil(h.Catalog.ByCategory(cat)),
	})
}

func nonNil(sites []models.DirectorySite) []models.DirectorySite {
	if sites == nil {
		return []models.DirectorySite{}
	}
	return sites
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
