package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Mirror is an offline copy of search results, served with the same shape as
// the real API so a Client can point at it during local development.
type Mirror struct {
	Movies []Result `json:"movies"`
	TV     []Result `json:"tv"`
}

func ReadMirror(r io.Reader) (Mirror, error) {
	var m Mirror
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Mirror{}, fmt.Errorf("decode mirror: %w", err)
	}
	return m, nil
}

func LoadMirror(path string) (Mirror, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mirror{}, fmt.Errorf("open mirror: %w", err)
	}
	defer f.Close()
	return ReadMirror(f)
}

func (m Mirror) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search/movie", m.handler(m.Movies)) // GET /search/movie?query=
	rg.GET("/search/tv", m.handler(m.TV))        // GET /search/tv?query=
}

func (m Mirror) handler(results []Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.Query("api_key")) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status_code": 7, "status_message": "Invalid API key"})
			return
		}
		q := strings.ToLower(strings.TrimSpace(c.Query("query")))
		if q == "" {
			c.JSON(http.StatusOK, Response{Page: 1, Results: []Result{}})
			return
		}
		matched := make([]Result, 0)
		for _, r := range results {
			if mirrorMatch(r, q) {
				matched = append(matched, r)
			}
		}
		c.JSON(http.StatusOK, Response{
			Page:         1,
			Results:      matched,
			TotalPages:   1,
			TotalResults: len(matched),
		})
	}
}

func mirrorMatch(r Result, q string) bool {
	for _, field := range []string{r.Title, r.Name, r.OriginalTitle, r.OriginalName} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
