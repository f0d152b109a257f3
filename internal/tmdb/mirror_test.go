package tmdb_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/conorfabian/streamlinks/internal/tmdb"
)

const mirrorFixture = `{
  "movies": [
    {"id": 1, "title": "Your Name.", "original_title": "君の名は。", "release_date": "2016-08-26", "genre_ids": [16, 10749], "popularity": 60},
    {"id": 2, "title": "Dune", "release_date": "2021-09-15", "popularity": 90}
  ],
  "tv": [
    {"id": 3, "name": "Naruto", "first_air_date": "2002-10-03", "origin_country": ["JP"], "genre_ids": [16], "popularity": 120}
  ]
}`

func mirrorServer(t *testing.T) *httptest.Server {
	t.Helper()
	m, err := tmdb.ReadMirror(strings.NewReader(mirrorFixture))
	if err != nil {
		t.Fatalf("ReadMirror returned error: %v", err)
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	m.RegisterRoutes(r.Group(""))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientAgainstMirror(t *testing.T) {
	srv := mirrorServer(t)
	client, err := tmdb.New("local", srv.URL, "en-US", tmdb.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	movies, err := client.SearchMovie(context.Background(), "your name")
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if movies.TotalResults != 1 || movies.Results[0].ID != 1 {
		t.Fatalf("unexpected movies %+v", movies)
	}

	shows, err := client.SearchTV(context.Background(), "NARUTO")
	if err != nil {
		t.Fatalf("SearchTV returned error: %v", err)
	}
	if len(shows.Results) != 1 || shows.Results[0].Name != "Naruto" {
		t.Fatalf("unexpected shows %+v", shows)
	}

	none, err := client.SearchTV(context.Background(), "dune")
	if err != nil || len(none.Results) != 0 {
		t.Fatalf("expected no tv results, got %+v, %v", none, err)
	}
}
