package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/live"
)

func TestReadyFlipsWhenDraining(t *testing.T) {
	sites, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	cat, err := catalog.New(sites)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	hub := live.NewHub()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ready", readyHandler(cat, false, hub))

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		return rec
	}

	rec := get()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status string `json:"status"`
		Sites  int    `json:"sites"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ready" || body.Sites != cat.Len() {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	hub.CloseAll()
	if rec := get(); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after drain, got %d", rec.Code)
	}
}
