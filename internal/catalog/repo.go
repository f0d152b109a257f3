package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/conorfabian/streamlinks/pkg/models"
)

// Repo persists a catalog snapshot in SQLite. The servers only read from it
// at startup; writes come from the import command.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Replace stores sites as the whole catalog, in order, inside one
// transaction. Rows for names no longer present are removed.
func (r *Repo) Replace(ctx context.Context, sites []models.DirectorySite) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sites`); err != nil {
		return fmt.Errorf("clear sites: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sites (name, position, category, description, rating, ad_level, status,
		                   features, last_updated, has_search, url, search_url_template)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
		  position = excluded.position,
		  category = excluded.category,
		  description = excluded.description,
		  rating = excluded.rating,
		  ad_level = excluded.ad_level,
		  status = excluded.status,
		  features = excluded.features,
		  last_updated = excluded.last_updated,
		  has_search = excluded.has_search,
		  url = excluded.url,
		  search_url_template = excluded.search_url_template
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for i, s := range sites {
		features := s.Features
		if features == nil {
			features = []string{}
		}
		featuresJSON, err := json.Marshal(features)
		if err != nil {
			return fmt.Errorf("marshal features for %s: %w", s.Name, err)
		}
		if _, err := stmt.ExecContext(ctx,
			s.Name,
			i,
			string(s.Category),
			s.Description,
			s.Rating,
			string(s.AdLevel),
			string(s.Status),
			string(featuresJSON),
			s.LastUpdated,
			s.HasSearch,
			s.URL,
			nullString(s.SearchURLTemplate),
		); err != nil {
			return fmt.Errorf("exec upsert for %s: %w", s.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_meta (key, value) VALUES ('imported_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record import time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadAll returns the stored sites in their original order.
func (r *Repo) LoadAll(ctx context.Context) ([]models.DirectorySite, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT name, category, description, rating, ad_level, status,
		       features, last_updated, has_search, url, search_url_template
		FROM sites
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var out []models.DirectorySite
	for rows.Next() {
		var (
			s            models.DirectorySite
			category     string
			description  sql.NullString
			adLevel      string
			status       string
			featuresJSON string
			lastUpdated  sql.NullString
			template     sql.NullString
		)
		if err := rows.Scan(
			&s.Name, &category, &description, &s.Rating, &adLevel, &status,
			&featuresJSON, &lastUpdated, &s.HasSearch, &s.URL, &template,
		); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		s.Category = models.Category(category)
		s.Description = description.String
		s.AdLevel = models.AdLevel(adLevel)
		s.Status = models.SiteStatus(status)
		s.LastUpdated = lastUpdated.String
		s.SearchURLTemplate = template.String
		if err := json.Unmarshal([]byte(featuresJSON), &s.Features); err != nil {
			return nil, fmt.Errorf("decode features for %s: %w", s.Name, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ImportedAt reports when the stored catalog was last replaced.
func (r *Repo) ImportedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = 'imported_at'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("imported_at: %w", err)
	}
	return time.Parse(time.RFC3339, raw)
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
