package catalog

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conorfabian/streamlinks/pkg/models"
)

//go:embed data/sites.toml
var defaultSites []byte

type tomlFile struct {
	Version string                 `toml:"version"`
	Sites   []models.DirectorySite `toml:"sites"`
}

// Load reads sites from a .toml or .csv file. An empty path returns the
// embedded catalog.
func Load(path string) ([]models.DirectorySite, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ReadTOML(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// Default returns the catalog compiled into the binary.
func Default() ([]models.DirectorySite, error) {
	return ReadTOML(bytes.NewReader(defaultSites))
}

func ReadTOML(r io.Reader) ([]models.DirectorySite, error) {
	var f tomlFile
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog toml: %w", err)
	}
	return f.Sites, nil
}

func WriteTOML(w io.Writer, sites []models.DirectorySite) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(tomlFile{Version: "1", Sites: sites}); err != nil {
		return fmt.Errorf("encode catalog toml: %w", err)
	}
	return nil
}

var csvColumns = []string{
	"name", "category", "description", "rating", "ad_level", "status",
	"features", "last_updated", "has_search", "url", "search_url_template",
}

// ReadCSV parses a header-keyed CSV. Features are separated by ';'.
func ReadCSV(r io.Reader) ([]models.DirectorySite, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	row, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}

	var sites []models.DirectorySite
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if len(row) == 0 {
			continue
		}
		name := valueAt(header, row, "name")
		if name == "" {
			continue
		}

		s := models.DirectorySite{
			Name:              name,
			Category:          models.Category(valueAt(header, row, "category")),
			Description:       valueAt(header, row, "description"),
			AdLevel:           models.AdLevel(valueAt(header, row, "ad_level")),
			Status:            models.SiteStatus(valueAt(header, row, "status")),
			LastUpdated:       valueAt(header, row, "last_updated"),
			URL:               valueAt(header, row, "url"),
			SearchURLTemplate: valueAt(header, row, "search_url_template"),
		}
		if raw := valueAt(header, row, "rating"); raw != "" {
			if s.Rating, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("parse rating for %s: %w", name, err)
			}
		}
		if raw := valueAt(header, row, "has_search"); raw != "" {
			if s.HasSearch, err = strconv.ParseBool(raw); err != nil {
				return nil, fmt.Errorf("parse has_search for %s: %w", name, err)
			}
		}
		for _, f := range strings.Split(valueAt(header, row, "features"), ";") {
			if f = strings.TrimSpace(f); f != "" {
				s.Features = append(s.Features, f)
			}
		}
		sites = append(sites, s)
	}
	return sites, nil
}

func WriteCSV(w io.Writer, sites []models.DirectorySite) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for _, s := range sites {
		if err := cw.Write([]string{
			s.Name,
			string(s.Category),
			s.Description,
			strconv.FormatFloat(s.Rating, 'f', 1, 64),
			string(s.AdLevel),
			string(s.Status),
			strings.Join(s.Features, ";"),
			s.LastUpdated,
			strconv.FormatBool(s.HasSearch),
			s.URL,
			s.SearchURLTemplate,
		}); err != nil {
			return fmt.Errorf("write csv row %s: %w", s.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
