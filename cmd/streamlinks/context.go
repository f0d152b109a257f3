package main

import (
	"context"
	"strings"
	"sync"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/logging"
	"github.com/conorfabian/streamlinks/internal/metadata"
	"github.com/conorfabian/streamlinks/internal/search"
	"github.com/conorfabian/streamlinks/pkg/utils"
)

type commandContext struct {
	configFlag    *string
	catalogFlag   *string
	catalogDBFlag *string
	jsonFlag      *bool

	once    sync.Once
	config  utils.Config
	catalog *catalog.Catalog
	search  *search.Service
	err     error
}

func newCommandContext(configFlag, catalogFlag, catalogDBFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		catalogFlag:   catalogFlag,
		catalogDBFlag: catalogDBFlag,
		jsonFlag:      jsonFlag,
	}
}

func (c *commandContext) ensure(ctx context.Context) error {
	c.once.Do(func() {
		cfg, err := utils.LoadConfig(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		if v := strings.TrimSpace(*c.catalogFlag); v != "" {
			cfg.Catalog.Path = v
		}
		if v := strings.TrimSpace(*c.catalogDBFlag); v != "" {
			cfg.Catalog.DBPath = v
		}
		logging.SetLevel(cfg.Log.Level)
		c.config = cfg

		cat, err := catalog.Open(ctx, cfg.Catalog)
		if err != nil {
			c.err = err
			return
		}
		lookup, err := metadata.NewFromConfig(cfg.TMDB, logging.New("metadata"))
		if err != nil {
			c.err = err
			return
		}
		c.catalog = cat
		c.search = search.NewService(cat, lookup, search.WithLogger(logging.New("search")))
	})
	return c.err
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}
