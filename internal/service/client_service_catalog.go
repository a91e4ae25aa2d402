package service

import (
	"context"

	"github.com/MKhiriev/go-writeups/internal/adapter"
	"github.com/MKhiriev/go-writeups/internal/cache"
	"github.com/MKhiriev/go-writeups/internal/catalog"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/models"
)

type clientCatalogStore struct {
	adapter adapter.DataService
	cache   *cache.Cache

	logger *logger.Logger
}

// NewClientCatalogStore returns a [CatalogStore] reading from dataService
// through requestCache.
func NewClientCatalogStore(dataService adapter.DataService, requestCache *cache.Cache, logger *logger.Logger) CatalogStore {
	return &clientCatalogStore{
		adapter: dataService,
		cache:   requestCache,
		logger:  logger,
	}
}

func (c *clientCatalogStore) Load(ctx context.Context) ([]models.Writeup, error) {
	writeups, err := cache.Query(ctx, c.cache, cache.KeyWriteups, c.adapter.ListWriteups)
	if err != nil {
		c.logger.Err(err).Str("func", "clientCatalogStore.Load").Msg("failed to load writeups")
		return nil, mapFetchError("load writeups", err)
	}

	return writeups, nil
}

func (c *clientCatalogStore) Get(ctx context.Context, slug string) (*models.Writeup, error) {
	if slug == "" {
		return nil, nil
	}

	writeup, err := cache.Query(ctx, c.cache, cache.KeyWriteup(slug), func(ctx context.Context) (*models.Writeup, error) {
		return c.adapter.GetWriteupBySlug(ctx, slug)
	})
	if err != nil {
		c.logger.Err(err).Str("func", "clientCatalogStore.Get").Str("slug", slug).Msg("failed to get writeup")
		return nil, mapFetchError("get writeup", err)
	}

	return writeup, nil
}

func (c *clientCatalogStore) Filter(list []models.Writeup, sel models.FilterSelection) []models.Writeup {
	return catalog.Filter(list, sel)
}

func (c *clientCatalogStore) Refresh() {
	c.cache.Clear()
}
