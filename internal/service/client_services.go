package service

import (
	"github.com/MKhiriev/go-writeups/internal/adapter"
	"github.com/MKhiriev/go-writeups/internal/cache"
	"github.com/MKhiriev/go-writeups/internal/config"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/store"
)

type ClientServices struct {
	CatalogStore   CatalogStore
	SessionManager SessionManager
}

func NewClientServices(cfg *config.ClientConfig, repository store.SessionRepository, dataService adapter.DataService, log *logger.Logger) *ClientServices {
	requestCache := cache.New(cfg.Cache.TTL)

	return &ClientServices{
		CatalogStore: NewClientCatalogStore(dataService, requestCache, log.WithComponent("catalog")),
		SessionManager: NewClientSessionManager(dataService, repository, SessionManagerOptions{
			RefreshInterval: cfg.Workers.RefreshInterval,
			RefreshLeeway:   cfg.Workers.RefreshLeeway,
		}, log.WithComponent("session")),
	}
}
