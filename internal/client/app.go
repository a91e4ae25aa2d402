package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-writeups/internal/adapter"
	"github.com/MKhiriev/go-writeups/internal/config"
	"github.com/MKhiriev/go-writeups/internal/crypto"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/internal/store"
	"github.com/MKhiriev/go-writeups/internal/tui"
	"github.com/MKhiriev/go-writeups/models"
)

// App owns the process lifecycle: local storage, the backend adapter and
// the services built on top of them.
type App struct {
	storages  *store.ClientStorages
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// NewApp opens the local session store and wires the services. Call Start
// before use and Close when done.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	sealer, err := crypto.NewSealer(cfg.App.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("create session sealer: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, sealer, log.WithComponent("store"))
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	dataService, err := adapter.NewHTTPDataService(cfg.Adapter, log.WithComponent("adapter"))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create data service: %w", err), storages.Close())
	}

	return &App{
		storages:  storages,
		services:  service.NewClientServices(cfg, storages.SessionRepository, dataService, log),
		buildInfo: buildInfo,
		logger:    log,
	}, nil
}

// Start restores the persisted session and starts background workers.
func (a *App) Start(ctx context.Context) {
	a.services.SessionManager.Init(ctx)
}

// Run starts the interactive UI and blocks until the user quits.
func (a *App) Run(ctx context.Context) error {
	ui, err := tui.New(a.services, a.buildInfo, a.logger.WithComponent("tui"))
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}
	return ui.Run(ctx)
}

func (a *App) Catalog() service.CatalogStore {
	return a.services.CatalogStore
}

func (a *App) Sessions() service.SessionManager {
	return a.services.SessionManager
}

// Close stops background work and closes the local database.
func (a *App) Close() error {
	a.services.SessionManager.Dispose()
	return a.storages.Close()
}
