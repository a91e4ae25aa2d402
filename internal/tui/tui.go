// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

// TUI runs the interactive terminal client.
type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// Pages builds one instance of every page.
func (t *TUI) Pages(ctx context.Context) map[Page]tea.Model {
	return map[Page]tea.Model{
		PageHome:     NewHomeModel(),
		PageWriteups: NewWriteupsModel(ctx, t.services.CatalogStore),
		PageDetail:   NewDetailModel(ctx, t.services.CatalogStore, rendererStyleAuto),
		PageAuth:     NewAuthModel(ctx, t.services.SessionManager),
		PageNotFound: NewNotFoundModel(),
	}
}

// Run blocks until the user quits. Session transitions made anywhere in the
// process, including the background refresh, are forwarded to the program.
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(ctx, t.services.SessionManager, t.Pages(ctx), PageHome, t.buildInfo)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := t.services.SessionManager.Subscribe(func(state service.SessionState) {
		program.Send(SessionChangedMsg{State: state})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("tui stopped with error")
		return err
	}
	return nil
}
