// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-writeups/internal/app"
	"github.com/MKhiriev/go-writeups/internal/service"
)

// submitErrorMessage turns a sign-in or sign-up failure into the line shown
// under the auth form.
func submitErrorMessage(err error) string {
	return service.UserMessage(err)
}

// fetchErrorMessage turns a catalog read failure into the error state line.
func fetchErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, service.ErrTransport) {
		return app.MsgServiceUnavailable
	}
	return "Failed to load: " + err.Error()
}
