// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Start prepares the client: restores state and starts background work.
	Start(ctx context.Context)
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
	// Close releases every resource acquired by the client.
	Close() error
}

var _ Client = (*App)(nil)
