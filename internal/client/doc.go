// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It wires local session storage, the backend adapter, the services and the
// terminal UI into a single process lifecycle shared by the interactive mode
// and the one-shot commands.
package client
