// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// minSessionKeyLen is the shortest accepted session sealing secret.
const minSessionKeyLen = 16

// validate checks the merged [StructuredConfig]. Field-level requirements are
// enforced on the client view by [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.APIKey == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Cache.TTL <= 0 {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.RefreshInterval <= 0 || cfg.Workers.RefreshLeeway <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if len(cfg.App.SessionKey) < minSessionKeyLen {
		return ErrInvalidAppConfigs
	}

	return nil
}
