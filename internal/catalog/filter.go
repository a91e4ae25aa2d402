// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package catalog

import (
	"strings"

	"github.com/MKhiriev/go-writeups/models"
)

// Filter returns the writeups of list that satisfy every facet of sel, in
// their original order. The input slice is not modified.
//
// A writeup is kept when all of the following hold:
//   - sel.Platform is [models.FilterAll] or equals the writeup platform;
//   - sel.Difficulty is [models.FilterAll] or equals the writeup difficulty;
//   - sel.Search is empty, or it is a case-insensitive substring of the title
//     or of at least one tag.
//
// The result is never nil.
func Filter(list []models.Writeup, sel models.FilterSelection) []models.Writeup {
	query := strings.ToLower(sel.Search)

	filtered := make([]models.Writeup, 0, len(list))
	for _, w := range list {
		if !matchesPlatform(w, sel.Platform) {
			continue
		}
		if !matchesDifficulty(w, sel.Difficulty) {
			continue
		}
		if !matchesSearch(w, query) {
			continue
		}
		filtered = append(filtered, w)
	}

	return filtered
}

func matchesPlatform(w models.Writeup, platform string) bool {
	return platform == models.FilterAll || string(w.Platform) == platform
}

func matchesDifficulty(w models.Writeup, difficulty string) bool {
	return difficulty == models.FilterAll || string(w.Difficulty) == difficulty
}

// matchesSearch expects query to be lower-cased already.
func matchesSearch(w models.Writeup, query string) bool {
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(w.Title), query) {
		return true
	}

	for _, tag := range w.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}

	return false
}
