package models

import (
	"time"

	"github.com/google/uuid"
)

// Platform identifies where a challenge was solved (HTB, THM, a custom lab...).
// The set is open: records may carry platforms the client has no constant for.
type Platform string

const (
	PlatformHTB    Platform = "HTB"
	PlatformTHM    Platform = "THM"
	PlatformCustom Platform = "Custom"
)

// Difficulty is the rated difficulty of a writeup's target.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyInsane Difficulty = "insane"
)

// Status is the progress state of the target a writeup documents.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusLocked    Status = "locked"
)

// Writeup is a single catalog record. It is owned by the remote data service
// and read-only on the client; JSON tags follow the remote column names.
type Writeup struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Platform    Platform   `json:"platform"`
	Difficulty  Difficulty `json:"difficulty"`
	Status      Status     `json:"status"`
	Description *string    `json:"description"`
	// Content is the markdown body. The catalog views never need it.
	Content   *string    `json:"content"`
	Tags      []string   `json:"tags"`
	Points    *int       `json:"points"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Published bool       `json:"published"`
	AuthorID  *uuid.UUID `json:"author_id"`
}
