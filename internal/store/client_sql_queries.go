// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	sessionsTable = "sessions"

	// the table holds at most one row
	currentSessionID = 1
)

var sessionColumns = []string{
	"user_id",
	"email",
	"display_name",
	"user_created_at",
	"access_token",
	"refresh_token",
	"token_type",
	"expires_at",
}

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// sessionRow is the stored form of a session. Tokens are sealed and times are
// unix seconds, zero meaning unset.
type sessionRow struct {
	UserID        string
	Email         string
	DisplayName   string
	UserCreatedAt int64
	AccessToken   string
	RefreshToken  string
	TokenType     string
	ExpiresAt     int64
}

func buildUpsertSessionQuery(row sessionRow, savedAt int64) (string, []any, error) {
	columns := make([]string, 0, len(sessionColumns)+2)
	columns = append(columns, "id")
	columns = append(columns, sessionColumns...)
	columns = append(columns, "saved_at")

	return sqlite.
		Insert(sessionsTable).
		Options("OR REPLACE").
		Columns(columns...).
		Values(
			currentSessionID,
			row.UserID,
			row.Email,
			row.DisplayName,
			row.UserCreatedAt,
			row.AccessToken,
			row.RefreshToken,
			row.TokenType,
			row.ExpiresAt,
			savedAt,
		).
		ToSql()
}

func buildSelectSessionQuery() (string, []any, error) {
	return sqlite.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"id": currentSessionID}).
		ToSql()
}

func buildDeleteSessionQuery() (string, []any, error) {
	return sqlite.
		Delete(sessionsTable).
		ToSql()
}
