package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-writeups/internal/crypto"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/models"
)

type sessionRepository struct {
	*DB
	sealer crypto.Sealer
	now    func() time.Time
	logger *logger.Logger
}

// NewSessionRepository returns a [SessionRepository] keeping the session in
// db with its tokens sealed by sealer.
func NewSessionRepository(db *DB, sealer crypto.Sealer, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		sealer: sealer,
		now:    time.Now,
		logger: logger,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	row, err := r.toRow(session)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Save").Msg("failed to seal session tokens")
		return fmt.Errorf("failed to seal session: %w", err)
	}

	query, args, err := buildUpsertSessionQuery(row, r.now().Unix())
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Save").Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Save").
			Str("user_id", row.UserID).
			Msg("failed to execute upsert for session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil || affected == 0 {
		return ErrSessionNotSaved
	}

	log.Debug().Str("func", "sessionRepository.Save").Str("user_id", row.UserID).Msg("session saved")
	return nil
}

func (r *sessionRepository) Load(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSessionQuery()
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Load").Msg("failed to build select query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row sessionRow
	scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&row.UserID,
		&row.Email,
		&row.DisplayName,
		&row.UserCreatedAt,
		&row.AccessToken,
		&row.RefreshToken,
		&row.TokenType,
		&row.ExpiresAt,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return models.Session{}, ErrLocalSessionNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).Str("func", "sessionRepository.Load").Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	session, err := r.fromRow(row)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Load").Msg("stored session cannot be opened")
		return models.Session{}, fmt.Errorf("%w: %w", ErrCorruptedSession, err)
	}

	return session, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSessionQuery()
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Clear").Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sessionRepository.Clear").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) toRow(s models.Session) (sessionRow, error) {
	access, err := r.sealer.Seal(s.AccessToken)
	if err != nil {
		return sessionRow{}, err
	}
	refresh, err := r.sealer.Seal(s.RefreshToken)
	if err != nil {
		return sessionRow{}, err
	}

	return sessionRow{
		UserID:        s.User.ID.String(),
		Email:         s.User.Email,
		DisplayName:   s.User.Metadata.DisplayName,
		UserCreatedAt: unixOrZero(s.User.CreatedAt),
		AccessToken:   access,
		RefreshToken:  refresh,
		TokenType:     s.TokenType,
		ExpiresAt:     unixOrZero(s.ExpiresAt),
	}, nil
}

func (r *sessionRepository) fromRow(row sessionRow) (models.Session, error) {
	userID, err := uuid.Parse(row.UserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("parse user id: %w", err)
	}
	access, err := r.sealer.Open(row.AccessToken)
	if err != nil {
		return models.Session{}, err
	}
	refresh, err := r.sealer.Open(row.RefreshToken)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    row.TokenType,
		ExpiresAt:    timeOrZero(row.ExpiresAt),
		User: models.User{
			ID:        userID,
			Email:     row.Email,
			Metadata:  models.UserMetadata{DisplayName: row.DisplayName},
			CreatedAt: timeOrZero(row.UserCreatedAt),
		},
	}, nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
