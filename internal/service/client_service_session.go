// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-writeups/internal/adapter"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/observable"
	"github.com/MKhiriev/go-writeups/internal/store"
	"github.com/MKhiriev/go-writeups/internal/validators"
	"github.com/MKhiriev/go-writeups/internal/workers"
	"github.com/MKhiriev/go-writeups/models"
)

type clientSessionManager struct {
	adapter    adapter.DataService
	repository store.SessionRepository
	validator  validators.Validator

	state *observable.Value[SessionState]

	// commitMu is held across every session commit, from the in-memory
	// update to the state transition.
	commitMu sync.Mutex
	mu       sync.Mutex
	session  models.Session

	workers   *workers.Workers
	startOnce sync.Once
	leeway    time.Duration
	now       func() time.Time

	logger *logger.Logger
}

// SessionManagerOptions tune the background refresh of the session.
type SessionManagerOptions struct {
	// RefreshInterval is how often the refresh job checks the token.
	RefreshInterval time.Duration
	// RefreshLeeway is how long before expiry the token is renewed.
	RefreshLeeway time.Duration
}

// NewClientSessionManager returns a [SessionManager] in the Unknown state.
// Call Init to restore a persisted session.
func NewClientSessionManager(dataService adapter.DataService, repository store.SessionRepository, opts SessionManagerOptions, logger *logger.Logger) SessionManager {
	if opts.RefreshLeeway <= 0 {
		opts.RefreshLeeway = defaultRefreshLeeway
	}

	m := &clientSessionManager{
		adapter:    dataService,
		repository: repository,
		validator:  validators.NewCredentialsValidator(),
		state:      observable.New(SessionState{Status: StatusUnknown}),
		leeway:     opts.RefreshLeeway,
		now:        time.Now,
		logger:     logger,
	}
	m.workers = workers.NewWorkers(NewClientRefreshJob(m, opts.RefreshInterval, opts.RefreshLeeway, logger))

	return m
}

func (m *clientSessionManager) Init(ctx context.Context) {
	defer m.startOnce.Do(func() { m.workers.Run(ctx) })

	if m.state.Get().Status != StatusUnknown {
		return
	}

	session, err := m.restore(ctx)
	if err != nil {
		m.logger.Info().Err(err).Str("func", "clientSessionManager.Init").Msg("no usable session, signed out")
		m.transition(signedOutState())
		return
	}

	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.logger.Info().Str("func", "clientSessionManager.Init").Str("user_id", session.User.ID.String()).Msg("session restored")
	m.transition(signedInState(session))
}

// restore loads the persisted session, refreshes it when it is about to
// expire and verifies it with the backend. Stale sessions are removed from
// the store; on transport failures the stored copy is kept for the next run.
func (m *clientSessionManager) restore(ctx context.Context) (models.Session, error) {
	session, err := m.repository.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrLocalSessionNotFound) {
			m.clearStored(ctx)
		}
		return models.Session{}, err
	}

	if session.ExpiresWithin(m.now(), m.leeway) {
		refreshed, err := m.adapter.RefreshSession(ctx, session.RefreshToken)
		if err != nil {
			if isAuthRejection(err) {
				m.clearStored(ctx)
			}
			return models.Session{}, err
		}
		session = mergeSession(session, refreshed)
	}

	user, err := m.adapter.GetUser(ctx, session.AccessToken)
	if err != nil {
		if isAuthRejection(err) {
			m.clearStored(ctx)
		}
		return models.Session{}, err
	}
	session.User = user

	m.persist(ctx, session)
	return session, nil
}

func (m *clientSessionManager) Dispose() {
	m.workers.Stop()
	m.state.UnsubscribeAll()
}

func (m *clientSessionManager) SignIn(ctx context.Context, email, password string) error {
	creds := models.Credentials{Email: email, Password: password}
	if err := m.validator.Validate(ctx, creds); err != nil {
		return err
	}

	session, err := m.adapter.SignIn(ctx, creds)
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "clientSessionManager.SignIn").Msg("sign in rejected")
		return mapSignInError(err)
	}
	if !session.Active() {
		m.logger.Warn().Str("func", "clientSessionManager.SignIn").Msg("sign in succeeded without a session")
		return &AuthError{Code: AuthUnknown, Err: errNoSessionIssued}
	}

	m.establish(ctx, session)
	return nil
}

func (m *clientSessionManager) SignUp(ctx context.Context, email, password, displayName string) error {
	creds := models.Credentials{
		Email:       email,
		Password:    password,
		DisplayName: strings.TrimSpace(displayName),
	}
	if err := m.validator.Validate(ctx, creds); err != nil {
		return err
	}

	session, err := m.adapter.SignUp(ctx, creds)
	if err != nil {
		m.logger.Warn().Err(err).Str("func", "clientSessionManager.SignUp").Msg("sign up rejected")
		return mapSignUpError(err)
	}

	if !session.Active() {
		m.logger.Info().Str("func", "clientSessionManager.SignUp").Msg("account created, awaiting email confirmation")
		return nil
	}

	m.establish(ctx, session)
	return nil
}

func (m *clientSessionManager) SignOut(ctx context.Context) error {
	token := m.signOutLocally(ctx)

	if token != "" {
		if err := m.adapter.SignOut(ctx, token); err != nil {
			m.logger.Warn().Err(err).Str("func", "clientSessionManager.SignOut").Msg("remote sign out failed")
		}
	}

	return nil
}

// signOutLocally forgets the session in memory and in the store and returns
// the access token it held, if any.
func (m *clientSessionManager) signOutLocally(ctx context.Context) string {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	m.mu.Lock()
	token := m.session.AccessToken
	m.session = models.Session{}
	m.mu.Unlock()

	m.clearStored(ctx)

	if m.state.Get().Status != StatusSignedOut {
		m.transition(signedOutState())
	}

	return token
}

func (m *clientSessionManager) RefreshIfExpiring(ctx context.Context, leeway time.Duration) error {
	m.mu.Lock()
	current := m.session
	m.mu.Unlock()

	if !current.Active() || !current.ExpiresWithin(m.now(), leeway) {
		return nil
	}

	refreshed, err := m.adapter.RefreshSession(ctx, current.RefreshToken)
	if err != nil {
		if isTransportError(err) {
			return wrapTransport(err)
		}
		if isAuthRejection(err) {
			m.dropIfCurrent(ctx, current.AccessToken)
			return errors.Join(ErrSessionExpired, err)
		}
		return err
	}

	next := mergeSession(current, refreshed)

	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	m.mu.Lock()
	if m.session.AccessToken != current.AccessToken {
		// signed out or replaced while the refresh was in flight
		m.mu.Unlock()
		return nil
	}
	m.session = next
	m.mu.Unlock()

	m.persist(ctx, next)
	m.transition(signedInState(next))

	m.logger.Debug().Str("func", "clientSessionManager.RefreshIfExpiring").Time("expires_at", next.ExpiresAt).Msg("session refreshed")
	return nil
}

func (m *clientSessionManager) Snapshot() SessionState {
	return m.state.Get()
}

func (m *clientSessionManager) Subscribe(fn func(SessionState)) func() {
	return m.state.Subscribe(fn)
}

func (m *clientSessionManager) establish(ctx context.Context, session models.Session) {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.persist(ctx, session)
	m.transition(signedInState(session))
}

// dropIfCurrent signs out locally unless the session was replaced meanwhile.
func (m *clientSessionManager) dropIfCurrent(ctx context.Context, accessToken string) {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	m.mu.Lock()
	if m.session.AccessToken != accessToken {
		m.mu.Unlock()
		return
	}
	m.session = models.Session{}
	m.mu.Unlock()

	m.clearStored(ctx)
	m.transition(signedOutState())
}

func (m *clientSessionManager) transition(next SessionState) {
	m.state.Set(next)
}

// persist stores session. A failure only costs the restore on next start, so
// it is logged and not returned.
func (m *clientSessionManager) persist(ctx context.Context, session models.Session) {
	if err := m.repository.Save(ctx, session); err != nil {
		m.logger.Err(err).Str("func", "clientSessionManager.persist").Msg("failed to persist session")
	}
}

func (m *clientSessionManager) clearStored(ctx context.Context) {
	if err := m.repository.Clear(ctx); err != nil {
		m.logger.Err(err).Str("func", "clientSessionManager.clearStored").Msg("failed to clear stored session")
	}
}

// mergeSession keeps the user of old when the refresh response omits it.
func mergeSession(old, refreshed models.Session) models.Session {
	if refreshed.User.ID == uuid.Nil {
		refreshed.User = old.User
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = old.RefreshToken
	}
	return refreshed
}
