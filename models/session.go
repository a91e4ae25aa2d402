package models

import "time"

// Session is an authenticated session issued by the credential service.
//
// A Session with an empty AccessToken describes an account that exists but
// was not signed in (for example a sign-up that awaits email confirmation).
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Active reports whether the session carries an access token.
func (s Session) Active() bool {
	return s.AccessToken != ""
}

// ExpiresWithin reports whether the access token expires before now+d.
// A zero ExpiresAt is treated as never expiring.
func (s Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(d).Before(s.ExpiresAt)
}
