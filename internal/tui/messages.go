package tui

import (
	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

// Page names a destination of the router.
type Page string

const (
	PageHome     Page = "home"
	PageWriteups Page = "writeups"
	PageDetail   Page = "detail"
	PageAuth     Page = "auth"
	PageNotFound Page = "not-found"
)

// NavigateTo switches the router to Page. A non-nil Payload is delivered to
// the new page instead of its Init command.
type NavigateTo struct {
	Page    Page
	Payload any
}

// SessionChangedMsg carries every session transition into the program.
type SessionChangedMsg struct {
	State service.SessionState
}

// OpenWriteupMsg asks the detail page to show the writeup with Slug.
type OpenWriteupMsg struct {
	Slug string
}

type writeupsLoadedMsg struct {
	items []models.Writeup
	err   error
}

type writeupLoadedMsg struct {
	slug    string
	writeup *models.Writeup
	err     error
}

type authResultMsg struct {
	mode authMode
	err  error
}

type signedOutMsg struct{}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

// authNoticeMsg carries a one-off notice for the landing page.
type authNoticeMsg struct {
	text string
}
