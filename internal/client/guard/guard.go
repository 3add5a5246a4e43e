// Package guard decides whether the current session may use a command.
package guard

import "errors"

var (
	// ErrLoginRequired means the command needs a logged-in session.
	ErrLoginRequired = errors.New("login required")

	// ErrForbidden means the session is logged in but lacks an admin role.
	ErrForbidden = errors.New("admin role required")
)

// State is the part of the session a guard reads.
type State interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Requirement lists what a command needs. Admin implies Auth.
type Requirement struct {
	Auth  bool
	Admin bool
}

var (
	Public   = Requirement{}
	LoggedIn = Requirement{Auth: true}
	Admin    = Requirement{Auth: true, Admin: true}
)

// Check returns nil when state satisfies req.
func Check(state State, req Requirement) error {
	if !req.Auth && !req.Admin {
		return nil
	}
	if !state.IsAuthenticated() {
		return ErrLoginRequired
	}
	if req.Admin && !state.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
