// Package session holds the authenticated user for the lifetime of the
// dashboard. It is an explicit dependency passed to the UI rather than an
// ambient singleton; logout clears the token and the session with it.
package session

import (
	"context"
	"fmt"

	"github.com/librelib/librarian/internal/api"
)

// Session is the auth context established at boot from the stored token.
type Session struct {
	user api.User
}

// Establish verifies the stored credentials by fetching the current user.
// An inactive account is rejected up front so every view can assume an
// active user.
func Establish(ctx context.Context, client *api.Client) (*Session, error) {
	user, err := client.FetchCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	if user.Status != api.UserActive {
		return nil, fmt.Errorf("account %s is %s", user.Email, user.Status)
	}
	return &Session{user: *user}, nil
}

// User returns the authenticated user.
func (s *Session) User() api.User {
	if s == nil {
		return api.User{}
	}
	return s.user
}

// UserID returns the authenticated user's id, or "" when no session exists.
// Views use this as the "user not yet loaded" guard: an empty id resolves
// per-user fetches to an empty list instead of erroring.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.user.ID
}

// HasRole reports whether the user holds one of the given roles.
func (s *Session) HasRole(roles ...string) bool {
	return s != nil && s.user.HasRole(roles...)
}

// CanManage reports whether catalog mutations are permitted.
func (s *Session) CanManage() bool {
	return s != nil && s.user.CanManage()
}

// MemberOf reports whether the user belongs to the given library.
func (s *Session) MemberOf(libraryID string) bool {
	if s == nil {
		return false
	}
	for _, id := range s.user.Libraries {
		if id == libraryID {
			return true
		}
	}
	return false
}
