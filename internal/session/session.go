// Package session tracks per-client login state and pending notices,
// keyed by an opaque session id carried in a cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Category string

const (
	Success Category = "success"
	Danger  Category = "danger"
)

// Notice is a one-shot status message shown on the next rendered page.
type Notice struct {
	Category Category
	Message  string
}

type Session struct {
	ID            string
	Authenticated bool
	Notices       []Notice
	ExpiresAt     time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) AddNotice(c Category, msg string) {
	s.Notices = append(s.Notices, Notice{Category: c, Message: msg})
}

// PopNotices returns pending notices and clears them.
func (s *Session) PopNotices() []Notice {
	out := s.Notices
	s.Notices = nil
	return out
}

type Store interface {
	// Create starts a new unauthenticated session.
	Create(ctx context.Context) (Session, error)
	// Get returns ErrNotFound for unknown and expired sessions.
	Get(ctx context.Context, id string) (Session, error)
	// SetAuthenticated updates only the login flag of session id.
	SetAuthenticated(ctx context.Context, id string, v bool) error
	// SaveNotices replaces the pending notices of session id and leaves the
	// login flag as it is in the store.
	SaveNotices(ctx context.Context, id string, notices []Notice) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions expired at now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
