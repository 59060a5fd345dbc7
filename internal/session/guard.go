package session

import (
	"context"
	"crypto/subtle"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

// Verifier decides whether a username/password pair may log in.
type Verifier interface {
	Verify(ctx context.Context, username, password string) bool
}

// StaticCredentials accepts exactly one fixed pair.
type StaticCredentials struct {
	Username string
	Password string
}

func (c StaticCredentials) Verify(_ context.Context, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// Guard persists login state changes to the store as they happen.
type Guard struct {
	verifier Verifier
	store    Store
	metrics  *telemetry.Metrics
}

func NewGuard(v Verifier, store Store, m *telemetry.Metrics) *Guard {
	return &Guard{verifier: v, store: store, metrics: m}
}

// Authenticate marks s as logged in when the verifier accepts the pair.
// A failed attempt leaves the session's current state untouched.
func (g *Guard) Authenticate(ctx context.Context, s *Session, username, password string) (bool, error) {
	ok := g.verifier.Verify(ctx, username, password)
	result := "rejected"
	if ok {
		result = "accepted"
	}
	g.metrics.LoginAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	if !ok {
		return false, nil
	}

	if err := g.store.SetAuthenticated(ctx, s.ID, true); err != nil {
		return false, fmt.Errorf("store login: %w", err)
	}
	s.Authenticated = true
	return true, nil
}

func (g *Guard) IsAuthenticated(s *Session) bool {
	return s != nil && s.Authenticated
}

func (g *Guard) Clear(ctx context.Context, s *Session) error {
	s.Authenticated = false
	if err := g.store.SetAuthenticated(ctx, s.ID, false); err != nil {
		return fmt.Errorf("store logout: %w", err)
	}
	return nil
}
