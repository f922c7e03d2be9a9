// ABOUTME: Carries the session manager through a context.Context
// ABOUTME: Reading it where none was installed is a wiring bug and fails loudly

package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned by FromContext when no manager was installed.
var ErrNoSession = errors.New("no session manager in context; install one with session.NewContext")

type contextKey struct{}

// NewContext returns a copy of ctx carrying m.
func NewContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the manager installed in ctx.
func FromContext(ctx context.Context) (*Manager, error) {
	if ctx == nil {
		return nil, ErrNoSession
	}
	m, ok := ctx.Value(contextKey{}).(*Manager)
	if !ok || m == nil {
		return nil, ErrNoSession
	}
	return m, nil
}

// MustFromContext is FromContext for call sites where a missing manager
// can only be a programming error. It panics instead of guessing an identity.
func MustFromContext(ctx context.Context) *Manager {
	m, err := FromContext(ctx)
	if err != nil {
		panic("session: " + err.Error())
	}
	return m
}
