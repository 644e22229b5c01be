package provider

import (
	"context"

	"yahoo-auth/internal/auth"
)

// TokenProvider defines the contract every token authentication
// provider must implement. Implementations return a terminal
// outcome only and must not perform session management or
// credential storage.
type TokenProvider interface {
	// Name returns the provider identifier (e.g. "yahoo").
	Name() string

	// Authenticate validates the credentials found in the request
	// source and resolves them to an application user.
	Authenticate(ctx context.Context, src auth.Source) auth.Outcome
}
