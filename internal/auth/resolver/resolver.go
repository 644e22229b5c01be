package resolver

import (
	"context"

	"yahoo-auth/internal/auth"
)

// User is the application-side account a profile resolves to.
type User struct {
	ID          string // application user ID
	Provider    string
	ProviderID  string // provider-scoped subject identifier
	DisplayName string
	Email       string
}

// Resolver determines which application user an external profile
// belongs to. It is the ONLY place where profile-to-user mapping
// logic lives.
type Resolver interface {
	Resolve(
		ctx context.Context,
		profile *auth.Profile,
	) (*User, error)
}
