package resolver

import (
	"context"
	"errors"
	"sync"

	"yahoo-auth/internal/auth"

	"github.com/google/uuid"
)

// MemoryResolver resolves profiles against an in-process user
// directory, creating users on first sight. Suitable for the demo
// host; real deployments supply their own Resolver.
type MemoryResolver struct {
	mu    sync.Mutex
	users map[string]*User // keyed by provider + "/" + subject
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		users: make(map[string]*User),
	}
}

func (r *MemoryResolver) Resolve(
	_ context.Context,
	profile *auth.Profile,
) (*User, error) {

	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	if profile.ID == "" {
		return nil, errors.New("profile missing subject identifier")
	}

	key := profile.Provider + "/" + profile.ID

	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[key]; ok {
		return u, nil
	}

	u := &User{
		ID:          uuid.NewString(),
		Provider:    profile.Provider,
		ProviderID:  profile.ID,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
	}
	r.users[key] = u

	return u, nil
}
