package strategy

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"yahoo-auth/internal/auth"
)

// Default field names for locating credentials in a request.
const (
	DefaultCodeField         = "code"
	DefaultAccessTokenField  = "access_token"
	DefaultRefreshTokenField = "refresh_token"
)

// Config holds the immutable strategy configuration. Field names
// left empty take the defaults above; endpoint URLs are the
// provider package's concern.
type Config struct {
	ClientID     string
	ClientSecret string

	AuthURL    string
	TokenURL   string
	ProfileURL string

	CodeField         string
	AccessTokenField  string
	RefreshTokenField string

	// PassSource forwards the request source to the verify
	// callback so applications can read extra request fields.
	PassSource bool
}

// Tokens carries the provider credentials handed to the verify
// callback.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Normalizer turns a raw userinfo response body into a normalized
// profile. Implementations must be pure: deterministic, no I/O.
type Normalizer func(raw []byte) (*auth.Profile, error)

// Verify is the application-supplied callback deciding which user
// an authenticated profile belongs to. Returning a nil user with a
// nil error is a recoverable rejection described by info; a non-nil
// error is fatal.
type Verify func(
	ctx context.Context,
	tokens Tokens,
	profile *auth.Profile,
) (user any, info string, err error)

// VerifyWithSource is Verify with access to the request source,
// used when Config.PassSource is set.
type VerifyWithSource func(
	ctx context.Context,
	src auth.Source,
	tokens Tokens,
	profile *auth.Profile,
) (user any, info string, err error)

// Strategy validates a client-supplied authorization code or access
// token and resolves it to an application user. It holds no mutable
// state; one instance serves concurrent requests.
type Strategy struct {
	cfg          Config
	exchanger    Exchanger
	normalize    Normalizer
	verify       Verify
	verifySource VerifyWithSource
}

// New builds a strategy around an exchanger, normalizer, and verify
// callback.
func New(cfg Config, exch Exchanger, normalize Normalizer, verify Verify) (*Strategy, error) {
	s, err := newStrategy(cfg, exch, normalize)
	if err != nil {
		return nil, err
	}
	if verify == nil {
		return nil, fmt.Errorf("strategy: verify callback is required")
	}
	s.verify = verify
	return s, nil
}

// NewWithSource builds a strategy whose verify callback receives
// the request source. Config.PassSource is implied.
func NewWithSource(cfg Config, exch Exchanger, normalize Normalizer, verify VerifyWithSource) (*Strategy, error) {
	cfg.PassSource = true
	s, err := newStrategy(cfg, exch, normalize)
	if err != nil {
		return nil, err
	}
	if verify == nil {
		return nil, fmt.Errorf("strategy: verify callback is required")
	}
	s.verifySource = verify
	return s, nil
}

func newStrategy(cfg Config, exch Exchanger, normalize Normalizer) (*Strategy, error) {
	if exch == nil {
		return nil, fmt.Errorf("strategy: exchanger is required")
	}
	if normalize == nil {
		return nil, fmt.Errorf("strategy: normalizer is required")
	}
	if cfg.ProfileURL == "" {
		return nil, fmt.Errorf("strategy: profile URL is required")
	}

	if cfg.CodeField == "" {
		cfg.CodeField = DefaultCodeField
	}
	if cfg.AccessTokenField == "" {
		cfg.AccessTokenField = DefaultAccessTokenField
	}
	if cfg.RefreshTokenField == "" {
		cfg.RefreshTokenField = DefaultRefreshTokenField
	}

	return &Strategy{
		cfg:       cfg,
		exchanger: exch,
		normalize: normalize,
	}, nil
}

// Config returns the effective configuration after defaulting.
func (s *Strategy) Config() Config {
	return s.cfg
}

// Authenticate runs one authentication attempt against the request
// source and returns the terminal outcome. An access token in the
// request short-circuits the code exchange; a code alone is first
// exchanged for tokens. Neither present is a recoverable failure,
// not an error.
func (s *Strategy) Authenticate(ctx context.Context, src auth.Source) auth.Outcome {
	accessToken, _ := auth.Lookup(src, s.cfg.AccessTokenField)
	refreshToken, _ := auth.Lookup(src, s.cfg.RefreshTokenField)

	if accessToken == "" {
		code, ok := auth.Lookup(src, s.cfg.CodeField)
		if !ok {
			return auth.Fail(fmt.Sprintf(
				"request must contain %q or %q",
				s.cfg.AccessTokenField, s.cfg.CodeField,
			))
		}

		tok, err := s.exchanger.ExchangeCode(ctx, code)
		if err != nil {
			return auth.Error(fmt.Errorf("code exchange failed: %w", err))
		}

		accessToken = tok.AccessToken
		if tok.RefreshToken != "" {
			refreshToken = tok.RefreshToken
		}
	}

	body, err := s.exchanger.AuthenticatedGet(
		ctx,
		&oauth2.Token{AccessToken: accessToken},
		s.cfg.ProfileURL,
	)
	if err != nil {
		return auth.Error(fmt.Errorf("profile fetch failed: %w", err))
	}

	profile, err := s.normalize(body)
	if err != nil {
		return auth.Error(fmt.Errorf("profile parse failed: %w", err))
	}

	tokens := Tokens{AccessToken: accessToken, RefreshToken: refreshToken}

	var (
		user any
		info string
	)
	if s.verifySource != nil {
		user, info, err = s.verifySource(ctx, src, tokens, profile)
	} else {
		user, info, err = s.verify(ctx, tokens, profile)
	}

	if err != nil {
		return auth.Error(err)
	}
	if user == nil {
		return auth.Fail(info)
	}
	return auth.Success(user, info)
}
