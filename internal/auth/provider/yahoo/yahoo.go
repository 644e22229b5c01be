package yahoo

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"yahoo-auth/internal/auth"
	"yahoo-auth/internal/auth/strategy"
	"yahoo-auth/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
)

const providerName = "yahoo"

// Yahoo OAuth2 endpoints. Note get_token, not request_auth, for
// the token endpoint: the request_auth URL only serves the
// authorization page and cannot complete a code exchange.
const (
	IssuerURL         = "https://api.login.yahoo.com"
	DefaultAuthURL    = IssuerURL + "/oauth2/request_auth"
	DefaultTokenURL   = IssuerURL + "/oauth2/get_token"
	DefaultProfileURL = IssuerURL + "/openid/v1/userinfo"
)

// placeholderRedirectURL is sent on code exchange. The token flow
// is not browser-redirect based, but Yahoo requires the parameter
// to be present.
const placeholderRedirectURL = "oob"

// Provider implements token authentication against Yahoo. It
// returns profile facts plus the application's user decision only;
// no sessions are created here.
type Provider struct {
	strategy *strategy.Strategy
}

// New builds a Yahoo provider from static endpoint defaults. Any
// URL or field name set on cfg overrides the default.
func New(cfg strategy.Config, verify strategy.Verify) (*Provider, error) {
	s, err := build(cfg, verify, nil)
	if err != nil {
		return nil, err
	}
	return &Provider{strategy: s}, nil
}

// NewWithSource is New for applications whose verify callback
// needs the request source.
func NewWithSource(cfg strategy.Config, verify strategy.VerifyWithSource) (*Provider, error) {
	s, err := build(cfg, nil, verify)
	if err != nil {
		return nil, err
	}
	return &Provider{strategy: s}, nil
}

// NewWithDiscovery resolves the authorization and token endpoints
// via OIDC discovery against the Yahoo issuer instead of the
// static defaults. The profile endpoint keeps its default unless
// overridden.
func NewWithDiscovery(ctx context.Context, cfg strategy.Config, verify strategy.Verify) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("yahoo oauth config missing client credentials")
	}

	oidcProvider, err := oidc.NewProvider(ctx, IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover yahoo endpoints: %w", err)
	}

	ep := oidcProvider.Endpoint()
	cfg.AuthURL = ep.AuthURL
	cfg.TokenURL = ep.TokenURL

	logger.Info("yahoo endpoints discovered", map[string]any{
		"auth_url":  ep.AuthURL,
		"token_url": ep.TokenURL,
	})

	return New(cfg, verify)
}

func build(cfg strategy.Config, verify strategy.Verify, verifySrc strategy.VerifyWithSource) (*strategy.Strategy, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("yahoo oauth config missing client credentials")
	}

	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = DefaultProfileURL
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  placeholderRedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	exch := strategy.NewOAuth2Exchanger(oauthCfg)

	if verifySrc != nil {
		return strategy.NewWithSource(cfg, exch, Normalize, verifySrc)
	}
	return strategy.New(cfg, exch, Normalize, verify)
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// Authenticate runs the strategy for one request.
func (p *Provider) Authenticate(ctx context.Context, src auth.Source) auth.Outcome {
	return p.strategy.Authenticate(ctx, src)
}
