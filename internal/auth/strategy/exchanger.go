package strategy

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// Exchanger is the boundary to the identity provider's wire
// protocol. The OAuth2 token-endpoint semantics live behind it;
// the strategy only sequences the calls.
type Exchanger interface {
	// ExchangeCode trades an authorization code for tokens using
	// grant type "authorization_code".
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// AuthenticatedGet performs a bearer-authenticated GET against
	// url and returns the response body.
	AuthenticatedGet(ctx context.Context, token *oauth2.Token, url string) ([]byte, error)
}

// maxProfileResponse bounds userinfo reads; provider profiles are
// a few hundred bytes.
const maxProfileResponse = 1 << 20

type oauth2Exchanger struct {
	cfg *oauth2.Config
}

// NewOAuth2Exchanger wraps a golang.org/x/oauth2 configuration as
// an Exchanger. The config's RedirectURL is sent verbatim on
// exchange; token flows use a placeholder value since no browser
// redirect happens.
func NewOAuth2Exchanger(cfg *oauth2.Config) Exchanger {
	return &oauth2Exchanger{cfg: cfg}
}

func (e *oauth2Exchanger) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return e.cfg.Exchange(ctx, code)
}

func (e *oauth2Exchanger) AuthenticatedGet(ctx context.Context, token *oauth2.Token, url string) ([]byte, error) {
	client := e.cfg.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileResponse))
	if err != nil {
		return nil, fmt.Errorf("failed to read profile response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile request returned status %d: %s", resp.StatusCode, body)
	}

	return body, nil
}
