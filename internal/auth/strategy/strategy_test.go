package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"yahoo-auth/internal/auth"
)

// mapSource is a fixed-map auth.Source for tests.
type mapSource struct {
	body   map[string]string
	query  map[string]string
	header map[string]string
}

func (m mapSource) Field(loc auth.Location, name string) (string, bool) {
	var values map[string]string
	switch loc {
	case auth.LocationBody:
		values = m.body
	case auth.LocationQuery:
		values = m.query
	case auth.LocationHeader:
		values = m.header
	}
	v, ok := values[name]
	return v, ok && v != ""
}

// fakeExchanger records calls and returns canned results.
type fakeExchanger struct {
	exchangedCodes []string
	fetchedTokens  []string
	fetchedURLs    []string

	exchangeToken *oauth2.Token
	exchangeErr   error
	profileBody   []byte
	profileErr    error
}

func (f *fakeExchanger) ExchangeCode(_ context.Context, code string) (*oauth2.Token, error) {
	f.exchangedCodes = append(f.exchangedCodes, code)
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.exchangeToken, nil
}

func (f *fakeExchanger) AuthenticatedGet(_ context.Context, token *oauth2.Token, url string) ([]byte, error) {
	f.fetchedTokens = append(f.fetchedTokens, token.AccessToken)
	f.fetchedURLs = append(f.fetchedURLs, url)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profileBody, nil
}

func passthroughNormalizer(raw []byte) (*auth.Profile, error) {
	return &auth.Profile{Provider: "test", ID: "user-1", Raw: raw}, nil
}

func acceptAll(_ context.Context, _ Tokens, profile *auth.Profile) (any, string, error) {
	return profile.ID, "", nil
}

func newTestStrategy(t *testing.T, exch *fakeExchanger, verify Verify) *Strategy {
	t.Helper()
	if verify == nil {
		verify = acceptAll
	}
	s, err := New(
		Config{ProfileURL: "https://provider.example.com/userinfo"},
		exch,
		passthroughNormalizer,
		verify,
	)
	require.NoError(t, err)
	return s
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := newTestStrategy(t, &fakeExchanger{profileBody: []byte(`{}`)}, nil)

	cfg := s.Config()
	assert.Equal(t, DefaultCodeField, cfg.CodeField)
	assert.Equal(t, DefaultAccessTokenField, cfg.AccessTokenField)
	assert.Equal(t, DefaultRefreshTokenField, cfg.RefreshTokenField)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	exch := &fakeExchanger{}
	cfg := Config{ProfileURL: "https://provider.example.com/userinfo"}

	_, err := New(cfg, nil, passthroughNormalizer, acceptAll)
	assert.Error(t, err)

	_, err = New(cfg, exch, nil, acceptAll)
	assert.Error(t, err)

	_, err = New(cfg, exch, passthroughNormalizer, nil)
	assert.Error(t, err)

	_, err = New(Config{}, exch, passthroughNormalizer, acceptAll)
	assert.Error(t, err)
}

func TestAuthenticate_TokenPathSkipsExchange(t *testing.T) {
	t.Parallel()

	exch := &fakeExchanger{profileBody: []byte(`{"sub":"u"}`)}
	s := newTestStrategy(t, exch, nil)

	outcome := s.Authenticate(context.Background(), mapSource{
		body: map[string]string{"access_token": "T1"},
	})

	assert.Equal(t, auth.OutcomeSuccess, outcome.Kind)
	assert.Empty(t, exch.exchangedCodes)
	assert.Equal(t, []string{"T1"}, exch.fetchedTokens)
	assert.Equal(t, []string{"https://provider.example.com/userinfo"}, exch.fetchedURLs)
}

func TestAuthenticate_CodePathExchangesFirst(t *testing.T) {
	t.Parallel()

	exch := &fakeExchanger{
		exchangeToken: &oauth2.Token{AccessToken: "T2"},
		profileBody:   []byte(`{"sub":"u"}`),
	}
	s := newTestStrategy(t, exch, nil)

	outcome := s.Authenticate(context.Background(), mapSource{
		body: map[string]string{"code": "C1"},
	})

	assert.Equal(t, auth.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, []string{"C1"}, exch.exchangedCodes)
	assert.Equal(t, []string{"T2"}, exch.fetchedTokens)
}

func TestAuthenticate_MissingCredentialsFails(t *testing.T) {
	t.Parallel()

	exch := &fakeExchanger{}
	s := newTestStrategy(t, exch, nil)

	outcome := s.Authenticate(context.Background(), mapSource{})

	assert.Equal(t, auth.OutcomeFail, outcome.Kind)
	assert.Contains(t, outcome.Info, `"access_token"`)
	assert.Contains(t, outcome.Info, `"code"`)
	assert.Empty(t, exch.exchangedCodes)
	assert.Empty(t, exch.fetchedTokens)
}

func TestAuthenticate_CustomFieldNamesInFailInfo(t *testing.T) {
	t.Parallel()

	s, err := New(
		Config{
			ProfileURL:       "https://provider.example.com/userinfo",
			CodeField:        "authorization_code",
			AccessTokenField: "oauth_token",
		},
		&fakeExchanger{},
		passthroughNormalizer,
		acceptAll,
	)
	require.NoError(t, err)

	outcome := s.Authenticate(context.Background(), mapSource{})

	assert.Equal(t, auth.OutcomeFail, outcome.Kind)
	assert.Contains(t, outcome.Info, `"oauth_token"`)
	assert.Contains(t, outcome.Info, `"authorization_code"`)
}

func TestAuthenticate_ExchangeErrorIsFatal(t *testing.T) {
	t.Parallel()

	exch := &fakeExchanger{exchangeErr: errors.New("invalid_grant")}
	s := newTestStrategy(t, exch, nil)

	outcome := s.Authenticate(context.Background(), mapSource{
		query: map[string]string{"code": "C1"},
	})

	assert.Equal(t, auth.OutcomeError, outcome.Kind)
	assert.ErrorContains(t, outcome.Err, "code exchange failed")
	assert.Empty(t, exch.fetchedTokens)
}

func TestAuthenticate_ProfileFetchErrorIsFatal(t *testing.T) {
	t.Parallel()

	exch := &fakeExchanger{profileErr: errors.New("connection refused")}
	s := newTestStrategy(t, exch, nil)

	outcome := s.Authenticate(context.Background(), mapSource{
		body: map[string]string{"access_token": "T1"},
	})

	assert.Equal(t, auth.OutcomeError, outcome.Kind)
	assert.ErrorContains(t, outcome.Err, "profile fetch failed")
}

func TestAuthenticate_NormalizeErrorIsFatal(t *testing.T) {
	t.Parallel()

	exch := &fakeExchanger{profileBody: []byte(`not json`)}
	s, err := New(
		Config{ProfileURL: "https://provider.example.com/userinfo"},
		exch,
		func([]byte) (*auth.Profile, error) {
			return nil, errors.New("bad payload")
		},
		acceptAll,
	)
	require.NoError(t, err)

	outcome := s.Authenticate(context.Background(), mapSource{
		body: map[string]string{"access_token": "T1"},
	})

	assert.Equal(t, auth.OutcomeError, outcome.Kind)
	assert.ErrorContains(t, outcome.Err, "profile parse failed")
}

func TestAuthenticate_VerifyTrichotomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verify   Verify
		expected auth.OutcomeKind
		info     string
	}{
		{
			name: "verify error is fatal",
			verify: func(context.Context, Tokens, *auth.Profile) (any, string, error) {
				return nil, "", errors.New("directory down")
			},
			expected: auth.OutcomeError,
		},
		{
			name: "nil user is a recoverable failure",
			verify: func(context.Context, Tokens, *auth.Profile) (any, string, error) {
				return nil, "no matching user", nil
			},
			expected: auth.OutcomeFail,
			info:     "no matching user",
		},
		{
			name: "user is a success",
			verify: func(context.Context, Tokens, *auth.Profile) (any, string, error) {
				return "user-1", "", nil
			},
			expected: auth.OutcomeSuccess,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			exch := &fakeExchanger{profileBody: []byte(`{"sub":"u"}`)}
			s := newTestStrategy(t, exch, tt.verify)

			outcome := s.Authenticate(context.Background(), mapSource{
				body: map[string]string{"access_token": "T1"},
			})

			assert.Equal(t, tt.expected, outcome.Kind)
			if tt.info != "" {
				assert.Equal(t, tt.info, outcome.Info)
			}
		})
	}
}

func TestAuthenticate_RefreshTokenPropagation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		requestRefresh  string
		exchangeRefresh string
		expected        string
	}{
		{
			name:           "request refresh token kept when exchange returns none",
			requestRefresh: "R1",
			expected:       "R1",
		},
		{
			name:            "exchange refresh token wins",
			requestRefresh:  "R1",
			exchangeRefresh: "R2",
			expected:        "R2",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen Tokens
			verify := func(_ context.Context, tokens Tokens, _ *auth.Profile) (any, string, error) {
				seen = tokens
				return "user-1", "", nil
			}

			exch := &fakeExchanger{
				exchangeToken: &oauth2.Token{
					AccessToken:  "T2",
					RefreshToken: tt.exchangeRefresh,
				},
				profileBody: []byte(`{"sub":"u"}`),
			}
			s := newTestStrategy(t, exch, verify)

			body := map[string]string{"code": "C1"}
			if tt.requestRefresh != "" {
				body["refresh_token"] = tt.requestRefresh
			}

			outcome := s.Authenticate(context.Background(), mapSource{body: body})

			require.Equal(t, auth.OutcomeSuccess, outcome.Kind)
			assert.Equal(t, "T2", seen.AccessToken)
			assert.Equal(t, tt.expected, seen.RefreshToken)
		})
	}
}

func TestAuthenticate_PassSourceForwardsSource(t *testing.T) {
	t.Parallel()

	src := mapSource{
		body:  map[string]string{"access_token": "T1"},
		query: map[string]string{"device": "cli"},
	}

	var seenDevice string
	verify := func(_ context.Context, s auth.Source, _ Tokens, _ *auth.Profile) (any, string, error) {
		seenDevice, _ = s.Field(auth.LocationQuery, "device")
		return "user-1", "", nil
	}

	s, err := NewWithSource(
		Config{ProfileURL: "https://provider.example.com/userinfo"},
		&fakeExchanger{profileBody: []byte(`{"sub":"u"}`)},
		passthroughNormalizer,
		verify,
	)
	require.NoError(t, err)
	assert.True(t, s.Config().PassSource)

	outcome := s.Authenticate(context.Background(), src)

	assert.Equal(t, auth.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "cli", seenDevice)
}
