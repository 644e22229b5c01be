package yahoo

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"yahoo-auth/internal/auth"
)

// userInfo mirrors the fields of Yahoo's openid userinfo response
// that normalization reads. Fields beyond sub depend on the
// granted scopes.
type userInfo struct {
	Sub           string            `json:"sub"`
	Name          string            `json:"name"`
	FamilyName    string            `json:"family_name"`
	GivenName     string            `json:"given_name"`
	Email         string            `json:"email"`
	ProfileImages map[string]string `json:"profile_images"`
}

// Normalize converts a raw Yahoo userinfo response into the
// normalized profile shape. It is a pure function: no I/O, and
// deterministic for a given input.
func Normalize(raw []byte) (*auth.Profile, error) {
	var ui userInfo
	if err := json.Unmarshal(raw, &ui); err != nil {
		return nil, fmt.Errorf("invalid yahoo userinfo payload: %w", err)
	}

	if ui.Sub == "" {
		return nil, errors.New("yahoo userinfo missing subject identifier")
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid yahoo userinfo payload: %w", err)
	}

	p := &auth.Profile{
		Provider:    providerName,
		ID:          ui.Sub,
		DisplayName: ui.Name,
		Email:       ui.Email,
		Raw:         append([]byte(nil), raw...),
		JSON:        parsed,
	}

	if ui.FamilyName != "" || ui.GivenName != "" {
		p.Name = &auth.Name{
			FamilyName: ui.FamilyName,
			GivenName:  ui.GivenName,
		}
	}

	if len(ui.ProfileImages) > 0 {
		// Map order is not stable; sort keys so repeated
		// normalization of one payload yields one output.
		keys := make([]string, 0, len(ui.ProfileImages))
		for k := range ui.ProfileImages {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		p.Photos = make([]auth.Photo, 0, len(keys))
		for _, k := range keys {
			p.Photos = append(p.Photos, auth.Photo{
				Type:  k,
				Value: ui.ProfileImages[k],
			})
		}
	}

	return p, nil
}
