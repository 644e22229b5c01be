package auth

// Profile represents a normalized user profile returned by an OAuth
// provider. It contains facts only, no decisions.
type Profile struct {
	Provider    string // e.g. "yahoo"
	ID          string // provider-scoped unique user identifier (sub)
	DisplayName string // full display name, empty if the provider omitted it
	Name        *Name  // structured name, nil unless the provider sent parts
	Email       string // email returned by provider, empty if absent
	Photos      []Photo

	// Raw is the verbatim userinfo response body and JSON the parsed
	// form, kept for diagnostics. Normalization never reads them back.
	Raw  []byte
	JSON map[string]any
}

// Name holds the structured name parts a provider may return
// alongside the display name.
type Name struct {
	FamilyName string
	GivenName  string
}

// Photo is one entry of a provider's size-keyed image map,
// flattened to a (type, value) pair.
type Photo struct {
	Type  string // original map key, e.g. "image64"
	Value string // image URL
}
