package auth

// Location identifies where in an incoming request a credential
// field may live.
type Location int

const (
	LocationBody Location = iota
	LocationQuery
	LocationHeader
)

// Source exposes credential fields of an incoming request.
// Implementations adapt whatever request abstraction the host
// framework provides. Field must have no side effects.
type Source interface {
	// Field returns the value of name at loc, and whether a
	// non-empty value was present there.
	Field(loc Location, name string) (string, bool)
}

// lookupOrder is the fixed precedence for credential extraction.
var lookupOrder = [...]Location{LocationBody, LocationQuery, LocationHeader}

// Lookup returns the first non-empty value of name found in the
// source, checking body, then query, then headers.
func Lookup(src Source, name string) (string, bool) {
	for _, loc := range lookupOrder {
		if v, ok := src.Field(loc, name); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
