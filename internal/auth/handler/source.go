package handler

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"yahoo-auth/internal/auth"

	"github.com/gin-gonic/gin"
)

// maxCredentialBody bounds how much of a request body is read when
// looking for credential fields.
const maxCredentialBody = 1 << 20

// GinSource adapts a gin request to the auth.Source contract. The
// body is consumed once at construction; JSON and form-encoded
// bodies are supported.
type GinSource struct {
	c    *gin.Context
	body map[string]string
}

// NewGinSource reads the request body and returns a source over
// body, query, and headers. A body that is neither JSON nor
// form-encoded simply yields no body fields.
func NewGinSource(c *gin.Context) *GinSource {
	src := &GinSource{c: c}

	if c.Request == nil || c.Request.Body == nil {
		return src
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCredentialBody))
	if err != nil || len(data) == 0 {
		return src
	}

	src.body = parseBody(c.ContentType(), data)
	return src
}

func parseBody(contentType string, data []byte) map[string]string {
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil
		}
		fields := make(map[string]string, len(values))
		for k := range values {
			fields[k] = values.Get(k)
		}
		return fields
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil
	}
	fields := make(map[string]string, len(parsed))
	for k, v := range parsed {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return fields
}

// Field returns the value of name at loc and whether a non-empty
// value was present.
func (s *GinSource) Field(loc auth.Location, name string) (string, bool) {
	switch loc {
	case auth.LocationBody:
		v, ok := s.body[name]
		return v, ok && v != ""
	case auth.LocationQuery:
		v := s.c.Query(name)
		return v, v != ""
	case auth.LocationHeader:
		v := s.c.GetHeader(name)
		return v, v != ""
	}
	return "", false
}
