package auth

import (
	"net/http"
	"strings"
)

const bearerPrefix = "bearer "

// ExtractBearerToken pulls the token out of an Authorization header value,
// tolerating case differences in the Bearer prefix.
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(header), bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return ""
}

// ExtractToken tries the Authorization header first and falls back to the
// "token" query parameter, the order websocket clients rely on.
func ExtractToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
