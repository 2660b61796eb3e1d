package internal

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const versionContextKey contextKey = "NCVersion"

func SetVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestedVersion := strings.TrimSpace(r.Header.Get("NC-Version"))

		if requestedVersion == "" {
			r.ParseForm()

			requestedVersion = strings.TrimSpace(r.Form.Get("nc-version"))

			if requestedVersion == "" {
				requestedVersion = "v1"
			}
		}

		r = r.WithContext(context.WithValue(ctx, versionContextKey, requestedVersion))

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

// GetVersion returns the response version for r: v1 is hex only, v2 adds the
// RGB triples. Unknown versions fall back to v1.
func GetVersion(r *http.Request) string {
	version, ok := r.Context().Value(versionContextKey).(string)

	if !ok {
		return ""
	}

	switch version {
	case "v1":
		return version
	case "v2":
		return version
	default:
		return "v1"
	}
}
