package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"default", "/fr", "", "v1"},
		{"header", "/fr", "v2", "v2"},
		{"header wins over form", "/fr?nc-version=v1", " v2 ", "v2"},
		{"form", "/fr?nc-version=v2", "", "v2"},
		{"unknown", "/fr?nc-version=v9", "", "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := SetVersion(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetVersion(r)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("NC-Version", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "", GetVersion(httptest.NewRequest(http.MethodGet, "/", nil)))
}
