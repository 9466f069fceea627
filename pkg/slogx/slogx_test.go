package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/credvault/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNewRedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slogx.New(slogx.Config{Service: "credvault", Level: "debug", Output: &buf})
	defer slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	log.Debug("decrypt fallback", "account_id", 7, "field", "password", "password", "hunter2", "Secret", "JBSW")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "credvault", line["service"])
	require.Equal(t, slogx.Redacted, line["password"])
	require.Equal(t, slogx.Redacted, line["Secret"])
	require.Equal(t, "password", line["field"], "field names are fine, values are not")
	require.NotContains(t, buf.String(), "hunter2")
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slogx.New(slogx.Config{Level: "warn", Format: "text", Output: &buf})
	defer slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	log.Info("quiet")
	require.Empty(t, buf.String())

	log.Warn("loud")
	require.Contains(t, buf.String(), "msg=loud")
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var fromCtx *slog.Logger
	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = slogx.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts?tag=secret", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.NotSame(t, base, fromCtx)
	require.Contains(t, buf.String(), `"status":418`)
	require.Contains(t, buf.String(), `"path":"/v1/accounts"`)
	require.False(t, strings.Contains(buf.String(), "tag=secret"))
}

func TestFromContextDefault(t *testing.T) {
	require.Same(t, slog.Default(), slogx.FromContext(context.Background()))
}
