package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGroups struct {
	id    int64
	bound bool
	err   error
}

func (s stubGroups) GetGroupID(context.Context) (int64, bool, error) {
	return s.id, s.bound, s.err
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		groups     stubGroups
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no group bound",
			groups:     stubGroups{},
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true,"group_id":null}`,
		},
		{
			name:       "group bound",
			groups:     stubGroups{id: -1001234567890, bound: true},
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true,"group_id":"-1001234567890"}`,
		},
		{
			name:       "store unavailable",
			groups:     stubGroups{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"ok":false,"group_id":null,"error":"store unavailable"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := NewRouter(tt.groups, slog.New(slog.NewTextHandler(io.Discard, nil)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestOnlyHealthIsServed(t *testing.T) {
	t.Parallel()

	router := NewRouter(stubGroups{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServerStartAndShutdown(t *testing.T) {
	t.Parallel()

	srv := New("127.0.0.1:0", stubGroups{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}
