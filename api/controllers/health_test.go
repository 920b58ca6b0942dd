package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestHealthReady(t *testing.T) {
	cases := []struct {
		name     string
		database error
		cache    error
		noCache  bool
		want     int
	}{
		{"all healthy", nil, nil, false, http.StatusOK},
		{"no cache configured", nil, nil, true, http.StatusOK},
		{"database down", errors.New("refused"), nil, false, http.StatusServiceUnavailable},
		{"cache down", nil, errors.New("refused"), false, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cache stubPinger
			handler := HealthReady(stubPinger{err: tc.database}, nil, nil)
			if !tc.noCache {
				cache = stubPinger{err: tc.cache}
				handler = HealthReady(stubPinger{err: tc.database}, cache, nil)
			}

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, rec.Code)
			}
		})
	}
}
