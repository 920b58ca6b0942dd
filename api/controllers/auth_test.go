package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liftledger/liftledger-backend/internal/auth"
	pkgerrors "github.com/liftledger/liftledger-backend/pkg/errors"
)

type stubAuthService struct {
	token        *auth.TokenDTO
	err          error
	lastLogin    *auth.LoginInput
	lastRegister *auth.RegisterInput
}

func (s *stubAuthService) Login(_ context.Context, input auth.LoginInput) (*auth.TokenDTO, error) {
	s.lastLogin = &input
	return s.token, s.err
}

func (s *stubAuthService) Register(_ context.Context, input auth.RegisterInput) (*auth.TokenDTO, error) {
	s.lastRegister = &input
	return s.token, s.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{token: &auth.TokenDTO{Token: "signed-jwt"}}
	handler := AuthLogin(svc, nil)

	rec := postJSON(t, handler, "/auth/login", `{"username":"u1","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var payload auth.TokenDTO
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Token != "signed-jwt" {
		t.Fatalf("expected token in payload got %q", payload.Token)
	}
	if svc.lastLogin == nil || svc.lastLogin.Username != "u1" {
		t.Fatalf("expected login input forwarded got %+v", svc.lastLogin)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid username/password")}
	handler := AuthLogin(svc, nil)

	rec := postJSON(t, handler, "/auth/login", `{"username":"u1","password":"wrong-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  int    `json:"status"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "Invalid username/password" {
		t.Fatalf("expected generic credential message got %q", envelope.Error.Message)
	}
}

func TestAuthLoginRejectsSchemaViolations(t *testing.T) {
	svc := &stubAuthService{token: &auth.TokenDTO{Token: "never"}}
	handler := AuthLogin(svc, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing password", `{"username":"u1"}`},
		{"short password", `{"username":"u1","password":"abc"}`},
		{"unknown field", `{"username":"u1","password":"secret1","extra":true}`},
		{"malformed json", `{"username":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, handler, "/auth/login", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
		})
	}
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &stubAuthService{token: &auth.TokenDTO{Token: "signed-jwt"}}
	handler := AuthRegister(svc, nil)

	rec := postJSON(t, handler, "/auth/register",
		`{"username":"u1","password":"secret1","firstName":"A","lastName":"B","email":"a@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.lastRegister == nil || svc.lastRegister.Email != "a@example.com" {
		t.Fatalf("expected register input forwarded got %+v", svc.lastRegister)
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.Newf(pkgerrors.CodeDuplicate, "Duplicate username: %s", "u1")}
	handler := AuthRegister(svc, nil)

	rec := postJSON(t, handler, "/auth/register",
		`{"username":"u1","password":"secret1","firstName":"A","lastName":"B","email":"a@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
