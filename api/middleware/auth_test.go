package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alunakitchen/pickup-backend/pkg/auth"
	"github.com/alunakitchen/pickup-backend/pkg/config"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "aluna-test",
	ExpirationMinutes: 15,
}

type stubSessionChecker struct {
	live bool
	err  error
}

func (s stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.live, s.err
}

func mintTestToken(t *testing.T, userID uuid.UUID, isAdmin bool) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWTConfig, time.Now(), auth.AccessTokenPayload{
		UserID:  userID,
		Email:   "juan@example.com",
		IsAdmin: isAdmin,
		JTI:     uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthenticateSeedsContext(t *testing.T) {
	userID := uuid.New()
	token := mintTestToken(t, userID, true)

	var gotUserID string
	var gotAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotAdmin = IsAdminFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Authenticate(testJWTConfig, stubSessionChecker{live: true}, testLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d: %s", resp.Code, resp.Body.String())
	}
	if gotUserID != userID.String() {
		t.Fatalf("unexpected user id: %s", gotUserID)
	}
	if !gotAdmin {
		t.Fatal("expected admin flag to propagate")
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	handler := Authenticate(testJWTConfig, stubSessionChecker{live: true}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	handler := Authenticate(testJWTConfig, stubSessionChecker{live: true}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthenticateRevokedSession(t *testing.T) {
	token := mintTestToken(t, uuid.New(), false)

	handler := Authenticate(testJWTConfig, stubSessionChecker{live: false}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAdminForbidsCustomers(t *testing.T) {
	handler := RequireAdmin(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req = req.WithContext(WithIsAdmin(req.Context(), false))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireAdminPassesOperators(t *testing.T) {
	called := false
	handler := RequireAdmin(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req = req.WithContext(WithIsAdmin(req.Context(), true))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if !called {
		t.Fatal("expected handler to run")
	}
}
