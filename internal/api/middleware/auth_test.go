package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

type fakeRevoker struct {
	revoked map[string]bool
	err     error
}

func (r *fakeRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	if r.revoked == nil {
		r.revoked = make(map[string]bool)
	}
	r.revoked[jti] = true
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.revoked[jti], nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func defaultClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "acc_1",
		"name": "Ana Silva",
		"role": "user",
		"jti":  "jti_1",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func invokeAuth(t *testing.T, authHeader string, revoker *fakeRevoker) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(testSecret, revoker, zerolog.Nop())(next)(c)
	return c, err
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, defaultClaims())

	c, err := invokeAuth(t, "Bearer "+token, &fakeRevoker{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Get("account_id"); got != "acc_1" {
		t.Errorf("expected account_id acc_1, got %v", got)
	}
	if got := c.Get("role"); got != "user" {
		t.Errorf("expected role user, got %v", got)
	}
	if got := c.Get("jti"); got != "jti_1" {
		t.Errorf("expected jti jti_1, got %v", got)
	}
	if _, ok := c.Get("exp").(time.Time); !ok {
		t.Error("expected exp to be set as time.Time")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := invokeAuth(t, "", &fakeRevoker{})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := invokeAuth(t, "Token abc", &fakeRevoker{})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", defaultClaims())

	_, err := invokeAuth(t, "Bearer "+token, &fakeRevoker{})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := defaultClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	_, err := invokeAuth(t, "Bearer "+token, &fakeRevoker{})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_RevokedToken(t *testing.T) {
	token := signToken(t, testSecret, defaultClaims())
	revoker := &fakeRevoker{revoked: map[string]bool{"jti_1": true}}

	_, err := invokeAuth(t, "Bearer "+token, revoker)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_RevocationStoreDown_AdmitsToken(t *testing.T) {
	token := signToken(t, testSecret, defaultClaims())
	revoker := &fakeRevoker{err: errors.New("redis unavailable")}

	_, err := invokeAuth(t, "Bearer "+token, revoker)
	if err != nil {
		t.Fatalf("valid token must be admitted when the store is down, got %v", err)
	}
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != want {
		t.Errorf("expected status %d, got %d", want, httpErr.Code)
	}
}
