package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call. A non-empty role proves the middleware
// ran; a token without a subject is structurally valid but operationally
// unusable, so it is rejected with 401.
func ctxPrincipal(c echo.Context) (accountID, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	accountID, _ = c.Get("account_id").(string)
	if accountID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing account identity")
	}

	return accountID, role, nil
}
