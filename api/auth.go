package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IdentityHeader carries the user's email on data routes. The backend trusts
// it as-is; there is no token or signature in this trust model.
const IdentityHeader = "X-User-Email"

const identityContextKey = "identity"

// requireIdentity resolves the identity header and rejects requests whose
// identity is missing or unknown to the credential store.
func requireIdentity(creds Credentials) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := c.Request().Header.Get(IdentityHeader)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing identity"})
			}
			if !creds.Exists(email) {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unknown identity"})
			}
			c.Set(identityContextKey, email)
			return next(c)
		}
	}
}

func identityFrom(c echo.Context) string {
	email, _ := c.Get(identityContextKey).(string)
	return email
}
