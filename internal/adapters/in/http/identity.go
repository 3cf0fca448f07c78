package http

import (
	"net/http"
	"slices"
	"strings"

	"agrilogistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers are set by the upstream identity proxy after login.
const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-Role"
)

const (
	RoleTrader = "trader"
	RoleAdmin  = "admin"
)

const identityKey = "identity"

// Identity is the authenticated caller.
type Identity struct {
	UserID kernel.UUID
	Role   string
}

// RequireRole rejects requests without a valid user id (401) or whose role
// is not one of roles (403). The identity is stored on the echo context.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := kernel.UUIDFromString(strings.TrimSpace(c.Request().Header.Get(HeaderUserID)))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing or invalid " + HeaderUserID + " header",
				})
			}

			role := strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderRole)))
			if !slices.Contains(roles, role) {
				return c.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: "Role " + role + " may not access this resource",
				})
			}

			c.Set(identityKey, Identity{UserID: userID, Role: role})
			return next(c)
		}
	}
}

func identityFrom(c echo.Context) Identity {
	id, _ := c.Get(identityKey).(Identity)
	return id
}
