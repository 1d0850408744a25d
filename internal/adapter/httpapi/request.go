package httpapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userIDHeader identifies the acting user. Authentication is handled
// upstream; absent or malformed values fall back to the default user.
const (
	userIDHeader  = "X-User-ID"
	defaultUserID = int64(1)

	userIDContextKey = "kelimeci/user-id"
)

// UserIDMiddleware resolves the acting user once per request.
func UserIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := defaultUserID
			if raw := c.Request().Header.Get(userIDHeader); raw != "" {
				if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
					id = parsed
				}
			}
			c.Set(userIDContextKey, id)
			return next(c)
		}
	}
}

func userID(c echo.Context) int64 {
	if id, ok := c.Get(userIDContextKey).(int64); ok {
		return id
	}
	return defaultUserID
}

func queryInt32(c echo.Context, name string) int32 {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || value < 0 {
		return 0
	}
	return int32(value)
}
