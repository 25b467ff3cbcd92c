package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
)

// actorContextKey is where the auth middleware stores the resolved actor.
const actorContextKey = "auth.actor"

// Claims is the token payload issued by the identity provider: the subject
// carries the user id, role carries the wire form of the role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthMiddleware validates the bearer token and resolves it to an Actor.
// Requests without a valid token never reach a handler.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, prefix),
				&Claims{},
				func(t *jwt.Token) (any, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
					}
					return secret, nil
				},
			)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			act, err := actorFromClaims(token.Claims.(*Claims))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			c.Set(actorContextKey, act)
			return next(c)
		}
	}
}

func actorFromClaims(claims *Claims) (actor.Actor, error) {
	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, err
	}
	role, err := actor.ParseRole(claims.Role)
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.NewActor(id, role)
}

// requestActor returns the actor resolved by the auth middleware.
func requestActor(c echo.Context) (actor.Actor, error) {
	act, ok := c.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "no authenticated actor")
	}
	return act, nil
}
