package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// EmailFromContext pulls the token subject out of the claims echo-jwt parked
// in the request context.
func EmailFromContext(c echo.Context) (string, error) {
	claims, ok := c.Get("user").(jwt.MapClaims)
	if !ok {
		if tok, ok2 := c.Get("user").(*jwt.Token); ok2 && tok != nil {
			claims, ok = tok.Claims.(jwt.MapClaims)
		}
		if !ok {
			return "", errors.New("no jwt claims in context")
		}
	}
	if s, ok := claims["sub"].(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("sub missing in claims")
}
