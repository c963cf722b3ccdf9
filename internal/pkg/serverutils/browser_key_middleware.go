package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	BrowserKeyLocal = "browser_key"
	BrowserKeyClaim = "browser_key"
)

// ParseBrowserKey validates a signed browser key token and returns the key.
func ParseBrowserKey(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	key, ok := claims[BrowserKeyClaim].(string)
	if !ok || key == "" {
		return "", fmt.Errorf("missing browser key")
	}
	return key, nil
}

// BrowserKeyMiddleware scopes a request to the browser named in its bearer
// token.
func BrowserKeyMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing browser key"))
		}

		key, err := ParseBrowserKey(authHeader[7:], secret)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid browser key"))
		}

		ctx.Locals(BrowserKeyLocal, key)
		return ctx.Next()
	}
}
