package middleware

import (
	"context"
	"strings"

	"foms/internal/config"
	"foms/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired enforces a valid bearer token issued by the identity
// provider. The subject claim becomes the caller identity, stored in
// c.Locals("identity") and the request context.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		return validateToken(c, cfg, tokenString)
	}
}

// WebSocketAuthRequired validates tokens from the "token" query parameter,
// falling back to the Authorization header. Browsers cannot set headers on
// websocket upgrades, hence the query fallback.
func WebSocketAuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Query("token")
		if tokenString == "" {
			var err error
			if tokenString, err = bearerToken(c); err != nil {
				return models.RespondWithError(c, fiber.StatusUnauthorized, err)
			}
		}
		return validateToken(c, cfg, tokenString)
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", models.NewUnauthorizedError("Authorization header required")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", models.NewUnauthorizedError("Invalid authorization header format")
	}
	return parts[1], nil
}

func validateToken(c *fiber.Ctx, cfg *config.Config, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewUnauthorizedError("Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid token claims"))
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid token structure - missing subject"))
	}

	c.Locals("identity", sub)
	c.SetUserContext(context.WithValue(c.UserContext(), IdentityKey, sub))
	return c.Next()
}
