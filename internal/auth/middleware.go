package auth

import (
	"errors"
	"net/http"
	"strings"

	"audio-tour-service/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// LegacyTokenHeader is still sent by the mobile clients.
const LegacyTokenHeader = "jwt"

type TokenParser interface {
	Parse(raw string) (string, error)
}

type ErrorResponse struct {
	Error   string `json:"error" example:"forbidden"`
	Message string `json:"message" example:"No access rights"`
}

// RequireRole authenticates the request and lets it through when the user is
// active and holds role. Admins pass every gate.
func RequireRole(tokens TokenParser, users UserFinder, role Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return unauthorized(c)
		}

		email, err := tokens.Parse(raw)
		if err != nil {
			return unauthorized(c)
		}

		ctx := c.UserContext()
		u, err := users.FindUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return unauthorized(c)
			}
			logging.Ctx(ctx).Error().Err(err).Msg("user lookup failed")
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}

		if !u.IsActive {
			return c.Status(http.StatusForbidden).JSON(ErrorResponse{
				Error:   "forbidden",
				Message: "No access rights, please confirm registration.",
			})
		}
		if u.Role != RoleAdmin && u.Role != role {
			return c.Status(http.StatusForbidden).JSON(ErrorResponse{
				Error:   "forbidden",
				Message: "No access rights",
			})
		}

		c.SetUserContext(ContextWithPrincipal(ctx, u))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(c.Get(LegacyTokenHeader))
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "Could not validate credentials",
	})
}
