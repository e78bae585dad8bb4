package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// Middleware tags every request with an id (reusing an incoming X-Request-ID),
// stores it in the user context and logs one line when the handler returns.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()

		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.SetUserContext(ContextWithRequestID(c.UserContext(), id))

		err := c.Next()
		if err != nil {
			// let the app's error handler pick the status before logging it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := Ctx(c.UserContext()).Info()
		if status >= fiber.StatusInternalServerError {
			ev = Ctx(c.UserContext()).Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(started)).
			Msg("request")

		return nil
	}
}
