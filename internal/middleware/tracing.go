package middleware

import (
	"foms/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// Tracing wraps every request in an OpenTelemetry span.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		span, ctx := observability.NewSpan(c.UserContext(), c.Method()+" "+c.Path())
		c.SetUserContext(ctx)

		err := c.Next()

		span.AddAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.route", c.Path()),
			attribute.Int("http.status_code", c.Response().StatusCode()),
		)
		span.SetError(err)
		span.End()
		return err
	}
}
