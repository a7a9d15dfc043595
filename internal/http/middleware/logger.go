package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger is a middleware that logs each HTTP request as one JSON line.
// Fields: request_id (set by RequestID), method, path (no query string), status,
// latency (milliseconds, float), plus trace_id when the request is traced.
// 5xx responses are logged at error level.
func Logger(log zerolog.Logger) fiber.Handler {
	log = log.With().Str("component", "http").Logger()

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := statusOf(c, err)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().AnErr("error", err)
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			ev = ev.Str("trace_id", sc.TraceID().String())
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("")

		return err
	}
}
