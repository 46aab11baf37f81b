package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// CallerFunc reports the authenticated user id of a request, if any.
type CallerFunc func(c *fiber.Ctx) (int64, bool)

// RequestLogger logs one line per request and records request metrics. It
// wraps the error-mapping middleware so the logged status is the one sent.
func RequestLogger(logger *zap.Logger, metrics *Metrics, caller CallerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		route, method := RouteLabels(c)
		status := c.Response().StatusCode()
		metrics.RecordRequest(route, method, status, duration)

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", duration),
			zap.String("request_id", requestID(c)),
		}
		if caller != nil {
			if id, ok := caller(c); ok {
				fields = append(fields, zap.Int64("user_id", id))
			}
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Info("request", fields...)
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return string(c.Response().Header.Peek(fiber.HeaderXRequestID))
}

// RouteLabels returns the matched route pattern and method as metric labels.
// Both are copied out of the request buffers, which fiber reuses once the
// handler returns. Unmatched paths collapse onto the enclosing middleware route.
func RouteLabels(c *fiber.Ctx) (route, method string) {
	return utils.CopyString(c.Route().Path), utils.CopyString(c.Method())
}
