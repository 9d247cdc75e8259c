package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Arriendos-api/pkg/logger"
)

// requestObserver lo implementa *metrics.Metrics.
type requestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra cada petición con método, ruta, estado, latencia y request id.
// Los 5xx van a nivel error con la causa que dejó writeError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// El ErrorHandler de fiber escribe la respuesta; aquí solo se registra.
			_ = c.App().ErrorHandler(c, err)
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if cause, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(cause)
			}
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("user", GetUsername(c)).
			Msg("http")
		return nil
	}
}

// Metrics alimenta los colectores HTTP usando el patrón de la ruta para no multiplicar series.
func Metrics(obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = statusOf(err)
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		obs.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
