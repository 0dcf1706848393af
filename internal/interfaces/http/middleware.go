package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/bodega-core/pkg/logger"
)

// RequestLogger middleware de acceso: asigna un request id, cuenta la
// petición en las métricas y deja una línea estructurada por respuesta.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		httpRequests.WithLabelValues(c.Method(), strconv.Itoa(status)).Inc()
		log.Info().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("petición atendida")
		return err
	}
}
