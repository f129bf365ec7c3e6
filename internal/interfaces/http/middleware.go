package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// HeaderRequestID cabecera con el identificador de la solicitud.
const HeaderRequestID = "X-Request-ID"

// RequestObserver recibe cada solicitud atendida (metrics.Registry).
type RequestObserver interface {
	ObserveRequest(method, route, status string, seconds float64)
}

// RequestLogger asigna un request id (uuid si el cliente no envía uno), registra la solicitud
// con zerolog y la reporta al observer. observer puede ser nil.
func RequestLogger(log *logger.Logger, observer RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		err := c.Next()
		if err != nil {
			// Que el ErrorHandler fije el estado antes de registrar.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("operator", GetOperator(c)).
			Msg("http")

		if observer != nil {
			observer.ObserveRequest(c.Method(), route, strconv.Itoa(status), elapsed.Seconds())
		}
		return nil
	}
}
