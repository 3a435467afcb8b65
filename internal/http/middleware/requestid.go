package middleware

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID on requests and responses. Problem
	// documents echo the same value in their requestId field.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the Fiber locals key holding the request ID.
	RequestIDLocalKey = "request_id"
)

// RequestID takes the caller's X-Request-ID, or a fresh UUID when absent, stores it
// under RequestIDLocalKey and echoes it on the response.
//
// The lookup ignores header name case so it keeps working when the app runs with
// DisableHeaderNormalizing.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := incomingRequestID(c)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

// GetRequestID returns the request ID stored by RequestID, or "" outside of it.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocalKey).(string)
	return id
}

func incomingRequestID(c *fiber.Ctx) string {
	if id := c.Get(RequestIDHeader); id != "" {
		return id
	}
	name := []byte(RequestIDHeader)
	var id string
	c.Request().Header.VisitAll(func(key, value []byte) {
		if id == "" && bytes.EqualFold(key, name) {
			id = string(value)
		}
	})
	return id
}
