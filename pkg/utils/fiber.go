package utils

import (
	"fmt"

	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("fiber")

// ErrorHandler turns handler errors into plain text responses. Anything that
// is not a *fiber.Error becomes a generic 500 that only carries the request
// ID, the cause goes to the log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var code = fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	rid := c.Locals(requestid.ConfigDefault.ContextKey)

	if code >= fiber.StatusInternalServerError {
		log.Error("unexpected error", zap.Any("request-id", rid), zap.String("path", c.Path()), zap.Error(err))
		return c.Status(code).SendString(fmt.Sprintf("Sorry, something went wrong. request-id: %v", rid))
	}

	if e != nil {
		return c.Status(code).SendString(e.Message)
	}
	return c.Status(code).SendString(err.Error())
}
