package relay

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// errorBody is the JSON shape of every non-2xx reply.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody{Error: msg})
}

// errorHandler turns handler errors into errorBody replies. Server errors
// are logged and their detail hidden.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fields *FieldsError
		if errors.As(err, &fields) {
			return c.Status(fiber.StatusBadRequest).JSON(errorBody{
				Error:  "Invalid request body",
				Fields: fields.Fields,
			})
		}

		code := statusOf(err)
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Request failed")
			return sendError(c, code, "Internal Server Error")
		}
		return sendError(c, code, err.Error())
	}
}
