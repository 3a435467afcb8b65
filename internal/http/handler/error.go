package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"rateanalysis/internal/http/header"
	"rateanalysis/internal/http/middleware"
	"rateanalysis/internal/repository"
	"rateanalysis/internal/service"
)

// MIMEProblemJSON is the media type of every error response body.
const MIMEProblemJSON = "application/problem+json"

const (
	problemBase                = "https://www.jhipster.tech/problem/"
	problemWithMessage         = problemBase + "problem-with-message"
	problemConstraintViolation = problemBase + "constraint-violation"
	problemDefault             = "about:blank"
)

// Problem is the error response body.
type Problem struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Status      int          `json:"status"`
	Detail      string       `json:"detail,omitempty"`
	Message     string       `json:"message"`
	Path        string       `json:"path"`
	RequestID   string       `json:"requestId,omitempty"`
	EntityName  string       `json:"entityName,omitempty"`
	ErrorKey    string       `json:"errorKey,omitempty"`
	Params      string       `json:"params,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// FieldError describes one rejected payload field.
type FieldError struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// BadRequestAlertError is a client precondition failure. It renders as 400 with the
// error alert headers.
type BadRequestAlertError struct {
	Message    string
	EntityName string
	ErrorKey   string
}

func (e *BadRequestAlertError) Error() string { return e.Message }

// NewBadRequestAlert builds a BadRequestAlertError.
func NewBadRequestAlert(message, entityName, errorKey string) *BadRequestAlertError {
	return &BadRequestAlertError{Message: message, EntityName: entityName, ErrorKey: errorKey}
}

// PayloadError wraps the validation failures of one request body.
type PayloadError struct {
	ObjectName string
	Errs       validator.ValidationErrors
}

func (e *PayloadError) Error() string { return e.Errs.Error() }

func (e *PayloadError) Unwrap() error { return e.Errs }

// writeProblem fills in the request fields of p and writes it with status p.Status.
func writeProblem(c *fiber.Ctx, p Problem) error {
	p.Path = c.Path()
	p.RequestID = middleware.GetRequestID(c)
	return c.Status(p.Status).JSON(p, MIMEProblemJSON)
}

func httpProblem(status int) Problem {
	return Problem{
		Type:    problemDefault,
		Title:   utils.StatusMessage(status),
		Status:  status,
		Message: "error.http." + strconv.Itoa(status),
	}
}

// ErrorHandler returns a Fiber global error handler that renders every error returned
// by a handler as a problem document. Causes of server errors are logged, never sent.
func ErrorHandler(alerts header.Alerts, logger *slog.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		var (
			alertErr   *BadRequestAlertError
			payloadErr *PayloadError
			validErrs  validator.ValidationErrors
			fiberErr   *fiber.Error
		)

		switch {
		case errors.As(err, &alertErr):
			for k, v := range alerts.Failure(alertErr.EntityName, alertErr.ErrorKey, alertErr.Message) {
				c.Set(k, v)
			}
			return writeProblem(c, Problem{
				Type:       problemWithMessage,
				Title:      alertErr.Message,
				Status:     fiber.StatusBadRequest,
				Message:    "error." + alertErr.ErrorKey,
				EntityName: alertErr.EntityName,
				ErrorKey:   alertErr.ErrorKey,
				Params:     alertErr.EntityName,
			})

		case errors.As(err, &payloadErr):
			return writeProblem(c, validationProblem(payloadErr.ObjectName, payloadErr.Errs))

		case errors.As(err, &validErrs):
			return writeProblem(c, validationProblem("", validErrs))

		case errors.Is(err, repository.ErrInvalidSort):
			p := httpProblem(fiber.StatusBadRequest)
			p.Detail = err.Error()
			return writeProblem(c, p)

		case errors.Is(err, service.ErrNotFound):
			return writeProblem(c, httpProblem(fiber.StatusNotFound))

		case errors.As(err, &fiberErr):
			p := httpProblem(fiberErr.Code)
			if fiberErr.Code < fiber.StatusInternalServerError {
				p.Detail = fiberErr.Message
			}
			return writeProblem(c, p)
		}

		logger.Error("unhandled request error",
			"request_id", middleware.GetRequestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return writeProblem(c, httpProblem(fiber.StatusInternalServerError))
	}
}

func validationProblem(objectName string, errs validator.ValidationErrors) Problem {
	fields := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, FieldError{
			ObjectName: objectName,
			Field:      fe.Field(),
			Message:    fe.Tag(),
		})
	}
	return Problem{
		Type:        problemConstraintViolation,
		Title:       "Method argument not valid",
		Status:      fiber.StatusBadRequest,
		Message:     "error.validation",
		FieldErrors: fields,
	}
}
