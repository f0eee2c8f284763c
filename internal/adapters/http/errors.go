package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
	"github.com/samirrijal/crestfield/internal/mapview"
	"github.com/samirrijal/crestfield/internal/pkg/telemetry"
)

// APIError is a structured error response.
type APIError struct {
	Status    int               `json:"status"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func requestID(c *fiber.Ctx) string {
	reqID, _ := c.Locals("requestid").(string)
	return reqID
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: requestID(c),
	})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

func errConflict(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusConflict, "conflict", msg)
}

// errValidation returns a 422 carrying per-field messages.
func errValidation(c *fiber.Ctx, v *domain.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(APIError{
		Status:    fiber.StatusUnprocessableEntity,
		Code:      "validation_failed",
		Message:   "please correct the highlighted fields",
		RequestID: requestID(c),
		Fields:    v.Fields,
	})
}

// errInternal logs and reports err, then returns a 500 without leaking details.
func errInternal(c *fiber.Ctx, err error) error {
	LoggerFromCtx(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
	telemetry.CaptureError(err, map[string]string{
		"path":       c.Route().Path,
		"request_id": requestID(c),
	})
	return newError(c, fiber.StatusInternalServerError, "internal_error", "internal server error")
}

// errFromDomain maps domain and adapter errors onto HTTP statuses.
func errFromDomain(c *fiber.Ctx, err error) error {
	if v, ok := usecases.IsValidation(err); ok {
		return errValidation(c, v)
	}
	switch {
	case errors.Is(err, domain.ErrStationNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrInquiryNotFound):
		return errNotFound(c, err.Error())
	case errors.Is(err, errBadStationID),
		errors.Is(err, domain.ErrQueryTooLong),
		errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrUnknownProvider),
		errors.Is(err, domain.ErrInvalidMessage):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrMapNotReady),
		errors.Is(err, mapview.ErrNotRetryable),
		errors.Is(err, mapview.ErrSuperseded):
		return errConflict(c, err.Error())
	case errors.Is(err, mapview.ErrClosed):
		return newError(c, fiber.StatusGone, "gone", err.Error())
	case errors.Is(err, domain.ErrRouteUnavailable):
		return newError(c, fiber.StatusBadGateway, "route_unavailable", err.Error())
	case errors.Is(err, domain.ErrMissingAPIKey),
		errors.Is(err, domain.ErrSDKUnavailable):
		return newError(c, fiber.StatusServiceUnavailable, "map_unavailable", err.Error())
	}
	return errInternal(c, err)
}
