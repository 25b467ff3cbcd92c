package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/application/usecases/queries"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
)

// ErrorBody is the uniform error payload. Reason is a machine-readable
// code; clients branch on it for the 400 conflict family.
type ErrorBody struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// respondError maps application and domain errors onto HTTP statuses.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorBody{
			Code:    http.StatusNotFound,
			Message: "not found",
		})

	case errors.Is(err, errs.ErrTransientStore):
		return c.JSON(http.StatusServiceUnavailable, ErrorBody{
			Code:    http.StatusServiceUnavailable,
			Reason:  "contended",
			Message: "the order is being claimed right now, retry shortly",
		})

	case errors.Is(err, order.ErrAlreadyTaken):
		return conflict(c, "already_taken", "another driver already took this order")
	case errors.Is(err, order.ErrNotCancellable):
		return conflict(c, "not_cancellable", "the order can no longer be cancelled")
	case errors.Is(err, order.ErrIllegalTransition):
		return conflict(c, "illegal_transition", "the order is not in a state that allows this")

	case isForbidden(err):
		return c.JSON(http.StatusForbidden, ErrorBody{
			Code:    http.StatusForbidden,
			Message: "forbidden",
		})

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrServiceIsNotActive),
		errors.Is(err, commands.ErrAssigneeIsNotDriver):
		return c.JSON(http.StatusBadRequest, ErrorBody{
			Code:    http.StatusBadRequest,
			Reason:  "validation",
			Message: err.Error(),
		})

	default:
		return c.JSON(http.StatusInternalServerError, ErrorBody{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func isForbidden(err error) bool {
	return errors.Is(err, commands.ErrPermissionDenied) ||
		errors.Is(err, commands.ErrActorIsNotDriver) ||
		errors.Is(err, commands.ErrActorIsNotAdmin) ||
		errors.Is(err, queries.ErrNotAllowedToView) ||
		errors.Is(err, queries.ErrActorIsNotDriver) ||
		errors.Is(err, queries.ErrActorIsNotAdmin) ||
		errors.Is(err, order.ErrNotAssignedDriver)
}

func conflict(c echo.Context, reason, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Code:    http.StatusBadRequest,
		Reason:  reason,
		Message: message,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Code:    http.StatusBadRequest,
		Reason:  "validation",
		Message: message,
	})
}
