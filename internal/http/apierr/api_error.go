package apierr

import (
	"errors"
	"net/http"

	"github.com/tuanvumaihuynh/storefront/pkg/validator"
	"github.com/tuanvumaihuynh/storefront/pkg/zerror"
)

// ErrorResponse is the error response for the API.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`

	// Code is the application error code. It is logged, not rendered.
	Code string `json:"-"`

	// Details lists failing fields of a validation error. It is logged, not
	// rendered.
	Details []validator.FieldError `json:"-"`
}

func New(err error) ErrorResponse {
	return errorToErrorResponse(err)
}

var InternalServerErr = ErrorResponse{
	Error:      true,
	Message:    "internal server error",
	StatusCode: http.StatusInternalServerError,
	Code:       "INTERNAL_SERVER_ERROR",
}

func errorToErrorResponse(err error) ErrorResponse {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Error:      true,
			Message:    zErr.Msg(),
			StatusCode: ZErrorStatusToHTTPStatus(zErr.Status()),
			Code:       zErr.Code(),
			Details:    validator.FieldErrors(err),
		}
	}

	return InternalServerErr
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusUnauthorized:
		return http.StatusUnauthorized
	case zerror.StatusForbidden:
		return http.StatusForbidden
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case zerror.StatusBadRequest:
		return http.StatusBadRequest
	case zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	case zerror.StatusTimeout:
		return http.StatusGatewayTimeout
	case zerror.StatusNotImplemented:
		return http.StatusNotImplemented
	case zerror.StatusBadGateway:
		return http.StatusBadGateway
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
