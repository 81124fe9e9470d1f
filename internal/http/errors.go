package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/jobradar/jobradar-api/internal/errors"
)

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeForeignKey:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeCanceled:
		return statusClientClosedRequest
	case apperrors.ErrCodeExternal:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// statusClientClosedRequest is nginx's non-standard code for a canceled request.
const statusClientClosedRequest = 499

// errCodeLabel returns the wire label for an application error code.
func errCodeLabel(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.ErrCodeUnauthorized:
		return "authentication_required"
	case apperrors.ErrCodeExternal:
		return "external_service_error"
	case apperrors.ErrCodeValidation:
		return "validation_error"
	case apperrors.ErrCodeNotFound:
		return "not_found"
	case apperrors.ErrCodeConflict:
		return "conflict"
	case apperrors.ErrCodeForeignKey:
		return "invalid_reference"
	case apperrors.ErrCodeTimeout:
		return "timeout"
	case apperrors.ErrCodeCanceled:
		return "canceled"
	default:
		return "internal_error"
	}
}

// WriteServiceError renders a service-layer error as a JSON response. AppError
// codes map onto HTTP statuses; anything else is a 500 with a generic message
// so internals never leak to clients.
func WriteServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteError(w, ErrorParams{
			Code:    statusForCode(appErr.Code),
			ErrCode: errCodeLabel(appErr.Code),
			Err:     errors.New(appErr.Message),
		})
		return
	}

	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("an unexpected error occurred"),
	})
}
