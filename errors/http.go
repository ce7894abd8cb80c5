package errors

import "net/http"

// MapToHTTPStatus converts a service error into the HTTP status served at
// the transport boundary. Delivery failures never reach this point; they
// are absorbed by the broadcaster.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case Is(err, ErrNotFound):
		return http.StatusNotFound
	case Is(err, ErrConflict), Is(err, ErrInvalidState):
		return http.StatusConflict
	case Is(err, ErrValidation), Is(err, ErrInvalidPassword), Is(err, ErrInvalidAvatar),
		Is(err, ErrEmailTaken), Is(err, ErrUsernameTaken), Is(err, ErrLastAdmin):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
