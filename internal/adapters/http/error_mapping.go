package httpadapter

import (
	"net/http"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrValidation):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrRemoteService):
		// An unreachable or failing collaborator (mail, AI, storage) is a
		// plain 500: the request was valid, the service could not act on it.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
