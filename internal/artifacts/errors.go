package artifacts

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates no artifact has been generated for the request.
	// Generation is asynchronous relative to retrieval, so callers should
	// treat this as "not generated yet" rather than a fault.
	ErrNotFound = errors.New("artifact not found")
	// ErrEmptyResponseID indicates an empty response id was provided.
	ErrEmptyResponseID = errors.New("response id must not be empty")
)

// MapHTTPStatus maps artifact errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyResponseID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
