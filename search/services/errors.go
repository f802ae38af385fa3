package services

import (
	"errors"

	"procedures-search-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind int

const (
	// KindUnclassified is anything nobody recognised. It maps to 500.
	KindUnclassified ErrorKind = iota
	KindValidation
	KindUpstreamUnavailable
	KindMalformedResponse
	KindCompletionFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindMalformedResponse:
		return "upstream_malformed_response"
	case KindCompletionFailed:
		return "completion_failed"
	default:
		return "unclassified"
	}
}

func (k ErrorKind) StatusCode() int {
	switch k {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindUpstreamUnavailable:
		return fiber.StatusServiceUnavailable
	case KindMalformedResponse, KindCompletionFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// SearchError attaches a kind to an error without changing its message.
type SearchError struct {
	Kind ErrorKind
	Err  error
}

func (e *SearchError) Error() string { return e.Err.Error() }

func (e *SearchError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, err error) error {
	return &SearchError{Kind: kind, Err: err}
}

// KindOf reports the kind of err. Index unavailability is recognised even when
// the service did not wrap it.
func KindOf(err error) ErrorKind {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Kind
	}
	var ue *repositories.UnavailableError
	if errors.As(err, &ue) {
		return KindUpstreamUnavailable
	}
	return KindUnclassified
}
