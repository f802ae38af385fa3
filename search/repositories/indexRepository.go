package repositories

import (
	"context"
)

// IndexQuery is one semantic search against the external index.
type IndexQuery struct {
	Namespace string
	TopK      int
	Text      string
}

// Hit is a raw record as returned by the index, in ranking order.
type Hit struct {
	ID     string
	Score  float64
	Fields map[string]interface{}
}

// Index is the only surface the search service needs from the vector store.
type Index interface {
	Query(ctx context.Context, q IndexQuery) ([]Hit, error)
}

// UnavailableError marks a failure to reach the index at all (network, timeout).
// Its message is the cause's message unchanged.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string { return e.Err.Error() }

func (e *UnavailableError) Unwrap() error { return e.Err }
