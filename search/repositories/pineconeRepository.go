package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"syscall"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// TextField is the metadata field holding the snippet text of a record.
	TextField = "chunk_text"
	// maxTopK is the most results Pinecone returns for one query.
	maxTopK = 10000
)

type PineconeRepository struct {
	indexName string
	conns     map[string]*pinecone.IndexConnection
	logger    *zap.Logger
}

// NewPineconeRepository resolves the index host and opens one connection per
// namespace. Connections are never added after construction, so Query only reads.
func NewPineconeRepository(ctx context.Context, client *pinecone.Client, indexName string, namespaces []string, logger *zap.Logger) (*PineconeRepository, error) {
	idx, err := client.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("describing index %s: %w", indexName, err)
	}

	repo := &PineconeRepository{
		indexName: indexName,
		conns:     make(map[string]*pinecone.IndexConnection, len(namespaces)),
		logger:    logger,
	}
	for _, ns := range namespaces {
		if _, ok := repo.conns[ns]; ok {
			continue
		}
		conn, err := client.Index(pinecone.NewIndexConnParams{Host: idx.Host, Namespace: ns})
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("connecting to index %s namespace %s: %w", indexName, ns, err)
		}
		repo.conns[ns] = conn
	}

	logger.Info("Pinecone index connected",
		zap.String("index", indexName),
		zap.String("host", idx.Host),
		zap.Strings("namespaces", namespaces),
	)
	return repo, nil
}

func (r *PineconeRepository) Query(ctx context.Context, q IndexQuery) ([]Hit, error) {
	if q.TopK <= 0 || q.TopK > maxTopK {
		return nil, fmt.Errorf("top_k must be between 1 and %d, got %d", maxTopK, q.TopK)
	}
	conn, ok := r.conns[q.Namespace]
	if !ok {
		return nil, fmt.Errorf("namespace %q is not configured for index %s", q.Namespace, r.indexName)
	}

	inputs := map[string]interface{}{"text": q.Text}
	fields := []string{TextField}
	res, err := conn.SearchRecords(ctx, &pinecone.SearchRecordsRequest{
		Query: pinecone.SearchRecordsQuery{
			TopK:   int32(q.TopK),
			Inputs: &inputs,
		},
		Fields: &fields,
	})
	if err != nil {
		return nil, classifyError(err)
	}
	if res == nil {
		return nil, errors.New("pinecone returned an empty search response")
	}

	hits := make([]Hit, 0, len(res.Result.Hits))
	for _, h := range res.Result.Hits {
		hits = append(hits, Hit{
			ID:     h.Id,
			Score:  widenScore(h.Score),
			Fields: h.Fields,
		})
	}
	return hits, nil
}

func (r *PineconeRepository) Close() error {
	var errs []error
	for ns, conn := range r.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing namespace %s: %w", ns, err))
		}
	}
	return errors.Join(errs...)
}

// widenScore converts a float32 score without the binary noise plain widening
// adds (0.87 stays 0.87 rather than 0.8700000047683716).
func widenScore(s float32) float64 {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return decimal.NewFromFloat32(s).InexactFloat64()
}

func classifyError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.As(err, &netErr):
		return &UnavailableError{Err: err}
	}
	return err
}
