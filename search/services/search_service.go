package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"procedures-search-backend/search/models"
	"procedures-search-backend/search/repositories"

	"go.uber.org/zap"
)

type SearchOptions struct {
	Namespace   string
	TopK        int
	RoundScores bool
}

type SearchService struct {
	index  repositories.Index
	opts   SearchOptions
	logger *zap.Logger
}

func NewSearchService(index repositories.Index, opts SearchOptions, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{index: index, opts: opts, logger: logger}
}

// Search runs one query against the index and reshapes the hits, keeping the
// index's order. Zero hits is a valid, empty result.
func (s *SearchService) Search(ctx context.Context, query string) ([]models.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, newError(KindValidation, errors.New("query must not be empty"))
	}

	start := time.Now()
	raw, err := s.index.Query(ctx, repositories.IndexQuery{
		Namespace: s.opts.Namespace,
		TopK:      s.opts.TopK,
		Text:      query,
	})
	if err != nil {
		s.logger.Warn("Index query failed",
			zap.String("namespace", s.opts.Namespace),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, newError(KindOf(err), err)
	}

	hits := make([]models.SearchHit, 0, len(raw))
	for _, h := range raw {
		hit, err := s.shape(h)
		if err != nil {
			return nil, newError(KindMalformedResponse, err)
		}
		hits = append(hits, hit)
	}

	s.logger.Debug("Index query completed",
		zap.String("namespace", s.opts.Namespace),
		zap.Int("hits", len(hits)),
		zap.Duration("duration", time.Since(start)),
	)
	return hits, nil
}

func (s *SearchService) shape(h repositories.Hit) (models.SearchHit, error) {
	v, ok := h.Fields[repositories.TextField]
	if !ok || v == nil {
		return models.SearchHit{}, fmt.Errorf("hit %q: metadata field %q is missing", h.ID, repositories.TextField)
	}
	text, ok := v.(string)
	if !ok {
		return models.SearchHit{}, fmt.Errorf("hit %q: metadata field %q is %T, not a string", h.ID, repositories.TextField, v)
	}
	if math.IsNaN(h.Score) || math.IsInf(h.Score, 0) {
		return models.SearchHit{}, fmt.Errorf("hit %q: score %v is not a finite number", h.ID, h.Score)
	}

	score := h.Score
	if s.opts.RoundScores {
		score = RoundScore(score)
	}
	return models.SearchHit{ID: h.ID, Score: score, Text: text}, nil
}
