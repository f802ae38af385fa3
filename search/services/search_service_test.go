package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"procedures-search-backend/search/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIndex struct {
	hits    []repositories.Hit
	err     error
	queries []repositories.IndexQuery
}

func (s *stubIndex) Query(_ context.Context, q repositories.IndexQuery) ([]repositories.Hit, error) {
	s.queries = append(s.queries, q)
	return s.hits, s.err
}

func textHit(id string, score float64, text string) repositories.Hit {
	return repositories.Hit{ID: id, Score: score, Fields: map[string]interface{}{repositories.TextField: text}}
}

func TestSearch_PreservesOrderAndCount(t *testing.T) {
	idx := &stubIndex{hits: []repositories.Hit{
		textHit("c", 0.91, "MRI knee"),
		textHit("a", 0.95, "MRI brain"),
		textHit("b", 0.40, "X-ray"),
	}}
	svc := NewSearchService(idx, SearchOptions{Namespace: "ns", TopK: 10}, nil)

	hits, err := svc.Search(context.Background(), "mri")
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{hits[0].ID, hits[1].ID, hits[2].ID})
	assert.Equal(t, "MRI knee", hits[0].Text)
}

func TestSearch_PassesQueryParameters(t *testing.T) {
	idx := &stubIndex{}
	svc := NewSearchService(idx, SearchOptions{Namespace: "unique_descriptions", TopK: 10}, nil)

	_, err := svc.Search(context.Background(), "colonoscopy")
	require.NoError(t, err)
	require.Len(t, idx.queries, 1)
	assert.Equal(t, repositories.IndexQuery{Namespace: "unique_descriptions", TopK: 10, Text: "colonoscopy"}, idx.queries[0])
}

func TestSearch_RoundsOnlyWhenEnabled(t *testing.T) {
	idx := &stubIndex{hits: []repositories.Hit{textHit("a", 0.8765, "x"), textHit("b", 0.125, "y")}}

	rounded, err := NewSearchService(idx, SearchOptions{RoundScores: true}, nil).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 0.88, rounded[0].Score)
	assert.Equal(t, 0.12, rounded[1].Score)

	raw, err := NewSearchService(idx, SearchOptions{}, nil).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 0.8765, raw[0].Score)
	assert.Equal(t, 0.125, raw[1].Score)
}

func TestSearch_ZeroHitsIsEmptyNotNil(t *testing.T) {
	svc := NewSearchService(&stubIndex{}, SearchOptions{}, nil)

	hits, err := svc.Search(context.Background(), "nothing matches")
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestSearch_MissingTextField(t *testing.T) {
	idx := &stubIndex{hits: []repositories.Hit{
		textHit("a", 0.9, "ok"),
		{ID: "b", Score: 0.8, Fields: map[string]interface{}{"category": "imaging"}},
	}}
	svc := NewSearchService(idx, SearchOptions{}, nil)

	hits, err := svc.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Nil(t, hits)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
	assert.Equal(t, `hit "b": metadata field "chunk_text" is missing`, err.Error())
}

func TestSearch_NonStringTextField(t *testing.T) {
	idx := &stubIndex{hits: []repositories.Hit{
		{ID: "a", Score: 0.9, Fields: map[string]interface{}{repositories.TextField: 42.0}},
	}}

	_, err := NewSearchService(idx, SearchOptions{}, nil).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
	assert.Contains(t, err.Error(), "float64, not a string")
}

func TestSearch_NonFiniteScore(t *testing.T) {
	idx := &stubIndex{hits: []repositories.Hit{textHit("a", math.NaN(), "x")}}

	_, err := NewSearchService(idx, SearchOptions{RoundScores: true}, nil).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestSearch_IndexErrorKeepsMessage(t *testing.T) {
	idx := &stubIndex{err: errors.New("pinecone: 401 Unauthorized: invalid api key")}

	_, err := NewSearchService(idx, SearchOptions{}, nil).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, KindUnclassified, KindOf(err))
	assert.Equal(t, "pinecone: 401 Unauthorized: invalid api key", err.Error())
}

func TestSearch_IndexUnavailable(t *testing.T) {
	idx := &stubIndex{err: &repositories.UnavailableError{Err: errors.New("dial tcp 10.0.0.1:443: connect: connection refused")}}

	_, err := NewSearchService(idx, SearchOptions{}, nil).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, KindUpstreamUnavailable, KindOf(err))
	assert.Equal(t, "dial tcp 10.0.0.1:443: connect: connection refused", err.Error())
}

func TestSearch_BlankQueryNeverReachesIndex(t *testing.T) {
	idx := &stubIndex{}

	_, err := NewSearchService(idx, SearchOptions{}, nil).Search(context.Background(), "  \t")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, idx.queries)
}
