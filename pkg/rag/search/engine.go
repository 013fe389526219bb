package search

import (
	"context"
	"log"
	"math"
	"sort"

	"fundsight-be/pkg/embedding"

	"github.com/google/uuid"
)

// DefaultThreshold is the relevance floor below which a candidate is
// dropped. Tuned against the e5/nomic embedding families.
const DefaultThreshold = 0.3

// Filter narrows the candidate set before scoring.
type Filter struct {
	DocumentID *uuid.UUID
	FundID     *uuid.UUID
}

// Candidate is a stored chunk as the engine sees it. Embedding is nil
// for chunks that were never vectorized; those are skipped, not errors.
type Candidate struct {
	ChunkID    uuid.UUID
	DocumentID uuid.UUID
	Page       int
	Content    string
	Embedding  []float32
}

// CandidateSource hands the engine its chunks. The underlying storage
// technology is opaque here.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, filter Filter) ([]Candidate, error)
}

// Result is a candidate with its cosine similarity in [-1, 1].
type Result struct {
	Candidate
	Score float64
}

// Engine ranks stored chunks against a query by cosine similarity.
type Engine struct {
	provider  embedding.EmbeddingProvider
	source    CandidateSource
	threshold float64
	logger    *log.Logger
}

// NewEngine builds the similarity engine. A negative threshold selects
// DefaultThreshold; zero is honored and admits every scored candidate.
func NewEngine(provider embedding.EmbeddingProvider, source CandidateSource, threshold float64, logger *log.Logger) *Engine {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Engine{
		provider:  provider,
		source:    source,
		threshold: threshold,
		logger:    logger,
	}
}

// Search embeds the query, scores every vectorized candidate under the
// filter, drops scores below the threshold, and returns the top k in
// non-increasing score order (stable on ties by fetch order).
//
// Malformed stored vectors are skipped individually; an empty query
// embedding short-circuits to an empty result list.
func (e *Engine) Search(ctx context.Context, query string, k int, filter Filter) ([]Result, error) {
	if k <= 0 {
		k = 5
	}

	queryVec, err := e.provider.Generate(ctx, query, embedding.TaskQuery)
	if err != nil {
		return nil, err
	}
	if len(queryVec) == 0 {
		e.logger.Printf("[WARN] query produced no embedding, returning no results")
		return nil, nil
	}

	candidates, err := e.source.FetchCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, cand := range candidates {
		score, ok := cosineSimilarity(queryVec, cand.Embedding)
		if !ok {
			// unembedded or malformed vector: skip this candidate only
			continue
		}
		if score < e.threshold {
			continue
		}
		results = append(results, Result{Candidate: cand, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// cosineSimilarity computes dot(q,d)/(|q|*|d|) in float64. Returns
// ok=false for missing, mismatched or zero-norm vectors.
func cosineSimilarity(q, d []float32) (float64, bool) {
	if len(d) == 0 || len(d) != len(q) {
		return 0, false
	}

	var dot, normQ, normD float64
	for i := range q {
		qi := float64(q[i])
		di := float64(d[i])
		dot += qi * di
		normQ += qi * qi
		normD += di * di
	}
	if normQ == 0 || normD == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normQ) * math.Sqrt(normD)), true
}
