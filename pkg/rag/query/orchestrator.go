package query

import (
	"context"
	"log"
	"time"

	"fundsight-be/pkg/llm"
	"fundsight-be/pkg/metrics"
	"fundsight-be/pkg/rag/intent"
	"fundsight-be/pkg/rag/prompt"
	"fundsight-be/pkg/rag/response"
	"fundsight-be/pkg/rag/search"

	"github.com/google/uuid"
)

// Request is one natural-language question, optionally scoped to a fund
// and carrying the prior turns of the conversation.
type Request struct {
	Query   string
	FundID  *uuid.UUID
	History []llm.Message
	TopK    int
}

// SourceRef points an answer back at the chunk it came from.
type SourceRef struct {
	Content    string
	Page       int
	Score      float64
	DocumentID uuid.UUID
}

// Response is always produced, even when every collaborator failed;
// degradation shows up in the answer text, not as an error.
type Response struct {
	Answer         string
	Intent         intent.Intent
	Sources        []SourceRef
	Metrics        map[string]float64
	ProcessingTime float64 // seconds
}

// Orchestrator runs one query through the full pipeline:
// intent -> retrieval -> (metrics)? -> prompt -> generation.
type Orchestrator struct {
	searchEngine   *search.Engine
	metricsService metrics.Service
	generator      *response.Generator
	defaultTopK    int
	logger         *log.Logger
}

func NewOrchestrator(
	searchEngine *search.Engine,
	metricsService metrics.Service,
	generator *response.Generator,
	defaultTopK int,
	logger *log.Logger,
) *Orchestrator {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &Orchestrator{
		searchEngine:   searchEngine,
		metricsService: metricsService,
		generator:      generator,
		defaultTopK:    defaultTopK,
		logger:         logger,
	}
}

// Answer processes a query end to end. The only error it returns is the
// caller's own cancellation; everything else degrades the response.
func (o *Orchestrator) Answer(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	queryIntent := intent.Classify(req.Query)

	topK := req.TopK
	if topK <= 0 {
		topK = o.defaultTopK
	}
	filter := search.Filter{FundID: req.FundID}
	results, err := o.searchEngine.Search(ctx, req.Query, topK, filter)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Retrieval is degraded, not fatal: answer from whatever we have.
		o.logger.Printf("[ERROR] similarity search failed: %v", err)
		results = nil
	}

	var fundMetrics map[string]float64
	if queryIntent == intent.IntentCalculation && req.FundID != nil && o.metricsService != nil {
		fundMetrics, err = o.metricsService.CalculateAllMetrics(ctx, *req.FundID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			o.logger.Printf("[WARN] metrics unavailable for fund %s: %v", req.FundID, err)
			fundMetrics = nil
		}
	}

	promptText := prompt.NewBuilder(req.Query, results, fundMetrics, req.History).Build()
	answer := o.generator.Generate(ctx, promptText)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	sources := make([]SourceRef, len(results))
	for i, r := range results {
		sources[i] = SourceRef{
			Content:    r.Content,
			Page:       r.Page,
			Score:      r.Score,
			DocumentID: r.DocumentID,
		}
	}

	return &Response{
		Answer:         answer,
		Intent:         queryIntent,
		Sources:        sources,
		Metrics:        fundMetrics,
		ProcessingTime: time.Since(start).Seconds(),
	}, nil
}
