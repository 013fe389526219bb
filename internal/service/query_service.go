package service

import (
	"context"

	"fundsight-be/internal/dto"
	"fundsight-be/internal/repository/specification"
	"fundsight-be/internal/repository/unitofwork"
	"fundsight-be/pkg/llm"
	"fundsight-be/pkg/rag/query"
	"fundsight-be/pkg/rag/search"
)

type IQueryService interface {
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	orchestrator *query.Orchestrator
}

func NewQueryService(orchestrator *query.Orchestrator) IQueryService {
	return &queryService{
		orchestrator: orchestrator,
	}
}

func (s *queryService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	history := make([]llm.Message, len(req.History))
	for i, m := range req.History {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	res, err := s.orchestrator.Answer(ctx, query.Request{
		Query:   req.Query,
		FundID:  req.FundId,
		History: history,
		TopK:    req.TopK,
	})
	if err != nil {
		return nil, err
	}

	sources := make([]dto.QuerySourceResponse, len(res.Sources))
	for i, src := range res.Sources {
		sources[i] = dto.QuerySourceResponse{
			Content:    src.Content,
			Page:       src.Page,
			Score:      src.Score,
			DocumentId: src.DocumentID,
		}
	}

	return &dto.QueryResponse{
		Answer:         res.Answer,
		Intent:         string(res.Intent),
		Sources:        sources,
		Metrics:        res.Metrics,
		ProcessingTime: res.ProcessingTime,
	}, nil
}

// ChunkCandidateSource feeds stored chunks to the similarity engine.
// Only vectorized chunks are fetched; fund scoping joins through the
// documents table.
type ChunkCandidateSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChunkCandidateSource(uowFactory unitofwork.RepositoryFactory) *ChunkCandidateSource {
	return &ChunkCandidateSource{uowFactory: uowFactory}
}

func (c *ChunkCandidateSource) FetchCandidates(ctx context.Context, filter search.Filter) ([]search.Candidate, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.WithEmbedding{}}
	if filter.DocumentID != nil {
		specs = append(specs, specification.ByDocumentID{DocumentID: *filter.DocumentID})
	}
	if filter.FundID != nil {
		specs = append(specs, specification.ChunkOwnedByFund{FundID: *filter.FundID})
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	candidates := make([]search.Candidate, len(chunks))
	for i, ch := range chunks {
		candidates[i] = search.Candidate{
			ChunkID:    ch.Id,
			DocumentID: ch.DocumentId,
			Page:       ch.Page,
			Content:    ch.Content,
			Embedding:  ch.EmbeddingValue,
		}
	}
	return candidates, nil
}
