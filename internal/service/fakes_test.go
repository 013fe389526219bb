package service

import (
	"context"
	"sync"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/repository/contract"
	"fundsight-be/internal/repository/specification"
	"fundsight-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// fakeState is the shared in-memory backing store for the fake
// repositories. Specifications are pattern-matched on their concrete
// types rather than compiled to SQL.
type fakeState struct {
	mu        sync.Mutex
	funds     map[uuid.UUID]*entity.Fund
	documents map[uuid.UUID]*entity.Document
	chunks    map[uuid.UUID]*entity.DocumentChunk
	tables    map[uuid.UUID]*entity.DocumentTable

	// completeErr, when set, fails the next processing -> completed
	// transition once, simulating a transient database error.
	completeErr error
}

func newFakeState() *fakeState {
	return &fakeState{
		funds:     map[uuid.UUID]*entity.Fund{},
		documents: map[uuid.UUID]*entity.Document{},
		chunks:    map[uuid.UUID]*entity.DocumentChunk{},
		tables:    map[uuid.UUID]*entity.DocumentTable{},
	}
}

type fakeUowFactory struct {
	state *fakeState
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{state: f.state}
}

type fakeUow struct {
	state *fakeState
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) FundRepository() contract.FundRepository {
	return &fakeFundRepo{state: u.state}
}

func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{state: u.state}
}

func (u *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &fakeChunkRepo{state: u.state}
}

func (u *fakeUow) DocumentTableRepository() contract.DocumentTableRepository {
	return &fakeTableRepo{state: u.state}
}

func specID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

func specDocumentID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if byDoc, ok := s.(specification.ByDocumentID); ok {
			return byDoc.DocumentID, true
		}
	}
	return uuid.Nil, false
}

type fakeFundRepo struct {
	state *fakeState
}

func (r *fakeFundRepo) Create(ctx context.Context, fund *entity.Fund) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	cp := *fund
	r.state.funds[fund.Id] = &cp
	return nil
}

func (r *fakeFundRepo) Update(ctx context.Context, fund *entity.Fund) error {
	return r.Create(ctx, fund)
}

func (r *fakeFundRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.funds, id)
	return nil
}

func (r *fakeFundRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Fund, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if id, ok := specID(specs); ok {
		if f, found := r.state.funds[id]; found {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Fund, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*entity.Fund
	for _, f := range r.state.funds {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeFundRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return int64(len(r.state.funds)), nil
}

type fakeDocumentRepo struct {
	state *fakeState
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	cp := *document
	r.state.documents[document.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error {
	return r.Create(ctx, document)
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.documents, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if id, ok := specID(specs); ok {
		if d, found := r.state.documents[id]; found {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*entity.Document
	for _, s := range specs {
		if byFund, ok := s.(specification.ByFundID); ok {
			for _, d := range r.state.documents {
				if d.FundId == byFund.FundID {
					cp := *d
					out = append(out, &cp)
				}
			}
			return out, nil
		}
	}
	for _, d := range r.state.documents {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, err := r.FindAll(ctx, specs...)
	return int64(len(docs)), err
}

func (r *fakeDocumentRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.ParsingStatus) (bool, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if from == entity.ParsingStatusProcessing && to == entity.ParsingStatusCompleted && r.state.completeErr != nil {
		err := r.state.completeErr
		r.state.completeErr = nil
		return false, err
	}
	d, found := r.state.documents[id]
	if !found || d.ParsingStatus != from {
		return false, nil
	}
	d.ParsingStatus = to
	return true, nil
}

func (r *fakeDocumentRepo) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if d, found := r.state.documents[id]; found {
		d.ParsingStatus = entity.ParsingStatusFailed
		d.ErrorMessage = errorMessage
	}
	return nil
}

type fakeChunkRepo struct {
	state *fakeState
}

func (r *fakeChunkRepo) Create(ctx context.Context, chunk *entity.DocumentChunk) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	cp := *chunk
	r.state.chunks[chunk.Id] = &cp
	return nil
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	for _, c := range chunks {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeChunkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.chunks, id)
	return nil
}

func (r *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for id, c := range r.state.chunks {
		if c.DocumentId == documentId {
			delete(r.state.chunks, id)
		}
	}
	return nil
}

func (r *fakeChunkRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if id, ok := specID(specs); ok {
		if c, found := r.state.chunks[id]; found {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	withEmbedding := false
	var docID *uuid.UUID
	var fundID *uuid.UUID
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.WithEmbedding:
			withEmbedding = true
		case specification.ByDocumentID:
			id := spec.DocumentID
			docID = &id
		case specification.ChunkOwnedByFund:
			id := spec.FundID
			fundID = &id
		}
	}

	var out []*entity.DocumentChunk
	for _, c := range r.state.chunks {
		if withEmbedding && len(c.EmbeddingValue) == 0 {
			continue
		}
		if docID != nil && c.DocumentId != *docID {
			continue
		}
		if fundID != nil {
			doc, found := r.state.documents[c.DocumentId]
			if !found || doc.FundId != *fundID {
				continue
			}
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	chunks, err := r.FindAll(ctx, specs...)
	return int64(len(chunks)), err
}

func (r *fakeChunkRepo) AttachEmbedding(ctx context.Context, chunkId uuid.UUID, vector []float32) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if c, found := r.state.chunks[chunkId]; found {
		c.EmbeddingValue = vector
	}
	return nil
}

type fakeTableRepo struct {
	state *fakeState
}

func (r *fakeTableRepo) Create(ctx context.Context, table *entity.DocumentTable) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	cp := *table
	r.state.tables[table.Id] = &cp
	return nil
}

func (r *fakeTableRepo) CreateBulk(ctx context.Context, tables []*entity.DocumentTable) error {
	for _, t := range tables {
		if err := r.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	delete(r.state.tables, id)
	return nil
}

func (r *fakeTableRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for id, t := range r.state.tables {
		if t.DocumentId == documentId {
			delete(r.state.tables, id)
		}
	}
	return nil
}

func (r *fakeTableRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentTable, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []*entity.DocumentTable
	docID, hasDocID := specDocumentID(specs)
	for _, t := range r.state.tables {
		if hasDocID && t.DocumentId != docID {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTableRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	tables, err := r.FindAll(ctx, specs...)
	return int64(len(tables)), err
}

type fakePublisherService struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisherService) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

// nopLogger satisfies logger.ILogger without output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
