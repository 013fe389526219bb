package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fundsight-be/internal/dto"
	"fundsight-be/internal/entity"
	"fundsight-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFund(state *fakeState) uuid.UUID {
	id := uuid.New()
	state.funds[id] = &entity.Fund{Id: id, Name: "Growth Fund III", CreatedAt: time.Now()}
	return id
}

func TestDocumentServiceUploadCreatesPendingAndQueues(t *testing.T) {
	state := newFakeState()
	fundId := seedFund(state)
	publisher := &fakePublisherService{}
	svc := NewDocumentService(&fakeUowFactory{state: state}, publisher, nil, t.TempDir(), nopLogger{})

	res, err := svc.Upload(context.Background(), fundId, "q3-report.pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.ParsingStatusPending), res.ParsingStatus)

	doc := state.documents[res.Id]
	require.NotNil(t, doc)
	assert.Equal(t, fundId, doc.FundId)
	assert.FileExists(t, doc.FilePath)

	require.Len(t, publisher.payloads, 1)
	var msg dto.IngestDocumentMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.DocumentId)
}

func TestDocumentServiceUploadUnknownFund(t *testing.T) {
	state := newFakeState()
	svc := NewDocumentService(&fakeUowFactory{state: state}, &fakePublisherService{}, nil, t.TempDir(), nopLogger{})

	_, err := svc.Upload(context.Background(), uuid.New(), "report.pdf", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Empty(t, state.documents)
}

func TestDocumentServiceDeleteCascade(t *testing.T) {
	state := newFakeState()
	fundId := seedFund(state)

	dir := t.TempDir()
	filePath := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("%PDF-1.7"), 0o644))

	docId := uuid.New()
	state.documents[docId] = &entity.Document{
		Id:            docId,
		FundId:        fundId,
		Filename:      "report.pdf",
		FilePath:      filePath,
		ParsingStatus: entity.ParsingStatusCompleted,
	}
	for i := 0; i < 3; i++ {
		id := uuid.New()
		state.chunks[id] = &entity.DocumentChunk{
			Id: id, DocumentId: docId, Content: "chunk", Page: 1,
			EmbeddingValue: []float32{1, 0, 0},
		}
	}
	tableId := uuid.New()
	state.tables[tableId] = &entity.DocumentTable{Id: tableId, DocumentId: docId, Page: 1}

	// A chunk of another document must survive the cascade.
	otherId := uuid.New()
	state.chunks[otherId] = &entity.DocumentChunk{Id: otherId, DocumentId: uuid.New(), Content: "other"}

	svc := NewDocumentService(&fakeUowFactory{state: state}, &fakePublisherService{}, nil, dir, nopLogger{})
	require.NoError(t, svc.Delete(context.Background(), docId))

	assert.NotContains(t, state.documents, docId)
	assert.NoFileExists(t, filePath)
	assert.Empty(t, state.tables)

	// No chunk of the deleted document remains retrievable.
	repo := (&fakeUow{state: state}).DocumentChunkRepository()
	remaining, err := repo.FindAll(context.Background(), specification.ByDocumentID{DocumentID: docId})
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Contains(t, state.chunks, otherId)
}

func TestDocumentServiceStatusCounts(t *testing.T) {
	state := newFakeState()
	fundId := seedFund(state)
	docId := uuid.New()
	state.documents[docId] = &entity.Document{
		Id: docId, FundId: fundId, Filename: "report.pdf",
		ParsingStatus: entity.ParsingStatusCompleted, PageCount: 12,
	}
	for i := 0; i < 5; i++ {
		id := uuid.New()
		state.chunks[id] = &entity.DocumentChunk{Id: id, DocumentId: docId}
	}
	tableId := uuid.New()
	state.tables[tableId] = &entity.DocumentTable{Id: tableId, DocumentId: docId}

	svc := NewDocumentService(&fakeUowFactory{state: state}, &fakePublisherService{}, nil, t.TempDir(), nopLogger{})
	res, err := svc.Status(context.Background(), docId)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.ChunkCount)
	assert.Equal(t, int64(1), res.TableCount)
	assert.Equal(t, 12, res.PageCount)
}
