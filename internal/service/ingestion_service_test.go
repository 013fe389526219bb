package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"

	"fundsight-be/internal/dto"
	"fundsight-be/internal/entity"
	"fundsight-be/pkg/chunker"
	"fundsight-be/pkg/extract"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedOpener struct {
	src extract.Source
	err error
}

func (o *fixedOpener) Open(path string) (extract.Source, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.src, nil
}

type unitProvider struct{}

func (unitProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	if text == "" {
		return []float32{}, nil
	}
	return []float32{1, 0, 0}, nil
}

func (p unitProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if t != "" {
			out[i] = []float32{1, 0, 0}
		}
	}
	return out, nil
}

func cellValue(s string) *string { return &s }

func newTestConsumer(state *fakeState, opener extract.Opener) *ingestionConsumerService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewIngestionConsumerService(
		pubSub,
		"INGEST_DOCUMENT",
		&fakeUowFactory{state: state},
		opener,
		unitProvider{},
		chunker.Config{ChunkSize: 500, Overlap: 50},
		nil,
		nopLogger{},
		log.New(io.Discard, "", 0),
	)
	return svc.(*ingestionConsumerService)
}

func ingestMessage(t *testing.T, documentId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.IngestDocumentMessage{DocumentId: documentId})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestIngestionConsumerProcessesPendingDocument(t *testing.T) {
	state := newFakeState()
	fundId := seedFund(state)
	docId := uuid.New()
	state.documents[docId] = &entity.Document{
		Id: docId, FundId: fundId, Filename: "q3.pdf", FilePath: "q3.pdf",
		ParsingStatus: entity.ParsingStatusPending,
	}

	src := extract.StaticSource{
		{
			Text:   "Capital call notice for the third quarter.",
			Tables: []extract.Grid{{{cellValue("Capital Call"), cellValue("$100,000")}}},
		},
	}
	consumer := newTestConsumer(state, &fixedOpener{src: src})
	consumer.processMessage(context.Background(), ingestMessage(t, docId))

	doc := state.documents[docId]
	assert.Equal(t, entity.ParsingStatusCompleted, doc.ParsingStatus)
	assert.Equal(t, 1, doc.PageCount)
	assert.Len(t, state.tables, 1)
	require.NotEmpty(t, state.chunks)
	for _, c := range state.chunks {
		assert.NotEmpty(t, c.EmbeddingValue)
	}
}

func TestIngestionConsumerSkipsAlreadyClaimedDocument(t *testing.T) {
	state := newFakeState()
	fundId := seedFund(state)
	docId := uuid.New()
	state.documents[docId] = &entity.Document{
		Id: docId, FundId: fundId, Filename: "q3.pdf", FilePath: "q3.pdf",
		ParsingStatus: entity.ParsingStatusCompleted,
	}

	consumer := newTestConsumer(state, &fixedOpener{err: errors.New("must not be opened")})
	consumer.processMessage(context.Background(), ingestMessage(t, docId))

	// The duplicate delivery loses the status race and touches nothing.
	assert.Equal(t, entity.ParsingStatusCompleted, state.documents[docId].ParsingStatus)
	assert.Empty(t, state.chunks)
	assert.Empty(t, state.tables)
}

func TestIngestionConsumerCompletesDocumentStrandedInProcessing(t *testing.T) {
	state := newFakeState()
	fundId := seedFund(state)
	docId := uuid.New()
	state.documents[docId] = &entity.Document{
		Id: docId, FundId: fundId, Filename: "q3.pdf", FilePath: "q3.pdf",
		ParsingStatus: entity.ParsingStatusPending,
	}
	// The completion transition fails once, after the pipeline has
	// persisted chunks, leaving the document parked in processing.
	state.completeErr = errors.New("transient db error")

	src := extract.StaticSource{
		{Text: "Capital call notice for the third quarter."},
	}
	consumer := newTestConsumer(state, &fixedOpener{src: src})

	consumer.processMessage(context.Background(), ingestMessage(t, docId))
	require.Equal(t, entity.ParsingStatusProcessing, state.documents[docId].ParsingStatus)
	require.NotEmpty(t, state.chunks)

	// The Nacked message comes back. The redelivery cannot reclaim the
	// document from pending; it must finish the terminal transition
	// instead of acking it away.
	consumer.processMessage(context.Background(), ingestMessage(t, docId))
	assert.Equal(t, entity.ParsingStatusCompleted, state.documents[docId].ParsingStatus)
	for _, c := range state.chunks {
		assert.NotEmpty(t, c.EmbeddingValue)
	}
}

func TestIngestionConsumerMarksUnreadableDocumentFailed(t *testing.T) {
	state := newFakeState()
	fundId := seedFund(state)
	docId := uuid.New()
	state.documents[docId] = &entity.Document{
		Id: docId, FundId: fundId, Filename: "broken.pdf", FilePath: "broken.pdf",
		ParsingStatus: entity.ParsingStatusPending,
	}

	consumer := newTestConsumer(state, &fixedOpener{err: errors.New("corrupt header")})
	consumer.processMessage(context.Background(), ingestMessage(t, docId))

	doc := state.documents[docId]
	assert.Equal(t, entity.ParsingStatusFailed, doc.ParsingStatus)
	assert.Contains(t, doc.ErrorMessage, "document unreadable")
}

func TestIngestionConsumerAcksMissingDocument(t *testing.T) {
	state := newFakeState()
	consumer := newTestConsumer(state, &fixedOpener{err: errors.New("must not be opened")})
	consumer.processMessage(context.Background(), ingestMessage(t, uuid.New()))
	assert.Empty(t, state.chunks)
}
