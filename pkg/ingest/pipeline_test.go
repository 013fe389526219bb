package ingest

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"fundsight-be/pkg/chunker"
	"fundsight-be/pkg/extract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOpener struct {
	src extract.Source
	err error
}

func (o *staticOpener) Open(path string) (extract.Source, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.src, nil
}

type stubProvider struct {
	err   error
	calls int
}

func (p *stubProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	if text == "" {
		return []float32{}, nil
	}
	return []float32{1, 0, 0}, nil
}

func (p *stubProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if t == "" {
			continue
		}
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type memoryStore struct {
	tables     []TableRecord
	chunks     []chunker.Chunk
	chunkIDs   []uuid.UUID
	embeddings map[uuid.UUID][]float32
	attachErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{embeddings: map[uuid.UUID][]float32{}}
}

func (s *memoryStore) SaveTables(ctx context.Context, documentID uuid.UUID, tables []TableRecord) error {
	s.tables = append(s.tables, tables...)
	return nil
}

func (s *memoryStore) SaveChunks(ctx context.Context, documentID uuid.UUID, chunks []chunker.Chunk) ([]uuid.UUID, error) {
	s.chunks = append(s.chunks, chunks...)
	ids := make([]uuid.UUID, len(chunks))
	for i := range ids {
		ids[i] = uuid.New()
	}
	s.chunkIDs = append(s.chunkIDs, ids...)
	return ids, nil
}

func (s *memoryStore) AttachEmbedding(ctx context.Context, chunkID uuid.UUID, vector []float32) error {
	if s.attachErr != nil {
		return s.attachErr
	}
	s.embeddings[chunkID] = vector
	return nil
}

func cell(s string) *string { return &s }

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func narrative(length int) string {
	sentence := "The fund continued to deploy capital across its core strategies during the quarter. "
	var b strings.Builder
	for b.Len() < length {
		b.WriteString(sentence)
	}
	return b.String()[:length]
}

func TestPipelineTwoPageDocument(t *testing.T) {
	src := extract.StaticSource{
		{
			Text: "Capital call notice for Fund III.",
			Tables: []extract.Grid{
				{{cell("Capital Call"), cell("$100,000")}},
			},
		},
		{Text: narrative(1200)},
	}
	store := newMemoryStore()
	p := NewPipeline(&staticOpener{src: src}, &stubProvider{}, store,
		chunker.Config{ChunkSize: 500, Overlap: 50}, discardLogger())

	result, err := p.Process(context.Background(), uuid.New(), "report.pdf")
	require.NoError(t, err)

	require.Len(t, store.tables, 1)
	assert.Equal(t, extract.TableCapitalCall, store.tables[0].Type)
	assert.Equal(t, 1, store.tables[0].Page)

	var pageTwo int
	for _, c := range store.chunks {
		if c.Page == 2 {
			pageTwo++
		}
	}
	assert.GreaterOrEqual(t, pageTwo, 2)

	assert.Equal(t, len(store.chunks), result.Chunks)
	assert.Equal(t, len(store.chunks), result.Embedded)
	assert.Len(t, store.embeddings, len(store.chunkIDs))
}

func TestPipelineUnreadableDocument(t *testing.T) {
	p := NewPipeline(&staticOpener{err: errors.New("corrupt header")}, &stubProvider{},
		newMemoryStore(), chunker.Config{}, discardLogger())

	_, err := p.Process(context.Background(), uuid.New(), "broken.pdf")
	assert.ErrorIs(t, err, ErrDocumentUnreadable)
}

func TestPipelineNoExtractableContent(t *testing.T) {
	src := extract.StaticSource{{Text: ""}, {Text: "   "}}
	p := NewPipeline(&staticOpener{src: src}, &stubProvider{},
		newMemoryStore(), chunker.Config{}, discardLogger())

	_, err := p.Process(context.Background(), uuid.New(), "empty.pdf")
	assert.ErrorIs(t, err, ErrNoExtractableContent)
}

func TestPipelineTablesOnlyDocumentSucceeds(t *testing.T) {
	src := extract.StaticSource{
		{Tables: []extract.Grid{{{cell("Distribution"), cell("$50,000")}}}},
	}
	store := newMemoryStore()
	p := NewPipeline(&staticOpener{src: src}, &stubProvider{}, store,
		chunker.Config{}, discardLogger())

	result, err := p.Process(context.Background(), uuid.New(), "tables.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Tables)
	assert.Equal(t, 0, result.Chunks)
	assert.Equal(t, extract.TableDistribution, store.tables[0].Type)
}

func TestPipelineEmbeddingBatchFailureIsNotFatal(t *testing.T) {
	src := extract.StaticSource{{Text: "Short report text about distributions."}}
	store := newMemoryStore()
	provider := &stubProvider{err: errors.New("embedding backend down")}
	p := NewPipeline(&staticOpener{src: src}, provider, store,
		chunker.Config{}, discardLogger())

	result, err := p.Process(context.Background(), uuid.New(), "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 0, result.Embedded)
	assert.NotEmpty(t, store.chunks)
	assert.Empty(t, store.embeddings)
}

func TestPipelineAttachFailureSkipsChunk(t *testing.T) {
	src := extract.StaticSource{{Text: "Short report text about capital calls."}}
	store := newMemoryStore()
	store.attachErr = errors.New("db write failed")
	p := NewPipeline(&staticOpener{src: src}, &stubProvider{}, store,
		chunker.Config{}, discardLogger())

	result, err := p.Process(context.Background(), uuid.New(), "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Embedded)
}
