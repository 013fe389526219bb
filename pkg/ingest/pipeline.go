package ingest

import (
	"context"
	"fmt"
	"log"

	"fundsight-be/pkg/chunker"
	"fundsight-be/pkg/embedding"
	"fundsight-be/pkg/extract"

	"github.com/google/uuid"
)

// TableRecord is a classified table ready for persistence.
type TableRecord struct {
	Page int
	Grid extract.Grid
	Type extract.TableType
}

// Store is the narrow persistence contract the pipeline needs. The
// repository layer adapts it onto the database; tests fake it in memory.
type Store interface {
	SaveTables(ctx context.Context, documentID uuid.UUID, tables []TableRecord) error

	// SaveChunks persists chunks without vectors and returns their ids in
	// input order.
	SaveChunks(ctx context.Context, documentID uuid.UUID, chunks []chunker.Chunk) ([]uuid.UUID, error)

	// AttachEmbedding sets a chunk's vector in one atomic field update.
	AttachEmbedding(ctx context.Context, chunkID uuid.UUID, vector []float32) error
}

// Result summarizes one ingestion run.
type Result struct {
	Pages    int
	Tables   int
	Chunks   int
	Embedded int
}

// Pipeline is the per-document unit of work:
// extract -> classify tables -> chunk -> embed -> attach.
type Pipeline struct {
	opener    extract.Opener
	extractor *extract.Extractor
	chunker   *chunker.Chunker
	provider  embedding.EmbeddingProvider
	store     Store
	logger    *log.Logger
}

func NewPipeline(
	opener extract.Opener,
	provider embedding.EmbeddingProvider,
	store Store,
	chunkCfg chunker.Config,
	logger *log.Logger,
) *Pipeline {
	return &Pipeline{
		opener:    opener,
		extractor: extract.NewExtractor(logger),
		chunker:   chunker.New(chunkCfg),
		provider:  provider,
		store:     store,
		logger:    logger,
	}
}

// Process ingests one document file. An unreadable document or one with
// no usable content at all fails terminally; per-page, per-table and
// per-chunk trouble is logged and skipped. A chunk whose embedding
// could not be generated stays stored without a vector; search simply
// never sees it until a re-embedding run.
func (p *Pipeline) Process(ctx context.Context, documentID uuid.UUID, filePath string) (*Result, error) {
	src, err := p.opener.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	texts, rawTables, err := p.extractor.Extract(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 && len(rawTables) == 0 {
		return nil, ErrNoExtractableContent
	}

	tables := make([]TableRecord, len(rawTables))
	for i, t := range rawTables {
		tables[i] = TableRecord{
			Page: t.Page,
			Grid: t.Grid,
			Type: extract.Classify(t.Grid),
		}
	}
	if len(tables) > 0 {
		if err := p.store.SaveTables(ctx, documentID, tables); err != nil {
			return nil, fmt.Errorf("save tables: %w", err)
		}
	}

	chunks := p.chunker.Split(texts)
	result := &Result{
		Pages:  src.PageCount(),
		Tables: len(tables),
		Chunks: len(chunks),
	}
	if len(chunks) == 0 {
		return result, nil
	}

	chunkIDs, err := p.store.SaveChunks(ctx, documentID, chunks)
	if err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	chunkTexts := make([]string, len(chunks))
	for i, c := range chunks {
		chunkTexts[i] = c.Text
	}
	vectors, err := p.provider.GenerateBatch(ctx, chunkTexts, embedding.TaskDocument)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The whole batch failed: leave every chunk unvectorized. The
		// document still completes; those chunks are invisible to search.
		p.logger.Printf("[ERROR] embedding batch failed for document %s: %v", documentID, err)
		return result, nil
	}

	for i, vec := range vectors {
		if len(vec) == 0 {
			p.logger.Printf("[WARN] no embedding for chunk %d of document %s, skipping", i, documentID)
			continue
		}
		if err := p.store.AttachEmbedding(ctx, chunkIDs[i], vec); err != nil {
			p.logger.Printf("[ERROR] failed to attach embedding for chunk %s: %v", chunkIDs[i], err)
			continue
		}
		result.Embedded++
	}

	p.logger.Printf("[INFO] document %s ingested: %d tables, %d chunks, %d embedded",
		documentID, result.Tables, result.Chunks, result.Embedded)
	return result, nil
}
