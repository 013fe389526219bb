package contract

import (
	"context"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// AttachEmbedding sets the vector column of one chunk in a single
	// UPDATE, leaving the rest of the row untouched.
	AttachEmbedding(ctx context.Context, chunkId uuid.UUID, vector []float32) error
}
