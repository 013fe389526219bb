package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one retrievable span of page text. EmbeddingValue is
// empty until the ingestion pipeline attaches a vector; chunks without a
// vector are invisible to similarity search.
type DocumentChunk struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId     uuid.UUID `gorm:"type:uuid;index"`
	Content        string
	Page           int
	ChunkIndex     int
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
