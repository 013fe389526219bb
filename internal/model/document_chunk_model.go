package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	Page       int       `gorm:"not null"`
	ChunkIndex int       `gorm:"default:0"` // 0-based index for ordering

	// Nullable: chunks are stored first, vectors attached after the
	// embedding batch returns.
	EmbeddingValue *pgvector.Vector `gorm:"type:vector(768)"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
