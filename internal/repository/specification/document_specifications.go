package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByFundID struct {
	FundID uuid.UUID
}

func (s ByFundID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("fund_id = ?", s.FundID)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByParsingStatus struct {
	Status string
}

func (s ByParsingStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parsing_status = ?", s.Status)
}

// ChunkOwnedByFund scopes document_chunks to one fund by joining through
// documents. Soft-deleted documents are excluded so their chunks never
// surface in search.
type ChunkOwnedByFund struct {
	FundID uuid.UUID
}

func (s ChunkOwnedByFund) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN documents ON documents.id = document_chunks.document_id").
		Where("documents.fund_id = ?", s.FundID).
		Where("documents.deleted_at IS NULL")
}

// WithEmbedding keeps only chunks that have a vector attached.
type WithEmbedding struct{}

func (s WithEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding_value IS NOT NULL")
}
