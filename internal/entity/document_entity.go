package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParsingStatus tracks a document through its ingestion lifecycle.
// Transitions: pending -> processing -> completed | failed. A failed
// document only re-enters the pipeline via re-upload.
type ParsingStatus string

const (
	ParsingStatusPending    ParsingStatus = "pending"
	ParsingStatusProcessing ParsingStatus = "processing"
	ParsingStatusCompleted  ParsingStatus = "completed"
	ParsingStatusFailed     ParsingStatus = "failed"
)

type Document struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FundId        uuid.UUID `gorm:"type:uuid;index"`
	Filename      string
	FilePath      string
	ParsingStatus ParsingStatus
	ErrorMessage  string
	PageCount     int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
