package dto

import (
	"time"

	"fundsight-be/pkg/extract"

	"github.com/google/uuid"
)

type UploadDocumentResponse struct {
	Id            uuid.UUID `json:"id"`
	Filename      string    `json:"filename"`
	ParsingStatus string    `json:"parsing_status"`
}

type DocumentStatusResponse struct {
	Id            uuid.UUID  `json:"id"`
	FundId        uuid.UUID  `json:"fund_id"`
	Filename      string     `json:"filename"`
	ParsingStatus string     `json:"parsing_status"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	PageCount     int        `json:"page_count"`
	ChunkCount    int64      `json:"chunk_count"`
	TableCount    int64      `json:"table_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Id            uuid.UUID `json:"id"`
	FundId        uuid.UUID `json:"fund_id"`
	Filename      string    `json:"filename"`
	ParsingStatus string    `json:"parsing_status"`
	CreatedAt     time.Time `json:"created_at"`
}

type DocumentTableResponse struct {
	Id        uuid.UUID         `json:"id"`
	Page      int               `json:"page"`
	TableType extract.TableType `json:"table_type"`
	TableData extract.Grid      `json:"table_data"`
}

// IngestDocumentMessage is the watermill payload that hands a pending
// document to the ingestion consumer.
type IngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
