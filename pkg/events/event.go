package events

import "time"

// Event is the contract every published system event satisfies.
type Event interface {
	// EventType returns the unique code for this event (e.g. "DOCUMENT_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by the typed constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Document lifecycle event codes.
const (
	TypeDocumentUploaded  = "DOCUMENT_UPLOADED"
	TypeDocumentProcessed = "DOCUMENT_PROCESSED"
	TypeDocumentFailed    = "DOCUMENT_FAILED"
	TypeDocumentDeleted   = "DOCUMENT_DELETED"
)

// NewDocumentUploaded fires when a document file has been stored and its
// ingestion job queued.
func NewDocumentUploaded(documentID, fundID, filename string) Event {
	return BaseEvent{
		Type: TypeDocumentUploaded,
		Data: map[string]interface{}{
			"document_id": documentID,
			"fund_id":     fundID,
			"filename":    filename,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentProcessed fires when the ingestion pipeline has completed for a
// document, with the counts of what it produced.
func NewDocumentProcessed(documentID string, tables, chunks, embedded int) Event {
	return BaseEvent{
		Type: TypeDocumentProcessed,
		Data: map[string]interface{}{
			"document_id": documentID,
			"tables":      tables,
			"chunks":      chunks,
			"embedded":    embedded,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentFailed fires when ingestion fails terminally.
func NewDocumentFailed(documentID, reason string) Event {
	return BaseEvent{
		Type: TypeDocumentFailed,
		Data: map[string]interface{}{
			"document_id": documentID,
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentDeleted fires after a document and its derived rows are removed.
func NewDocumentDeleted(documentID, fundID string) Event {
	return BaseEvent{
		Type: TypeDocumentDeleted,
		Data: map[string]interface{}{
			"document_id": documentID,
			"fund_id":     fundID,
		},
		OccurredAt: time.Now(),
	}
}
