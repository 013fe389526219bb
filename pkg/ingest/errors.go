package ingest

import "errors"

// Terminal ingestion failures. Everything page- or chunk-local is
// absorbed and logged instead.
var (
	// ErrDocumentUnreadable: the document could not be opened or parsed
	// at all.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrNoExtractableContent: the document opened but yielded neither
	// text nor a single usable table.
	ErrNoExtractableContent = errors.New("no extractable content")
)
