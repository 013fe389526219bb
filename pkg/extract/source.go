package extract

import (
	"encoding/json"
	"fmt"
	"os"
)

// Grid is a raw rectangular table pulled from a document page.
// Cells are nullable: a nil cell means the parser found nothing there.
type Grid [][]*string

// IsEmpty reports whether every cell in every row is nil or blank.
func (g Grid) IsEmpty() bool {
	for _, row := range g {
		for _, cell := range row {
			if cell != nil && *cell != "" {
				return false
			}
		}
	}
	return true
}

// PageContent is what a single document page yields.
type PageContent struct {
	Text   string `json:"text"`
	Tables []Grid `json:"tables"`
}

// Source is an ordered, finite, re-iterable sequence of document pages.
// PageCount and Page may be called any number of times in any order.
type Source interface {
	PageCount() int
	// Page returns the content of a page. Numbering is 1-based.
	Page(number int) (*PageContent, error)
}

// Opener opens a document file into a Source. Implementations wrap
// whatever parser actually reads the bytes (the PDF extraction service
// writes a sidecar JSON next to each upload).
type Opener interface {
	Open(path string) (Source, error)
}

// StaticSource is an in-memory Source, used for tests and seeding.
type StaticSource []PageContent

func (s StaticSource) PageCount() int {
	return len(s)
}

func (s StaticSource) Page(number int) (*PageContent, error) {
	if number < 1 || number > len(s) {
		return nil, fmt.Errorf("page %d out of range (1..%d)", number, len(s))
	}
	pc := s[number-1]
	return &pc, nil
}

// JSONOpener reads the extraction sidecar produced by the external PDF
// parser: {"pages": [{"text": "...", "tables": [[[cell, ...], ...]]}]}.
type JSONOpener struct{}

func NewJSONOpener() *JSONOpener {
	return &JSONOpener{}
}

type sidecarFile struct {
	Pages []PageContent `json:"pages"`
}

func (o *JSONOpener) Open(path string) (Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var f sidecarFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}

	return StaticSource(f.Pages), nil
}
