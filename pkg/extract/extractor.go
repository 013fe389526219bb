package extract

import (
	"context"
	"log"
	"strings"
)

// PageText is the extracted plain text of one page.
type PageText struct {
	Page int
	Text string
}

// PageTable is one raw table found on a page.
type PageTable struct {
	Page int
	Grid Grid
}

// Extractor walks a document Source and pulls out per-page text and raw
// tables. Per-page failures are logged and skipped; only the inability to
// open the document at all is fatal, and that is the caller's concern.
type Extractor struct {
	logger *log.Logger
}

func NewExtractor(logger *log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the text of every page that has any, and every table
// that has at least one non-empty cell. Tables whose cells are all empty
// never reach the classifier or the store.
func (e *Extractor) Extract(ctx context.Context, src Source) ([]PageText, []PageTable, error) {
	var texts []PageText
	var tables []PageTable

	total := src.PageCount()
	for number := 1; number <= total; number++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		page, err := src.Page(number)
		if err != nil {
			e.logger.Printf("[WARN] skipping page %d: extraction failed: %v", number, err)
			continue
		}

		if strings.TrimSpace(page.Text) == "" {
			e.logger.Printf("[WARN] page %d has no extractable text", number)
		} else {
			texts = append(texts, PageText{Page: number, Text: page.Text})
		}

		for _, grid := range page.Tables {
			if grid.IsEmpty() {
				continue
			}
			tables = append(tables, PageTable{Page: number, Grid: grid})
		}
	}

	return texts, tables, nil
}
