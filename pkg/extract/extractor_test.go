package extract

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// flakySource fails on a specific page to simulate a partial parser failure.
type flakySource struct {
	pages    StaticSource
	failPage int
}

func (s *flakySource) PageCount() int {
	return s.pages.PageCount()
}

func (s *flakySource) Page(number int) (*PageContent, error) {
	if number == s.failPage {
		return nil, fmt.Errorf("parser error on page %d", number)
	}
	return s.pages.Page(number)
}

func TestExtractSkipsTextlessPages(t *testing.T) {
	src := StaticSource{
		{Text: "First page narrative."},
		{Text: "   \n\t "},
		{Text: "Third page narrative."},
	}

	texts, tables, err := NewExtractor(discardLogger()).Extract(context.Background(), src)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("tables = %d, want 0", len(tables))
	}
	if len(texts) != 2 {
		t.Fatalf("texts = %d, want 2", len(texts))
	}
	if texts[0].Page != 1 || texts[1].Page != 3 {
		t.Errorf("page provenance = %d,%d, want 1,3", texts[0].Page, texts[1].Page)
	}
}

func TestExtractDiscardsEmptyTables(t *testing.T) {
	src := StaticSource{
		{
			Text: "Summary page.",
			Tables: []Grid{
				{{nil, nil}, {nil}},                        // all nil, discarded
				{{cell("")}},                               // all blank, discarded
				{{cell("Capital Call"), cell("$100,000")}}, // kept
			},
		},
	}

	_, tables, err := NewExtractor(discardLogger()).Extract(context.Background(), src)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	if tables[0].Page != 1 {
		t.Errorf("table page = %d, want 1", tables[0].Page)
	}
	if got := Classify(tables[0].Grid); got != TableCapitalCall {
		t.Errorf("kept table classified as %q, want %q", got, TableCapitalCall)
	}
}

func TestExtractToleratesPageFailure(t *testing.T) {
	src := &flakySource{
		pages: StaticSource{
			{Text: "Page one."},
			{Text: "Page two."},
			{Text: "Page three."},
		},
		failPage: 2,
	}

	texts, _, err := NewExtractor(discardLogger()).Extract(context.Background(), src)
	if err != nil {
		t.Fatalf("Extract() error = %v, want page failure absorbed", err)
	}
	if len(texts) != 2 {
		t.Fatalf("texts = %d, want 2", len(texts))
	}
	if texts[0].Page != 1 || texts[1].Page != 3 {
		t.Errorf("surviving pages = %d,%d, want 1,3", texts[0].Page, texts[1].Page)
	}
}

func TestExtractHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewExtractor(discardLogger()).Extract(ctx, StaticSource{{Text: "x."}})
	if err == nil {
		t.Fatal("Extract() with cancelled context returned nil error")
	}
}
