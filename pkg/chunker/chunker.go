package chunker

import (
	"regexp"
	"strings"

	"fundsight-be/pkg/extract"
)

// Chunk is a bounded span of page text, the retrieval unit of the system.
type Chunk struct {
	Page int
	Text string
}

// Config bounds chunk growth. Defaults match what retrieval was tuned
// against; change them only together with a full re-embedding.
type Config struct {
	ChunkSize int // flush threshold in characters
	Overlap   int // trailing characters carried into the next chunk
}

func DefaultConfig() Config {
	return Config{ChunkSize: 500, Overlap: 50}
}

// sentenceBoundary matches sentence-ending punctuation followed by
// whitespace. The punctuation stays with the sentence it ends.
var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// Chunker splits per-page text into overlapping, size-bounded chunks.
type Chunker struct {
	cfg Config
}

func New(cfg Config) *Chunker {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.ChunkSize {
		// An overlap at or above the chunk size would never make progress.
		cfg.Overlap = cfg.ChunkSize / 10
	}
	return &Chunker{cfg: cfg}
}

// Split chunks every page independently, preserving page provenance and
// emission order. Whitespace-only pages yield no chunks.
func (c *Chunker) Split(pages []extract.PageText) []Chunk {
	var chunks []Chunk
	for _, page := range pages {
		for _, text := range c.splitPage(page.Text) {
			chunks = append(chunks, Chunk{Page: page.Page, Text: text})
		}
	}
	return chunks
}

func (c *Chunker) splitPage(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	var buffer strings.Builder

	for _, sentence := range splitSentences(text) {
		if buffer.Len()+len(sentence) < c.cfg.ChunkSize {
			buffer.WriteString(sentence)
			buffer.WriteByte(' ')
			continue
		}

		// Flush, then seed the next buffer with the tail of the sentence
		// that triggered the flush to preserve context at the boundary.
		if chunk := strings.TrimSpace(buffer.String()); chunk != "" {
			out = append(out, chunk)
		}
		buffer.Reset()
		buffer.WriteString(tail(sentence, c.cfg.Overlap))
		buffer.WriteByte(' ')
	}

	if chunk := strings.TrimSpace(buffer.String()); chunk != "" {
		out = append(out, chunk)
	}
	return out
}

// splitSentences cuts text at sentence boundaries, keeping the ending
// punctuation and dropping the separating whitespace.
func splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		end := loc[3] // just past the punctuation
		sentences = append(sentences, text[last:end])
		last = loc[1] // past the whitespace run
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}
	return sentences
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
