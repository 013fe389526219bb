package embedding

import "context"

// Task type hints passed to providers that distinguish document and
// query embeddings. Providers that don't care ignore them.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// EmbeddingProvider maps text to a fixed-length vector. Implementations
// must be deterministic for identical input and model version; swapping
// the model invalidates every stored vector and requires a full
// re-embedding of the corpus.
//
// Empty or whitespace-only input yields an empty vector and a nil error,
// so callers skip that text instead of aborting a batch.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)

	// GenerateBatch returns one vector per input, aligned by index. A text
	// that could not be embedded gets an empty vector, not an error; the
	// error return is reserved for request-level failures (cancellation,
	// provider unreachable for the whole batch).
	GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error)
}
