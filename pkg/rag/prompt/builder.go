package prompt

import (
	"fmt"
	"sort"
	"strings"

	"fundsight-be/pkg/llm"
	"fundsight-be/pkg/rag/search"
)

// Builder assembles the single grounded prompt handed to the answer
// generator: retrieved chunks tagged with their page, computed metrics
// when present, prior conversation turns, then the question.
type Builder struct {
	query   string
	sources []search.Result
	metrics map[string]float64
	history []llm.Message
}

func NewBuilder(query string, sources []search.Result, metrics map[string]float64, history []llm.Message) *Builder {
	return &Builder{
		query:   query,
		sources: sources,
		metrics: metrics,
		history: history,
	}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeContext(&prompt)
	b.writeMetrics(&prompt)
	b.writeHistory(&prompt)
	b.writeTask(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *Builder) writeContext(prompt *strings.Builder) {
	if len(b.sources) == 0 {
		return
	}

	prompt.WriteString("<document_context>\n")
	for _, src := range b.sources {
		prompt.WriteString(fmt.Sprintf("[Page %d]\n%s\n\n", src.Page, src.Content))
	}
	prompt.WriteString("</document_context>\n\n")
}

func (b *Builder) writeMetrics(prompt *strings.Builder) {
	if len(b.metrics) == 0 {
		return
	}

	// Stable key order so identical inputs build identical prompts.
	names := make([]string, 0, len(b.metrics))
	for name := range b.metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	prompt.WriteString("<computed_metrics>\n")
	for _, name := range names {
		prompt.WriteString(fmt.Sprintf("%s: %.4f\n", name, b.metrics[name]))
	}
	prompt.WriteString("</computed_metrics>\n\n")
}

func (b *Builder) writeHistory(prompt *strings.Builder) {
	if len(b.history) == 0 {
		return
	}

	prompt.WriteString("<conversation_history>\n")
	for _, turn := range b.history {
		prompt.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
	}
	prompt.WriteString("</conversation_history>\n\n")
}

func (b *Builder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a fund analysis assistant with access to extracts from fund report documents.\n")
	prompt.WriteString("Answer clearly and concisely using ONLY the document context and computed metrics above.\n")
	prompt.WriteString("Prefer the computed metrics over figures quoted in the text when both are present.\n")
	prompt.WriteString("If the context does not contain enough information, say so explicitly.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *Builder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("<question>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</question>\n")
}
