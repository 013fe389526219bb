package response

import (
	"context"
	"fmt"
	"log"

	"fundsight-be/pkg/llm"
)

// Generator wraps the language model behind a guarantee: it always
// returns an answer string. A model failure becomes a degraded answer
// carrying the error, never a propagated fault.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Generate runs the grounded prompt through the model.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	answer, err := g.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		g.logger.Printf("[ERROR] answer generation failed: %v", err)
		return fmt.Sprintf("Sorry, I could not generate an answer: %v", err)
	}
	return answer
}
