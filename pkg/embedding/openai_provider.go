package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIProvider implements EmbeddingProvider against the OpenAI
// embeddings API (remote alternative to the local Ollama model).
type OpenAIProvider struct {
	ApiKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		ApiKey:  apiKey,
		Model:   model,
		BaseURL: "https://api.openai.com/v1",
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type openaiEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openaiEmbeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	vectors, err := p.GenerateBatch(ctx, []string{text}, taskType)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	return vectors[0], nil
}

// GenerateBatch issues a single API call for the whole batch; the API
// embeds all inputs together. Blank inputs are held out of the request
// and come back as empty slots.
func (p *OpenAIProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var input []string
	var slots []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		input = append(input, text)
		slots = append(slots, i)
	}
	if len(input) == 0 {
		return vectors, nil
	}

	reqBody := openaiEmbeddingRequest{
		Model: p.Model,
		Input: input,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/embeddings", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embedding error: %s", string(bodyBytes))
	}

	var apiResp openaiEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return nil, err
	}

	for _, item := range apiResp.Data {
		if item.Index < 0 || item.Index >= len(slots) {
			continue
		}
		vectors[slots[item.Index]] = normalizeVector(item.Embedding)
	}
	return vectors, nil
}
