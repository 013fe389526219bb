package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPClient calls the metrics collaborator over HTTP:
// GET {base}/funds/{id}/metrics -> {"irr": 0.18, "tvpi": 1.6, ...}
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

var _ Service = &HTTPClient{}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) CalculateAllMetrics(ctx context.Context, fundID uuid.UUID) (map[string]float64, error) {
	endpoint := fmt.Sprintf("%s/funds/%s/metrics", c.BaseURL, fundID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metrics request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result map[string]float64
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	return result, nil
}
