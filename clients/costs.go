package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type CostsClient struct {
	baseURL string
	client  *http.Client
}

func NewCostsClient(baseURL string) *CostsClient {
	return &CostsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// GetTotal fetches the running cost total for a user. Callers degrade
// to zero when it fails.
func (c *CostsClient) GetTotal(ctx context.Context, userID int) (float64, error) {
	url := fmt.Sprintf("%s/api/costs/total/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch total: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code fetching total: %d", resp.StatusCode)
	}

	var body struct {
		Total float64 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode total: %w", err)
	}
	return body.Total, nil
}
