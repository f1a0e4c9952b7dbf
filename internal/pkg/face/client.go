package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Match is the identity resolved by the recognition service. An empty
// EmployeeID means no enrolled face was close enough.
type Match struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
}

// Matcher resolves a captured frame to an employee. The recognition model
// itself runs in a separate service; this backend only consumes the result.
type Matcher interface {
	Match(ctx context.Context, imageBase64 string) (Match, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type matchRequest struct {
	Image string `json:"image"`
}

type matchResponse struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
}

// Match implements Matcher against the HTTP recognition service.
func (c *Client) Match(ctx context.Context, imageBase64 string) (Match, error) {
	body, err := json.Marshal(matchRequest{Image: imageBase64})
	if err != nil {
		return Match{}, fmt.Errorf("failed to encode match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/match", bytes.NewReader(body))
	if err != nil {
		return Match{}, fmt.Errorf("failed to build match request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Match{}, fmt.Errorf("face service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Match{}, fmt.Errorf("face service returned status %d", resp.StatusCode)
	}

	var result matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Match{}, fmt.Errorf("failed to decode match response: %w", err)
	}

	return Match{EmployeeID: result.EmployeeID, FullName: result.FullName}, nil
}
