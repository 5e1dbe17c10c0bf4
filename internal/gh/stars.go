// Package gh fetches the project repository's star count from the GitHub
// API. The count is decorative; every failure degrades to zero rather
// than surfacing an error.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultBaseURL is the production GitHub API host.
const DefaultBaseURL = "https://api.github.com"

// StarsClient fetches the stargazer count for one repository.
type StarsClient struct {
	httpClient *http.Client
	baseURL    string
	repo       string // "owner/name"
}

// NewStarsClient constructs a StarsClient for the given "owner/name" repo.
// A nil httpClient falls back to http.DefaultClient; an empty baseURL
// falls back to DefaultBaseURL.
func NewStarsClient(repo string, httpClient *http.Client, baseURL string) *StarsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &StarsClient{httpClient: httpClient, baseURL: baseURL, repo: repo}
}

// Stars returns the repository's stargazer count.
// The error return exists for logging only; callers treat any error as
// "show zero", never as a request failure.
func (c *StarsClient) Stars(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/repos/"+c.repo, nil)
	if err != nil {
		return 0, fmt.Errorf("gh: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("gh: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("gh: HTTP %d", resp.StatusCode)
	}

	var body struct {
		StargazersCount int `json:"stargazers_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("gh: decode response: %w", err)
	}
	return body.StargazersCount, nil
}
