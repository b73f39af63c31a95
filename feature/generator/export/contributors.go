package export

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

var contributorsClient = &http.Client{Timeout: 15 * time.Second}

// fetchContributors pulls the contributor logins from the GitHub API. The
// caller treats failures as non-fatal and keeps the configured list.
func fetchContributors(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "nattadasu/animeApi")

	resp, err := contributorsClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contributors: unexpected status %d", resp.StatusCode)
	}

	var contributors []struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&contributors); err != nil {
		return nil, err
	}
	logins := make([]string, 0, len(contributors))
	for _, c := range contributors {
		logins = append(logins, c.Login)
	}
	return logins, nil
}
