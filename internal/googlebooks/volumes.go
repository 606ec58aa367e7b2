package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// VolumesURL builds the search URL for a subject starting at startIndex.
func (c *Client) VolumesURL(subject string, startIndex int) string {
	params := url.Values{}
	params.Set("q", "subject="+subject)
	params.Set("maxResults", strconv.Itoa(PageSize))
	params.Set("printType", PrintType)
	params.Set("startIndex", strconv.Itoa(startIndex))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	return fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())
}

// Volumes fetches one page of results for subject.
func (c *Client) Volumes(ctx context.Context, subject string, startIndex int) (*VolumesResponse, error) {
	slog.Debug("Fetching volumes", "subject", subject, "start_index", startIndex)

	var result VolumesResponse
	if err := c.getJSON(ctx, c.VolumesURL(subject, startIndex), &result); err != nil {
		return nil, fmt.Errorf("%w: subject %q at index %d: %w", ErrRequestFailed, subject, startIndex, err)
	}

	slog.Debug("Fetched volumes",
		"subject", subject,
		"start_index", startIndex,
		"total_items", result.TotalItems,
		"items", len(result.Items),
	)
	return &result, nil
}

// RandomPage runs the two-step lookup: the first page reveals totalItems,
// the second page is fetched at a random start index derived from it.
// Either request failing fails the whole lookup; nothing is retried.
func (c *Client) RandomPage(ctx context.Context, subject string) (*VolumesResponse, error) {
	first, err := c.Volumes(ctx, subject, 0)
	if err != nil {
		return nil, err
	}

	offset := c.offsets.Offset(first.TotalItems, c.rng)
	slog.Debug("Selected random offset",
		"subject", subject,
		"total_items", first.TotalItems,
		"offset", offset,
		"strategy", string(c.offsets),
	)

	return c.Volumes(ctx, subject, offset)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
