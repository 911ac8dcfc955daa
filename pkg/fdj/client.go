package fdj

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

// Client downloads the draw history CSV exports published by FDJ
type Client struct {
	LotoURL         string
	EuroMillionsURL string
	client          *http.Client
}

// FetchError describes a failed download. It matches models.ErrFetchFailure with errors.Is.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{models.ErrFetchFailure}
	}
	return []error{models.ErrFetchFailure, e.Err}
}

// NewClient creates a new FDJ client
func NewClient(lotoURL, euroMillionsURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		LotoURL:         lotoURL,
		EuroMillionsURL: euroMillionsURL,
		client:          &http.Client{Timeout: timeout},
	}
}

// URL returns the export location of the game
func (c *Client) URL(game models.Game) (string, error) {
	switch game {
	case models.GameLoto:
		return c.LotoURL, nil
	case models.GameEuroMillions:
		return c.EuroMillionsURL, nil
	default:
		return "", fmt.Errorf("%w: %q", models.ErrUnknownGame, game)
	}
}

// Fetch downloads the CSV export of the game. The caller closes the body.
func (c *Client) Fetch(ctx context.Context, game models.Game) (io.ReadCloser, error) {
	url, err := c.URL(game)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
