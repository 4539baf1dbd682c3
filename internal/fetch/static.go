package fetch

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"
)

const bodyLogLimit = 256

// Static fetches server-rendered pages with a plain GET. A short polite delay
// runs before every request to keep the target sites from rate-limiting us.
type Static struct {
	Client    *http.Client
	UserAgent string
	Delay     time.Duration
}

func NewStatic(userAgent string, timeout, delay time.Duration) *Static {
	return &Static{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Delay:     delay,
	}
}

func (s *Static) Fetch(ctx context.Context, url string) (string, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return "", &Error{URL: url, Reason: ReasonNetwork, Err: ctx.Err()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonNetwork, Err: err}
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept-Language", "es-CO,es;q=0.9,en;q=0.8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: url, Reason: ReasonNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := body
		if len(snippet) > bodyLogLimit {
			snippet = snippet[:bodyLogLimit]
		}
		log.Printf("⚠️ Static fetch %s returned %d: %s", url, resp.StatusCode, snippet)
		return "", &Error{URL: url, Reason: ReasonStatus, Status: resp.StatusCode}
	}

	return string(body), nil
}
