// Two interchangeable page-retrieval strategies: a plain HTTP GET for
// server-rendered sites and a throwaway headless browser for script-rendered
// ones. Failures come back as *Error so callers can branch on the reason
// instead of parsing messages.

package fetch

import (
	"context"
	"strconv"
)

type Kind int

const (
	KindStatic Kind = iota
	KindRendered
)

func (k Kind) String() string {
	if k == KindRendered {
		return "rendered"
	}
	return "static"
}

type Reason string

const (
	ReasonNetwork Reason = "network"
	ReasonStatus  Reason = "status"
	ReasonBrowser Reason = "browser"
)

// Error is the typed failure both strategies return. Status is only set for
// ReasonStatus.
type Error struct {
	URL    string
	Reason Reason
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Reason == ReasonStatus {
		return "fetch " + e.URL + ": unexpected status " + strconv.Itoa(e.Status)
	}
	return "fetch " + e.URL + " (" + string(e.Reason) + "): " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Strategy retrieves the markup behind a URL. Implementations never panic:
// any failure is a nil-markup *Error return.
type Strategy interface {
	Fetch(ctx context.Context, url string) (string, error)
}
