package fetcher

import (
	"fmt"
	"time"
)

// ToolUserAgent identifies pagesift when no other user agent is configured.
const ToolUserAgent = "pagesift/1.0 (Go)"

const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 10 << 20
)

type FetchOptions struct {
	Timeout         time.Duration
	UserAgent       string // empty, a browser preset (auto|chrome|firefox|safari|edge) or a literal value
	FollowRedirects bool
	MaxBodySize     int64
}

// DefaultOptions mirrors the single-shot contract: 10 second timeout,
// tool user agent, redirects followed.
func DefaultOptions() FetchOptions {
	return FetchOptions{
		Timeout:         DefaultTimeout,
		FollowRedirects: true,
		MaxBodySize:     DefaultMaxBodySize,
	}
}

type FetchResult struct {
	HTML        string
	URL         string // final URL after redirects
	StatusCode  int
	ContentType string
	Truncated   bool // body was larger than MaxBodySize
}

// FetchError is returned for every failed fetch: transport errors,
// timeouts, HTTP status >= 400 and body read failures.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
