package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/net/html/charset"
)

type SimpleFetcher struct {
	client          *http.Client
	userAgentSelect *UserAgentSelector
	logger          *slog.Logger
}

func NewSimpleFetcher(opts FetchOptions, logger *slog.Logger) *SimpleFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}
	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &SimpleFetcher{
		client:          client,
		userAgentSelect: NewUserAgentSelector(),
		logger:          logger,
	}
}

// Fetch performs exactly one GET for url. There is no retry; any failure
// comes back as a *FetchError.
func (sf *SimpleFetcher) Fetch(ctx context.Context, url string, opts FetchOptions) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	userAgent := sf.userAgentSelect.GetUserAgent(opts.UserAgent)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	sf.logger.Debug("fetching page", "url", url, "user_agent", userAgent, "timeout", sf.client.Timeout)

	resp, err := sf.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("HTTP error: %s", resp.Status)}
	}

	contentType := resp.Header.Get("Content-Type")
	var reader io.Reader = resp.Body
	if decoded, err := charset.NewReader(resp.Body, contentType); err == nil {
		reader = decoded
	} else {
		sf.logger.Debug("charset detection failed, using raw body", "url", url, "error", err)
	}

	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}

	// Read one byte past the limit to tell a full body from a cut one
	body, err := io.ReadAll(io.LimitReader(reader, maxBody+1))
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	truncated := int64(len(body)) > maxBody
	if truncated {
		body = body[:maxBody]
		sf.logger.Warn("response body truncated", "url", url, "limit_bytes", maxBody)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	sf.logger.Debug("page fetched",
		"url", finalURL,
		"status", resp.StatusCode,
		"content_type", contentType,
		"bytes", len(body),
	)

	return &FetchResult{
		HTML:        string(body),
		URL:         finalURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Truncated:   truncated,
	}, nil
}
