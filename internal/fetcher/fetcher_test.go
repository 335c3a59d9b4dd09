package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch_Success(t *testing.T) {
	var capturedUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		capturedUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><p>Hello</p></body></html>"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	f := NewSimpleFetcher(opts, nil)
	result, err := f.Fetch(context.Background(), server.URL, opts)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if capturedUA != ToolUserAgent {
		t.Errorf("expected user agent %q, got %q", ToolUserAgent, capturedUA)
	}
	if !strings.Contains(result.HTML, "<p>Hello</p>") {
		t.Errorf("unexpected body: %q", result.HTML)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", result.StatusCode)
	}
	if result.Truncated {
		t.Error("body should not be truncated")
	}
}

func TestFetch_CustomUserAgent(t *testing.T) {
	var capturedUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.UserAgent = "MyBot/2.0"
	f := NewSimpleFetcher(opts, nil)
	if _, err := f.Fetch(context.Background(), server.URL, opts); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if capturedUA != "MyBot/2.0" {
		t.Errorf("expected custom user agent, got %q", capturedUA)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	opts := DefaultOptions()
	f := NewSimpleFetcher(opts, nil)
	_, err := f.Fetch(context.Background(), server.URL, opts)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", fetchErr.StatusCode)
	}
	if fetchErr.URL != server.URL {
		t.Errorf("expected URL %q, got %q", server.URL, fetchErr.URL)
	}
}

func TestFetch_Timeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()
	defer close(done)

	opts := DefaultOptions()
	opts.Timeout = 50 * time.Millisecond
	f := NewSimpleFetcher(opts, nil)
	_, err := f.Fetch(context.Background(), server.URL, opts)
	if err == nil {
		t.Fatal("expected timeout error")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("expected no status code on timeout, got %d", fetchErr.StatusCode)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	opts := DefaultOptions()
	f := NewSimpleFetcher(opts, nil)
	_, err := f.Fetch(context.Background(), url, opts)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	opts := DefaultOptions()
	f := NewSimpleFetcher(opts, nil)
	_, err := f.Fetch(context.Background(), "http://[::1", opts)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}

func TestFetch_NoFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/end", http.StatusFound)
			return
		}
		w.Write([]byte("final page"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	f := NewSimpleFetcher(opts, nil)
	result, err := f.Fetch(context.Background(), server.URL+"/start", opts)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.HTML != "final page" {
		t.Errorf("expected redirect to be followed, got %q", result.HTML)
	}
	if !strings.HasSuffix(result.URL, "/end") {
		t.Errorf("expected final URL to end with /end, got %q", result.URL)
	}

	opts.FollowRedirects = false
	f = NewSimpleFetcher(opts, nil)
	result, err = f.Fetch(context.Background(), server.URL+"/start", opts)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.StatusCode != http.StatusFound {
		t.Errorf("expected 302 without following, got %d", result.StatusCode)
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxBodySize = 10
	f := NewSimpleFetcher(opts, nil)
	result, err := f.Fetch(context.Background(), server.URL, opts)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(result.HTML) != 10 {
		t.Errorf("expected 10 bytes, got %d", len(result.HTML))
	}
	if !result.Truncated {
		t.Error("expected Truncated to be set")
	}
}

func TestFetch_DecodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" in Latin-1
		w.Write([]byte{'c', 'a', 'f', 0xe9})
	}))
	defer server.Close()

	opts := DefaultOptions()
	f := NewSimpleFetcher(opts, nil)
	result, err := f.Fetch(context.Background(), server.URL, opts)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.HTML != "café" {
		t.Errorf("expected decoded 'café', got %q", result.HTML)
	}
}

func TestFetchError_Message(t *testing.T) {
	err := &FetchError{URL: "https://example.com", StatusCode: 500, Err: errors.New("HTTP error: 500 Internal Server Error")}
	if !strings.Contains(err.Error(), "https://example.com") || !strings.Contains(err.Error(), "500") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	err = &FetchError{URL: "https://example.com", Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected FetchError to unwrap to its cause")
	}
}
