// Package extractor is the library entry point: it loads one page with the
// configured fetcher and runs named actions against it.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/byteowlz/pagesift/internal/config"
	extract "github.com/byteowlz/pagesift/internal/extractor"
	"github.com/byteowlz/pagesift/internal/fetcher"
	"github.com/byteowlz/pagesift/internal/page"
	"github.com/byteowlz/pagesift/internal/report"
	"github.com/byteowlz/pagesift/internal/search"
)

// Action is one extraction or search. Actions that need a term carry the
// prompt and the message used when the term is empty.
type Action struct {
	Name      string
	Label     string
	Prompt    string
	EmptyTerm string
	Run       func(p *page.Page, term string) report.Result
}

func (a Action) NeedsTerm() bool { return a.Prompt != "" }

func pageOnly(fn func(*page.Page) report.Result) func(*page.Page, string) report.Result {
	return func(p *page.Page, _ string) report.Result { return fn(p) }
}

// Actions in menu order.
var Actions = []Action{
	{Name: "text", Label: "Get only TEXT", Run: pageOnly(extract.Text)},
	{Name: "html", Label: "Get FULL HTML", Run: pageOnly(extract.Markup)},
	{Name: "js", Label: "Get all JAVASCRIPT", Run: pageOnly(extract.Scripts)},
	{Name: "css", Label: "Get all CSS", Run: pageOnly(extract.Styles)},
	{Name: "media", Label: "Get all MEDIA LINKS", Run: pageOnly(extract.Media)},
	{Name: "links", Label: "Get all HYPERLINKS (<a> tag)", Run: pageOnly(extract.Hyperlinks)},
	{
		Name:      "search",
		Label:     "Search SITE DATA (HTML & JS)",
		Prompt:    "Enter search term: ",
		EmptyTerm: "Search term cannot be empty.",
		Run:       search.SiteData,
	},
	{
		Name:      "lines",
		Label:     "Search LINE CONTENT (Raw HTML)",
		Prompt:    "Enter word to search for in lines: ",
		EmptyTerm: "Search word cannot be empty.",
		Run:       search.Lines,
	},
}

// ActionNames lists the action names in menu order.
func ActionNames() []string {
	names := make([]string, 0, len(Actions))
	for _, a := range Actions {
		names = append(names, a.Name)
	}
	return names
}

// LookupAction finds an action by name, ignoring case and surrounding space.
func LookupAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// ParseActions resolves names in order. Search actions require a term.
func ParseActions(names []string, term string) ([]Action, error) {
	var actions []Action
	for _, name := range names {
		a, ok := LookupAction(name)
		if !ok {
			return nil, fmt.Errorf("unknown action %q (available: %s)", name, strings.Join(ActionNames(), ", "))
		}
		if a.NeedsTerm() && term == "" {
			return nil, fmt.Errorf("action %q requires a search term", a.Name)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

type Extractor struct {
	config  *config.Config
	fetcher *fetcher.SimpleFetcher
	opts    fetcher.FetchOptions
	logger  *slog.Logger
}

type ExtractOptions struct {
	Actions []string
	Term    string
}

type ExtractResult struct {
	URL            string
	DomainKey      string
	Overview       extract.Overview
	Results        []report.Result
	ProcessingTime time.Duration
}

func New(cfg *config.Config, logger *slog.Logger) *Extractor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts := fetcher.FetchOptions{
		Timeout:         time.Duration(cfg.Network.Timeout) * time.Second,
		UserAgent:       cfg.Network.UserAgent,
		FollowRedirects: cfg.Network.FollowRedirects,
		MaxBodySize:     int64(cfg.Network.MaxBodyMB) << 20,
	}
	if opts.Timeout <= 0 {
		opts.Timeout = fetcher.DefaultTimeout
	}
	return &Extractor{
		config:  cfg,
		fetcher: fetcher.NewSimpleFetcher(opts, logger),
		opts:    opts,
		logger:  logger,
	}
}

// Load fetches rawURL once, prepending https:// when no scheme is given.
// A response without a body is reported as an error.
func (e *Extractor) Load(ctx context.Context, rawURL string) (*page.Page, error) {
	sourceURL := page.NormalizeURL(rawURL)

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	fetched, err := e.fetcher.Fetch(ctx, sourceURL, e.opts)
	if err != nil {
		return nil, err
	}
	if fetched.Truncated {
		e.logger.Warn("page body truncated", "url", sourceURL, "max_body_mb", e.config.Network.MaxBodyMB)
	}

	p, err := page.New(sourceURL, fetched.HTML)
	if err != nil {
		return nil, err
	}
	if !p.Loaded() {
		return nil, fmt.Errorf("empty response body from %s", sourceURL)
	}
	e.logger.Debug("page loaded", "url", sourceURL, "bytes", len(fetched.HTML), "domain_key", p.DomainKey())
	return p, nil
}

// Extract loads the page and runs the requested actions in order.
func (e *Extractor) Extract(ctx context.Context, rawURL string, opts ExtractOptions) (*ExtractResult, error) {
	start := time.Now()

	actions, err := ParseActions(opts.Actions, opts.Term)
	if err != nil {
		return nil, err
	}

	p, err := e.Load(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	result := &ExtractResult{
		URL:       p.SourceURL(),
		DomainKey: p.DomainKey(),
		Overview:  extract.Summarize(p),
	}
	for _, a := range actions {
		result.Results = append(result.Results, a.Run(p, opts.Term))
	}
	result.ProcessingTime = time.Since(start)

	return result, nil
}
