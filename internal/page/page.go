package page

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"unicode"
)

// Page is the single fetched page a session works on. It is immutable
// once built; the parsed Document is derived on first use and cached.
type Page struct {
	sourceURL string
	base      *url.URL
	markup    string
	loaded    bool
	loadErr   error
	domainKey string

	once sync.Once
	doc  *Document
}

// New returns a loaded page for markup fetched from sourceURL.
func New(sourceURL, markup string) (*Page, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL %q: %w", sourceURL, err)
	}
	return &Page{
		sourceURL: sourceURL,
		base:      base,
		markup:    markup,
		loaded:    markup != "",
		domainKey: domainKey(base),
	}, nil
}

// Failed returns a page whose fetch failed. Every extractor reports
// "no content" for it.
func Failed(sourceURL string, cause error) *Page {
	base, _ := url.Parse(sourceURL)
	p := &Page{sourceURL: sourceURL, base: base, loadErr: cause}
	if base != nil {
		p.domainKey = domainKey(base)
	}
	return p
}

// NormalizeURL trims input and prepends https:// when no http(s) scheme is
// present.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func (p *Page) SourceURL() string { return p.sourceURL }

// Loaded reports whether markup is available.
func (p *Page) Loaded() bool { return p.loaded }

// Err returns the fetch failure for a page built with Failed.
func (p *Page) Err() error { return p.loadErr }

func (p *Page) Markup() string { return p.markup }

// DomainKey is the sanitized host used to name saved files.
func (p *Page) DomainKey() string { return p.domainKey }

// BaseURL returns a copy of the parsed source URL.
func (p *Page) BaseURL() *url.URL {
	if p.base == nil {
		return nil
	}
	u := *p.base
	return &u
}

// Document returns the parsed markup. It is nil for pages that failed to load.
func (p *Page) Document() *Document {
	if !p.loaded {
		return nil
	}
	p.once.Do(func() {
		p.doc = Parse(p.markup)
	})
	return p.doc
}

// Resolve makes ref absolute against the page URL. A stray % that does not
// start an escape is encoded as %25 so that refs like "/100%.png" still
// resolve; anything else url.Parse rejects is resolved as a plain path.
func (p *Page) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if p.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		u, err = url.Parse(escapeStrayPercent(ref))
	}
	if err != nil {
		// Still unparseable: treat the whole ref as a path and let String escape it
		u = &url.URL{Path: ref}
	}
	return p.base.ResolveReference(u).String()
}

func escapeStrayPercent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func domainKey(u *url.URL) string {
	host := strings.ReplaceAll(u.Host, "www.", "")
	host = strings.ReplaceAll(host, ".", "_")
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			return r
		}
		return -1
	}, host)
}
