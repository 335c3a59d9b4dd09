package extractor

import (
	"fmt"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/byteowlz/pagesift/internal/page"
)

// Overview is article metadata shown once after the page loads.
type Overview struct {
	Title    string
	Byline   string
	SiteName string
	Excerpt  string
	Length   int // characters of readable article text
}

// Summarize runs readability over the page. When readability cannot find an
// article the title falls back to the <title> element and the rest stays empty.
func Summarize(p *page.Page) Overview {
	if !p.Loaded() {
		return Overview{}
	}

	var ov Overview
	article, err := readability.FromReader(strings.NewReader(p.Markup()), p.BaseURL())
	if err == nil {
		ov = Overview{
			Title:    strings.TrimSpace(article.Title),
			Byline:   strings.TrimSpace(article.Byline),
			SiteName: strings.TrimSpace(article.SiteName),
			Excerpt:  strings.TrimSpace(article.Excerpt),
			Length:   article.Length,
		}
	}
	if ov.Title == "" {
		ov.Title = p.Document().Title()
	}
	return ov
}

// Lines formats the non-empty fields as "Label: value" lines.
func (o Overview) Lines() []string {
	var out []string
	add := func(label, value string) {
		if value != "" {
			out = append(out, label+": "+value)
		}
	}
	add("Title", o.Title)
	add("Site", o.SiteName)
	add("Author", o.Byline)
	add("Excerpt", o.Excerpt)
	if o.Length > 0 {
		add("Length", fmt.Sprintf("%d characters", o.Length))
	}
	return out
}
