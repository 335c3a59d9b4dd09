// Package search finds lines of a page that contain a term, ignoring case,
// and splits each hit into highlighted and plain segments.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/byteowlz/pagesift/internal/page"
	"github.com/byteowlz/pagesift/internal/report"
)

const titleRunes = 10

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SiteData searches the raw markup and the inline script bodies.
func SiteData(p *page.Page, term string) report.Result {
	title := "SEARCH-" + prefix(term, titleRunes)
	if !p.Loaded() {
		return report.NoContent(title)
	}

	var sections []report.Section
	if hits := matchLines(p.Markup(), term); len(hits) > 0 {
		sections = append(sections, matchSection(fmt.Sprintf("Matches in HTML (%d lines found)", len(hits)), "html", term, hits))
	}
	scripts := strings.Join(p.Document().InlineScripts(), "\n")
	if hits := matchLines(scripts, term); len(hits) > 0 {
		sections = append(sections, matchSection(fmt.Sprintf("Matches in JavaScript (%d lines found)", len(hits)), "javascript", term, hits))
	}

	if len(sections) == 0 {
		return report.Empty(title, fmt.Sprintf("Search term '%s' not found in HTML or JavaScript content.", term))
	}
	return report.OK(title, sections...)
}

// Lines lists every raw markup line containing word.
func Lines(p *page.Page, word string) report.Result {
	title := "LINE-" + prefix(word, titleRunes)
	if !p.Loaded() {
		return report.NoContent(title)
	}

	hits := matchLines(p.Markup(), word)
	if len(hits) == 0 {
		return report.Empty(title, fmt.Sprintf("Word '%s' not found in any line of the raw HTML content.", word))
	}
	return report.OK(title,
		matchSection(fmt.Sprintf("LINES CONTAINING '%s' (%d found)", word, len(hits)), "html", word, hits),
	)
}

// Highlight splits line around every case-insensitive occurrence of term.
// Matched text keeps the casing it has in line.
func Highlight(line, term string) []report.Segment {
	if term == "" {
		return []report.Segment{{Text: line}}
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))

	var segs []report.Segment
	last := 0
	for _, loc := range re.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			segs = append(segs, report.Segment{Text: line[last:loc[0]]})
		}
		segs = append(segs, report.Segment{Text: line[loc[0]:loc[1]], Highlight: true})
		last = loc[1]
	}
	if last < len(line) || len(segs) == 0 {
		segs = append(segs, report.Segment{Text: line[last:]})
	}
	return segs
}

// matchLines returns the trimmed lines of content that contain term.
func matchLines(content, term string) []string {
	if content == "" || term == "" {
		return nil
	}
	needle := strings.ToLower(term)

	var out []string
	for _, line := range strings.Split(lineBreaks.Replace(content), "\n") {
		if strings.Contains(strings.ToLower(line), needle) {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

func matchSection(heading, lang, term string, hits []string) report.Section {
	lines := make([]report.Line, 0, len(hits))
	for _, h := range hits {
		lines = append(lines, report.Line{Segments: Highlight(h, term)})
	}
	return report.Section{Heading: heading, Layout: report.LayoutLines, Lang: lang, Lines: lines}
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
