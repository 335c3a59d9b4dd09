// Package extractor turns a fetched page into report results. Every
// extractor is a pure function of the page and shares no state.
package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/byteowlz/pagesift/internal/page"
	"github.com/byteowlz/pagesift/internal/report"
)

// Result titles, also used for saved file names.
const (
	TitleText       = "TEXT"
	TitleMarkup     = "HTML"
	TitleScripts    = "JAVASCRIPT"
	TitleStyles     = "CSS"
	TitleMedia      = "MEDIA"
	TitleHyperlinks = "HYPERLINKS"
)

// Text returns the visible text of the page with script and style removed.
func Text(p *page.Page) report.Result {
	if !p.Loaded() {
		return report.NoContent(TitleText)
	}
	text := p.Document().Text()
	if text == "" {
		return report.Empty(TitleText, "No text content found on the page.")
	}
	return report.RawResult(TitleText, text, "")
}

// Markup returns the raw markup exactly as fetched.
func Markup(p *page.Page) report.Result {
	if !p.Loaded() {
		return report.NoContent(TitleMarkup)
	}
	return report.RawResult(TitleMarkup, p.Markup(), "html")
}

// Scripts lists inline script bodies, then external script URLs as written.
func Scripts(p *page.Page) report.Result {
	if !p.Loaded() {
		return report.NoContent(TitleScripts)
	}
	doc := p.Document()

	var sections []report.Section
	if inline := doc.InlineScripts(); len(inline) > 0 {
		sections = append(sections, bodySection("Internal JavaScript (JS)", "javascript", inline))
	}
	if external := doc.ScriptSources(); len(external) > 0 {
		sections = append(sections, linkSection("External Script URLs", external))
	}

	if len(sections) == 0 {
		return report.Empty(TitleScripts, "No embedded or external JavaScript found on the page.")
	}
	return report.OK(TitleScripts, sections...)
}

// Styles lists inline style bodies, then external stylesheet URLs as written.
func Styles(p *page.Page) report.Result {
	if !p.Loaded() {
		return report.NoContent(TitleStyles)
	}
	doc := p.Document()

	var sections []report.Section
	if inline := doc.InlineStyles(); len(inline) > 0 {
		sections = append(sections, bodySection("Internal CSS (<style>)", "css", inline))
	}
	if external := doc.StylesheetHrefs(); len(external) > 0 {
		sections = append(sections, linkSection(`External Stylesheet URLs (<link rel="stylesheet">)`, external))
	}

	if len(sections) == 0 {
		return report.Empty(TitleStyles, "No embedded or external CSS found on the page.")
	}
	return report.OK(TitleStyles, sections...)
}

// Hyperlinks lists every distinct absolute a[href] target in sorted order.
// Empty hrefs and pure fragment links are skipped.
func Hyperlinks(p *page.Page) report.Result {
	if !p.Loaded() {
		return report.NoContent(TitleHyperlinks)
	}

	seen := make(map[string]bool)
	var links []string
	for _, href := range p.Document().AnchorHrefs() {
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		abs := p.Resolve(href)
		if !seen[abs] {
			seen[abs] = true
			links = append(links, abs)
		}
	}

	if len(links) == 0 {
		return report.Empty(TitleHyperlinks, "No links (<a> tag) found on the page.")
	}
	sort.Strings(links)

	return report.OK(TitleHyperlinks,
		linkSection(fmt.Sprintf("ALL HYPERLINKS (%d found)", len(links)), links),
	)
}

func bodySection(heading, lang string, bodies []string) report.Section {
	lines := make([]report.Line, 0, len(bodies))
	for _, b := range bodies {
		lines = append(lines, report.TextLine(b))
	}
	return report.Section{Heading: heading, Layout: report.LayoutBodies, Lang: lang, Lines: lines}
}

func linkSection(heading string, urls []string) report.Section {
	lines := make([]report.Line, 0, len(urls))
	for _, u := range urls {
		lines = append(lines, report.LinkLine(u))
	}
	return report.Section{Heading: heading, Layout: report.LayoutList, Lines: lines}
}
