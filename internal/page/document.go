package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a read-only view over parsed markup. None of its methods
// modify the underlying tree, so one Document can serve every extraction.
type Document struct {
	doc *goquery.Document
}

// Element is a single matched element.
type Element struct {
	sel *goquery.Selection
}

// Parse builds a Document from markup. Malformed input never fails: the
// HTML5 parser repairs what it can. Scripting is off so <noscript> content
// is parsed as elements rather than raw text.
func Parse(markup string) *Document {
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		// Only a reader error can get here, which strings.Reader never returns
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}
}

// FindAll returns every element with the given tag name in document order.
func (d *Document) FindAll(tag string) []Element {
	return collect(d.doc.Find(tag))
}

// FindAllWith returns elements carrying attr whose value satisfies pred.
// A nil pred only requires the attribute to be present.
func (d *Document) FindAllWith(tag, attr string, pred func(string) bool) []Element {
	var out []Element
	d.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		val, ok := s.Attr(attr)
		if !ok {
			return
		}
		if pred == nil || pred(val) {
			out = append(out, Element{sel: s})
		}
	})
	return out
}

func collect(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr returns the attribute value, or def when it is absent.
func (e Element) AttrOr(name, def string) string {
	return e.sel.AttrOr(name, def)
}

// Text returns the concatenated text content of the element.
func (e Element) Text() string {
	return e.sel.Text()
}

func nonEmpty(v string) bool { return v != "" }

// InlineScripts returns the bodies of script elements that have text and no
// src, in document order.
func (d *Document) InlineScripts() []string {
	var out []string
	for _, el := range d.FindAll("script") {
		if src := el.AttrOr("src", ""); src != "" {
			continue
		}
		if body := el.Text(); body != "" {
			out = append(out, body)
		}
	}
	return out
}

// ScriptSources returns script src values exactly as written.
func (d *Document) ScriptSources() []string {
	return attrValues(d.FindAllWith("script", "src", nonEmpty), "src")
}

// InlineStyles returns the bodies of non-empty style elements.
func (d *Document) InlineStyles() []string {
	var out []string
	for _, el := range d.FindAll("style") {
		if body := el.Text(); body != "" {
			out = append(out, body)
		}
	}
	return out
}

// StylesheetHrefs returns href values of link elements whose rel token list
// contains "stylesheet".
func (d *Document) StylesheetHrefs() []string {
	var out []string
	for _, el := range d.FindAllWith("link", "rel", hasToken("stylesheet")) {
		if href := el.AttrOr("href", ""); href != "" {
			out = append(out, href)
		}
	}
	return out
}

func hasToken(token string) func(string) bool {
	return func(v string) bool {
		for _, f := range strings.Fields(v) {
			if f == token {
				return true
			}
		}
		return false
	}
}

// ImageSources returns src of every img carrying the attribute.
func (d *Document) ImageSources() []string {
	return attrValues(d.FindAllWith("img", "src", nil), "src")
}

// VideoSources returns non-empty src values of video elements.
func (d *Document) VideoSources() []string {
	return attrValues(d.FindAllWith("video", "src", nonEmpty), "src")
}

// EmbeddedVideoSources returns iframe src values pointing at YouTube or Vimeo.
func (d *Document) EmbeddedVideoSources() []string {
	return attrValues(d.FindAllWith("iframe", "src", func(v string) bool {
		return strings.Contains(v, "youtube.com") || strings.Contains(v, "vimeo.com")
	}), "src")
}

func (d *Document) AudioSources() []string {
	return attrValues(d.FindAllWith("audio", "src", nil), "src")
}

// MediaSources returns src values of source elements (children of
// video, audio and picture).
func (d *Document) MediaSources() []string {
	return attrValues(d.FindAllWith("source", "src", nil), "src")
}

// AnchorHrefs returns href values of every a element carrying one.
func (d *Document) AnchorHrefs() []string {
	return attrValues(d.FindAllWith("a", "href", nil), "href")
}

func attrValues(els []Element, attr string) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		v, _ := el.Attr(attr)
		out = append(out, v)
	}
	return out
}

// Title returns the trimmed text of the first title element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Text returns the visible text of the document: every text node outside
// script and style, trimmed, with empty nodes dropped, joined by one space.
func (d *Document) Text() string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range d.doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
