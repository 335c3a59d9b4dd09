package report

import "strings"

// Kind separates real output from the "nothing here" and "no content"
// outcomes, which are shown but never saved.
type Kind int

const (
	KindOK Kind = iota
	KindEmpty
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindEmpty:
		return "empty"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// NoContentMessage is reported by every operation on a page that failed to load.
const NoContentMessage = "Failed to get HTML content."

// Layout controls how a section is laid out in markdown output.
type Layout int

const (
	// LayoutList renders each line as a bullet (URLs).
	LayoutList Layout = iota
	// LayoutBodies renders each line as its own code block (inline script or style bodies).
	LayoutBodies
	// LayoutLines renders all lines in one code block (search matches).
	LayoutLines
)

// Segment is a run of text, optionally marked as a search hit.
type Segment struct {
	Text      string
	Highlight bool
}

type Line struct {
	Segments []Segment
	Link     bool
}

// Plain returns the line text without any markers.
func (l Line) Plain() string {
	if len(l.Segments) == 1 {
		return l.Segments[0].Text
	}
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// TextLine wraps plain text.
func TextLine(s string) Line {
	return Line{Segments: []Segment{{Text: s}}}
}

// LinkLine wraps a URL.
func LinkLine(url string) Line {
	return Line{Segments: []Segment{{Text: url}}, Link: true}
}

type Section struct {
	Heading string
	Layout  Layout
	Lang    string // code block language for LayoutBodies and LayoutLines
	Lines   []Line
}

// Result is what every extractor and search returns: either sections, a
// raw text body, or an Empty/Error message.
type Result struct {
	Title    string
	Kind     Kind
	Message  string
	Sections []Section
	Raw      string
	RawLang  string
	HasRaw   bool
}

func OK(title string, sections ...Section) Result {
	return Result{Title: title, Kind: KindOK, Sections: sections}
}

// RawResult carries an unstructured body such as page text or markup.
// lang is used for markdown output; empty means plain paragraph text.
func RawResult(title, body, lang string) Result {
	return Result{Title: title, Kind: KindOK, Raw: body, RawLang: lang, HasRaw: true}
}

func Empty(title, message string) Result {
	return Result{Title: title, Kind: KindEmpty, Message: message}
}

// NoContent is the uniform result for a page without markup.
func NoContent(title string) Result {
	return Result{Title: title, Kind: KindError, Message: NoContentMessage}
}

// Savable reports whether the result may be persisted.
func (r Result) Savable() bool {
	return r.Kind == KindOK
}
