package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
)

// WriteMarkdown writes r as a markdown document. Search hits lose their
// highlight since they sit inside code blocks.
func WriteMarkdown(w io.Writer, r Result) error {
	md := markdown.NewMarkdown(w)
	md.H1(r.Title)
	md.PlainText("")

	if r.Kind != KindOK {
		md.PlainText(r.Message)
		return md.Build()
	}

	if r.HasRaw {
		if r.RawLang != "" {
			md.CodeBlocks(markdown.SyntaxHighlight(r.RawLang), r.Raw)
		} else {
			md.PlainText(r.Raw)
		}
		return md.Build()
	}

	for _, sec := range r.Sections {
		md.H2(sec.Heading)
		md.PlainText("")

		switch sec.Layout {
		case LayoutBodies:
			for _, line := range sec.Lines {
				md.CodeBlocks(markdown.SyntaxHighlight(sec.Lang), line.Plain())
				md.PlainText("")
			}
		case LayoutLines:
			lines := make([]string, 0, len(sec.Lines))
			for _, line := range sec.Lines {
				lines = append(lines, line.Plain())
			}
			md.CodeBlocks(markdown.SyntaxHighlight(sec.Lang), strings.Join(lines, "\n"))
			md.PlainText("")
		default:
			items := make([]string, 0, len(sec.Lines))
			for _, line := range sec.Lines {
				items = append(items, line.Plain())
			}
			md.BulletList(items...)
			md.PlainText("")
		}
	}

	return md.Build()
}
