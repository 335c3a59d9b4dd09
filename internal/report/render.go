package report

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// DefaultMaxDisplayLength is the console truncation threshold.
const DefaultMaxDisplayLength = 10000

const (
	bannerWidth = 40
	ruleWidth   = 30
)

// Palette decorates rendered text. Plain leaves everything untouched.
type Palette struct {
	Title     func(a ...interface{}) string
	Link      func(a ...interface{}) string
	Highlight func(a ...interface{}) string
	Error     func(a ...interface{}) string
	Notice    func(a ...interface{}) string
	Success   func(a ...interface{}) string
	Header    func(a ...interface{}) string
}

func Plain() Palette {
	return Palette{
		Title:     fmt.Sprint,
		Link:      fmt.Sprint,
		Highlight: fmt.Sprint,
		Error:     fmt.Sprint,
		Notice:    fmt.Sprint,
		Success:   fmt.Sprint,
		Header:    fmt.Sprint,
	}
}

// Color returns the console palette. fatih/color disables itself when
// stdout is not a terminal or color.NoColor is set.
func Color() Palette {
	return Palette{
		Title:     color.New(color.FgMagenta, color.Bold).SprintFunc(),
		Link:      color.New(color.FgBlue).SprintFunc(),
		Highlight: color.New(color.FgRed).SprintFunc(),
		Error:     color.New(color.FgRed).SprintFunc(),
		Notice:    color.New(color.FgYellow).SprintFunc(),
		Success:   color.New(color.FgGreen).SprintFunc(),
		Header:    color.New(color.FgCyan, color.Bold).SprintFunc(),
	}
}

// Render lays out a result as console text.
func Render(r Result, p Palette) string {
	if r.Kind != KindOK {
		return p.Error(r.Message)
	}
	if r.HasRaw {
		return r.Raw
	}

	var out []string
	for _, sec := range r.Sections {
		out = append(out, p.Title("--- "+sec.Heading+" ---"))
		for _, line := range sec.Lines {
			out = append(out, renderLine(line, p))
		}
		out = append(out, strings.Repeat("-", ruleWidth))
	}
	return strings.Join(out, "\n")
}

func renderLine(l Line, p Palette) string {
	if l.Link {
		return p.Link(l.Plain())
	}
	var b strings.Builder
	for _, s := range l.Segments {
		if s.Highlight {
			b.WriteString(p.Highlight(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Banner is the header printed above every result on the console.
func Banner(title string, p Palette) string {
	rule := strings.Repeat("#", bannerWidth)
	return p.Title(rule) + "\n" + p.Title("Result: "+title) + "\n" + p.Title(rule)
}

// Display renders r for the console, truncated to limit visible characters.
// Empty and error results are never truncated.
func Display(r Result, p Palette, limit int) string {
	rendered := Render(r, p)
	if r.Kind != KindOK {
		return rendered
	}
	cut, truncated := Truncate(rendered, limit)
	if !truncated {
		return rendered
	}
	return cut + "\n... (" + p.Notice(fmt.Sprintf("Truncated: showing first %d characters", limit)) + ")"
}

// Truncate keeps the first limit visible characters of s. ANSI escape
// sequences are copied through without being counted; a reset is appended
// when any were seen so a cut never leaves color switched on.
func Truncate(s string, limit int) (string, bool) {
	if limit <= 0 {
		limit = DefaultMaxDisplayLength
	}

	var b strings.Builder
	visible := 0
	sawEscape := false
	for i := 0; i < len(s); {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			if j < len(s) {
				j++
			}
			b.WriteString(s[i:j])
			sawEscape = true
			i = j
			continue
		}

		if visible == limit {
			if sawEscape {
				b.WriteString("\x1b[0m")
			}
			return b.String(), true
		}

		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		visible++
		i += size
	}
	return s, false
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color escape sequences.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
