package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/byteowlz/pagesift/internal/page"
	"github.com/byteowlz/pagesift/internal/report"
	"github.com/byteowlz/pagesift/pkg/extractor"
)

const exitChoice = 9

type session struct {
	page    *page.Page
	in      *bufio.Reader
	out     io.Writer
	palette report.Palette
	saver   *report.Saver // nil when saving is disabled
	limit   int
	quiet   bool
}

// loop runs the interactive menu until the exit choice or end of input.
func (s *session) loop() {
	for {
		s.printMenu()

		choice, ok := prompt(s.in, s.out, s.palette, fmt.Sprintf("Your choice (1-%d): ", exitChoice))
		if !ok {
			s.goodbye()
			return
		}

		n, valid := parseChoice(choice)
		if !valid {
			fmt.Fprintln(s.out, s.palette.Error(fmt.Sprintf("Invalid choice. Please enter a number from 1 to %d.", exitChoice)))
			continue
		}
		if n == exitChoice {
			s.goodbye()
			return
		}

		action := extractor.Actions[n-1]
		var value string
		if action.NeedsTerm() {
			value, ok = prompt(s.in, s.out, s.palette, action.Prompt)
			if !ok {
				s.goodbye()
				return
			}
			if value == "" {
				fmt.Fprintln(s.out, s.palette.Error(action.EmptyTerm))
				continue
			}
		}

		r := action.Run(s.page, value)
		fmt.Fprintln(s.out, "\n"+report.Banner(r.Title, s.palette))
		fmt.Fprintln(s.out, report.Display(r, s.palette, s.limit))
		s.save(r)
	}
}

// runActions executes actions without the menu and prints full output.
func (s *session) runActions(actions []extractor.Action, term string) {
	for _, a := range actions {
		r := a.Run(s.page, term)
		if !s.quiet {
			fmt.Fprintln(s.out, report.Banner(r.Title, s.palette))
		}
		fmt.Fprintln(s.out, report.Render(r, s.palette))
		s.save(r)
	}
}

// save persists OK results when a save directory is set. A failed write is
// reported and the session continues.
func (s *session) save(r report.Result) {
	if s.saver == nil || !r.Savable() {
		return
	}
	path, err := s.saver.Save(s.page.DomainKey(), r)
	if err != nil {
		var persistErr *report.PersistError
		if errors.As(err, &persistErr) {
			fmt.Fprintln(s.out, s.palette.Error(persistErr.Error()))
			return
		}
		fmt.Fprintln(s.out, s.palette.Error(err.Error()))
		return
	}
	if !s.quiet {
		fmt.Fprintln(s.out, s.palette.Success("Result saved to file: ")+s.palette.Link(path))
	}
}

func (s *session) printMenu() {
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(s.out, "\n"+s.palette.Header(rule))
	fmt.Fprintln(s.out, s.palette.Header("Select a function to execute:"))
	for i, a := range extractor.Actions {
		fmt.Fprintf(s.out, "%s %s\n", s.palette.Header(strconv.Itoa(i+1)+":"), a.Label)
	}
	fmt.Fprintf(s.out, "%s %s\n", s.palette.Header(strconv.Itoa(exitChoice)+":"), "Exit")
	fmt.Fprintln(s.out, s.palette.Header(rule))
}

func (s *session) goodbye() {
	fmt.Fprintln(s.out, s.palette.Header("Thank you for using pagesift. Goodbye!"))
}

// parseChoice accepts exactly one digit from 1 to exitChoice; signs and
// leading zeros are rejected.
func parseChoice(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 || s[0] < '1' || s[0] > '0'+exitChoice {
		return 0, false
	}
	return int(s[0] - '0'), true
}

// prompt writes label and reads one line without its line ending. ok is
// false once input is exhausted.
func prompt(in *bufio.Reader, out io.Writer, palette report.Palette, label string) (string, bool) {
	fmt.Fprint(out, palette.Notice(label))
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}
