package report

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ErrNothingToSave is returned for empty and error results.
var ErrNothingToSave = errors.New("nothing to save: content is empty or an error message")

// PersistError reports a failed write. The session carries on after it.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("error writing file %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Saver writes results into Dir, one file per result.
type Saver struct {
	Dir    string
	Format Format
	logger *slog.Logger
}

func NewSaver(dir string, format Format, logger *slog.Logger) *Saver {
	if format == "" {
		format = FormatText
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Saver{Dir: dir, Format: format, logger: logger}
}

// FileName builds parser-<domainKey>-<title>.<ext>.
func FileName(domainKey, title string, format Format) string {
	ext := ".txt"
	if format == FormatMarkdown {
		ext = ".md"
	}
	return "parser-" + domainKey + "-" + sanitizeTitle(title) + ext
}

func sanitizeTitle(title string) string {
	title = strings.ReplaceAll(strings.ToLower(title), " ", "_")
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			return r
		}
		return -1
	}, title)
}

// Save writes the complete, untruncated result and returns the file path.
func (s *Saver) Save(domainKey string, r Result) (string, error) {
	if !r.Savable() {
		return "", ErrNothingToSave
	}

	content, err := s.encode(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	path := filepath.Join(s.Dir, FileName(domainKey, r.Title, s.Format))
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", &PersistError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", &PersistError{Path: path, Err: err}
	}

	s.logger.Debug("result saved", "path", path, "title", r.Title, "bytes", len(content))
	return path, nil
}

func (s *Saver) encode(r Result) (string, error) {
	if s.Format == FormatMarkdown {
		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, r); err != nil {
			return "", err
		}
		return StripANSI(buf.String()), nil
	}
	return StripANSI(Render(r, Plain())), nil
}
