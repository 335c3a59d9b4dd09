package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/byteowlz/pagesift/internal/config"
	extract "github.com/byteowlz/pagesift/internal/extractor"
	"github.com/byteowlz/pagesift/internal/page"
	"github.com/byteowlz/pagesift/internal/report"
	"github.com/byteowlz/pagesift/pkg/extractor"
)

// Exit codes for granular error handling
const (
	ExitSuccess      = 0
	ExitNetworkError = 1
	ExitInvalidInput = 3
	ExitConfigError  = 4
)

var (
	cfgFile      string
	saveDir      string
	outputFormat string
	timeout      int
	userAgent    string
	noColor      bool
	actionNames  []string
	term         string
	verbose      bool
	quiet        bool
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "pagesift [url]",
	Short: "Pull text, code, media and links out of a single web page",
	Long: `pagesift fetches one web page and lets you pick what to extract from it:
visible text, raw HTML, scripts, stylesheets, media, hyperlinks, or lines
matching a search term. Every result can be saved to a directory.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitErr
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitInvalidInput)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/pagesift/config.toml)")

	// Output flags
	rootCmd.Flags().StringVarP(&saveDir, "save-dir", "o", "", "directory for saved results (prompted for when unset)")
	rootCmd.Flags().StringVar(&outputFormat, "format", "text", "saved file format (text|markdown)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Network flags
	rootCmd.Flags().IntVar(&timeout, "timeout", 10, "request timeout in seconds")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "user agent: a literal string or auto|chrome|firefox|safari|edge")

	// Scripted mode
	rootCmd.Flags().StringArrayVarP(&actionNames, "action", "a", nil, "run an action instead of the menu, repeatable ("+strings.Join(extractor.ActionNames(), "|")+")")
	rootCmd.Flags().StringVarP(&term, "term", "t", "", "search term for the search and lines actions")

	// System flags
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all non-content output")
}

// initConfig writes an example config on first run. An explicit --config
// file is never created.
func initConfig() {
	if cfgFile != "" {
		return
	}
	path := config.DefaultPath()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return
	}
	if err := config.Default().CreateExampleConfig(path); err != nil {
		if verbose && !quiet {
			fmt.Fprintf(os.Stderr, "Error creating config file: %v\n", err)
		}
		return
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "Created config file: %s\n", path)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return exitError(ExitConfigError, "failed to load config: %v", err)
	}

	// Explicit flags win over config
	if cmd.Flags().Changed("timeout") {
		cfg.Network.Timeout = timeout
	}
	if cmd.Flags().Changed("user-agent") {
		cfg.Network.UserAgent = userAgent
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if cmd.Flags().Changed("save-dir") {
		cfg.Output.SaveDir = saveDir
	}
	if noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return exitError(ExitConfigError, "invalid config: %v", err)
	}

	logger := newLogger(cfg.Logging.Level)
	color.NoColor = color.NoColor || !cfg.Output.Color
	palette := report.Color()

	actions, err := extractor.ParseActions(actionNames, term)
	if err != nil {
		return exitError(ExitInvalidInput, "%v", err)
	}
	scripted := len(actions) > 0

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if !quiet && !scripted {
		fmt.Fprintln(out, palette.Header("Starting pagesift"))
	}

	rawURL := ""
	if len(args) > 0 {
		rawURL = args[0]
	} else {
		rawURL, _ = prompt(in, out, palette, "Enter the URL to parse (e.g., https://example.com): ")
	}
	if strings.TrimSpace(rawURL) == "" {
		return exitError(ExitInvalidInput, "no URL provided")
	}
	sourceURL := page.NormalizeURL(rawURL)

	dir := cfg.Output.SaveDir
	if dir == "" && !cmd.Flags().Changed("save-dir") && !scripted {
		dir, _ = prompt(in, out, palette, "Enter the path to the save directory (leave blank to skip saving): ")
		dir = strings.TrimSpace(dir)
	}

	if !quiet {
		fmt.Fprintln(out, palette.Notice("Loading page: "+sourceURL+"..."))
	}
	p, err := extractor.New(cfg, logger).Load(cmd.Context(), sourceURL)
	if err != nil {
		fmt.Fprintln(out, palette.Error("Error loading page: "+err.Error()))
		fmt.Fprintln(out, "\n"+palette.Error("Parser terminating due to load error."))
		return &exitErr{code: ExitNetworkError}
	}
	if !quiet {
		fmt.Fprintln(out, palette.Success("Page successfully loaded."))
	}

	s := &session{
		page:    p,
		in:      in,
		out:     out,
		palette: palette,
		limit:   cfg.Output.MaxDisplayLength,
		quiet:   quiet,
	}
	if dir != "" {
		s.saver = report.NewSaver(dir, report.Format(cfg.Output.Format), logger)
	}

	if scripted {
		s.runActions(actions, term)
		return nil
	}

	if !quiet {
		for _, line := range extract.Summarize(p).Lines() {
			fmt.Fprintln(out, line)
		}
	}
	s.loop()
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	if quiet {
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string {
	return e.msg
}

func exitError(code int, format string, args ...interface{}) *exitErr {
	msg := fmt.Sprintf(format, args...)
	if msg != "" && !quiet {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
	return &exitErr{code: code, msg: msg}
}
