// Package main is the lineup command: it aligns a range of lines in a file
// or on stdin and writes the result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dshills/lineup/internal/align"
	"github.com/dshills/lineup/internal/app"
	"github.com/dshills/lineup/internal/dispatcher"
	"github.com/dshills/lineup/internal/dispatcher/handler"
	alignh "github.com/dshills/lineup/internal/dispatcher/handlers/align"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	lines      string
	left       bool
	match      string
	biasLeft   bool
	list       bool
	script     string
	dryRun     bool
	write      bool
	watch      bool
	stats      bool
	logLevel   string
	version    bool
	file       string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "lineup %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if err := execute(ctx, opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("lineup", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.lines, "lines", "", "Line range A-B to align, 1-based (default all)")
	fs.BoolVar(&opts.left, "left", false, "Align left edges instead of matches")
	fs.StringVar(&opts.match, "match", align.Auto, "Rule to align on, or auto")
	fs.BoolVar(&opts.biasLeft, "bias-left", false, "With -left, align on the leftmost edge")
	fs.BoolVar(&opts.list, "list", false, "List configured rules and exit")
	fs.StringVar(&opts.script, "script", "", "Run a Lua script instead of a single alignment")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the padding plan without changing anything")
	fs.BoolVar(&opts.write, "w", false, "Write the result back to the file")
	fs.BoolVar(&opts.watch, "watch", false, "Run again whenever the config file changes, until interrupted")
	fs.BoolVar(&opts.stats, "stats", false, "Print per-action counts and timings to stderr on exit")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "lineup - align text on configurable patterns\n\n")
		fmt.Fprintf(stderr, "Usage: lineup [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  lineup -w main.go -lines 10-20     Align lines 10-20 in place\n")
		fmt.Fprintf(stderr, "  lineup -match colon < values.yaml  Align on colons\n")
		fmt.Fprintf(stderr, "  lineup -left -bias-left notes.txt  Strip indentation to the leftmost edge\n")
		fmt.Fprintf(stderr, "  lineup -watch -c rules.toml -dry-run main.go\n")
		fmt.Fprintf(stderr, "                                     Show plans while editing rules\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}

	if opts.write && opts.file == "" {
		return opts, errors.New("-w requires a file")
	}
	if opts.watch && (opts.write || opts.list) {
		return opts, errors.New("-watch cannot be combined with -w or -list")
	}
	if opts.logLevel != "" && !app.ValidLogLevel(opts.logLevel) {
		return opts, fmt.Errorf("invalid log level %q", opts.logLevel)
	}
	return opts, nil
}

func execute(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	logLevel := opts.logLevel
	if logLevel == "" {
		logLevel = os.Getenv("LINEUP_LOG_LEVEL")
	}

	reloads := make(chan struct{}, 1)
	application, err := app.New(app.Options{
		ConfigPath:  opts.configPath,
		WatchConfig: opts.watch,
		OnReload: func() {
			select {
			case reloads <- struct{}{}:
			default:
			}
		},
		Stats:  opts.stats,
		Logger: app.NewLogger(logLevel, stderr),
		Status: func(msg string) { fmt.Fprintln(stderr, msg) },
	})
	if err != nil {
		return err
	}
	defer application.Shutdown()
	if opts.stats {
		defer func() { printStats(stderr, application.Stats()) }()
	}

	if opts.list {
		for _, name := range application.Rules() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}
	if opts.watch && application.Config().Path() == "" {
		return errors.New("-watch requires a config file")
	}

	text, err := readInput(opts.file, stdin)
	if err != nil {
		return err
	}
	if err := alignText(opts, application, text, stdout); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reloads:
			if err := alignText(opts, application, text, stdout); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
		}
	}
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// alignText runs one alignment or script over text and writes the outcome.
func alignText(opts options, application *app.Application, text string, stdout io.Writer) error {
	if err := application.Open(strings.NewReader(text), opts.file); err != nil {
		return err
	}

	if opts.script != "" {
		if err := application.RunScript(opts.script); err != nil {
			return err
		}
		return output(opts, application, stdout)
	}

	first, last, err := parseLines(opts.lines, application.Document().LineCount())
	if err != nil {
		return err
	}

	var result handler.Result
	if opts.left {
		result, err = application.AlignLeft(first, last, opts.biasLeft, opts.dryRun)
	} else {
		result, err = application.AlignMatch(first, last, opts.match, opts.dryRun)
	}
	if err != nil {
		return err
	}

	if opts.dryRun {
		printPlans(stdout, result)
		return nil
	}
	return output(opts, application, stdout)
}

func output(opts options, application *app.Application, stdout io.Writer) error {
	text := application.Document().Export()
	if opts.write {
		info, err := os.Stat(opts.file)
		if err != nil {
			return err
		}
		return os.WriteFile(opts.file, []byte(text), info.Mode().Perm())
	}
	_, err := io.WriteString(stdout, text)
	return err
}

func printStats(w io.Writer, stats []dispatcher.ActionStats) {
	for _, s := range stats {
		fmt.Fprintf(w, "%s: %d dispatch (ok %d, no-op %d, error %d, cancelled %d), mean %s, max %s\n",
			s.Action, s.Count,
			s.ByStatus[handler.StatusOK], s.ByStatus[handler.StatusNoOp],
			s.ByStatus[handler.StatusError], s.ByStatus[handler.StatusCancelled],
			s.Mean(), s.Max)
	}
}

func printPlans(w io.Writer, result handler.Result) {
	v, _ := result.GetData(alignh.DataPlans)
	plans, _ := v.([]align.Plan)
	for _, p := range plans {
		rule := p.Rule
		if rule == "" {
			rule = "left"
		}
		fmt.Fprintf(w, "rule %s score %d\n", rule, p.Score)
		for _, pad := range p.Paddings {
			fmt.Fprintf(w, "  offset %d %+d\n", pad.Offset, pad.Length)
		}
	}
}

// parseLines parses a 1-based inclusive "A-B" range into 0-based lines.
// An empty argument selects every line.
func parseLines(arg string, count uint32) (uint32, uint32, error) {
	if arg == "" {
		return 0, count - 1, nil
	}

	a, b, ok := strings.Cut(arg, "-")
	if !ok {
		b = a
	}
	first, err := strconv.ParseUint(strings.TrimSpace(a), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q", arg)
	}
	last, err := strconv.ParseUint(strings.TrimSpace(b), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q", arg)
	}
	if first < 1 || last < first || last > uint64(count) {
		return 0, 0, fmt.Errorf("line range %q outside 1-%d", arg, count)
	}
	return uint32(first - 1), uint32(last - 1), nil
}
