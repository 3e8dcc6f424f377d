package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TimelordUK/emrlog/internal/config"
	"github.com/TimelordUK/emrlog/internal/errlog"
	"github.com/TimelordUK/emrlog/internal/fault"
	"github.com/TimelordUK/emrlog/internal/report"
	"github.com/TimelordUK/emrlog/internal/sample"
	"github.com/TimelordUK/emrlog/internal/source"
	"github.com/TimelordUK/emrlog/internal/ui"
	"github.com/TimelordUK/emrlog/pkg/logformat"
)

// Options configure a run
type Options struct {
	Config *config.Config
	Logger *log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// UserPath is read instead of asking when set
	UserPath string
	// NoPrompt skips the interactive step when UserPath is empty
	NoPrompt bool
	// Terminal selects the Bubble Tea prompt over plain line input
	Terminal bool

	// Now is the clock; nil means time.Now
	Now func() time.Time
}

// App runs the demonstration steps
type App struct {
	opts     Options
	cfg      *config.Config
	logger   *log.Logger
	now      func() time.Time
	reporter *report.Reporter
	errLog   *errlog.Logger
	sample   *sample.Writer

	stream     *source.StreamReader
	mapped     *source.MappedReader
	classified *source.ClassifiedReader
}

// New wires the components for a run
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	doc, err := sample.Default()
	if err != nil {
		return nil, fmt.Errorf("load sample: %w", err)
	}

	cfg := opts.Config
	reporter := report.New(opts.Stdout, opts.Stderr, cfg)
	errLog := errlog.New(cfg.Files.ErrorLog,
		errlog.WithClock(opts.Now),
		errlog.WithLogger(opts.Logger),
		errlog.OnError(reporter.LogWriteFailed),
	)

	return &App{
		opts:       opts,
		cfg:        cfg,
		logger:     opts.Logger,
		now:        opts.Now,
		reporter:   reporter,
		errLog:     errLog,
		sample:     sample.NewWriter(doc, opts.Now),
		stream:     source.NewStreamReader(),
		mapped:     source.NewMappedReader(),
		classified: source.NewClassifiedReader(logformat.NewClassifier(&cfg.Markers)),
	}, nil
}

// Run executes every step. Read failures are reported and logged, never
// returned.
func Run(ctx context.Context, opts Options) error {
	a, err := New(opts)
	if err != nil {
		return err
	}
	a.Run(ctx)
	return nil
}

// Run executes every step in order
func (a *App) Run(ctx context.Context) {
	a.reporter.SystemHeader(a.now())

	src := a.createSample()
	a.ReadLines(src)

	a.demonstrateNotFound()

	a.interactive(ctx)
}

// createSample writes the sample file. A failure is reported but the source
// is still returned so the read that follows can show how it fails.
func (a *App) createSample() source.LogSource {
	src, err := a.sample.Create(a.cfg.Files.Sample)
	if err != nil {
		a.logger.Warn("sample not written", "path", a.cfg.Files.Sample, "err", err)
		a.reporter.SampleFailed(err)
		return src
	}
	a.logger.Debug("sample written", "path", src.Path)
	a.reporter.SampleCreated(src.Path)
	return src
}

// ReadLines reads src line by line and prints it with line numbers
func (a *App) ReadLines(src source.LogSource) (*source.Result, error) {
	a.reporter.Banner("📋 READING MEDICAL LOG FILE: " + src.Name())
	a.reporter.Info("🔍 Reading file line by line...\n")

	res, err := a.read(a.stream, src)
	if err == nil {
		a.reporter.Lines(res, a.reporter.RendererFor(src.Path))
	}
	a.reporter.Info("")
	return res, err
}

// ReadClassified reads src tagging patient, date/time and diagnosis lines
func (a *App) ReadClassified(src source.LogSource) (*source.Result, error) {
	a.reporter.Info("📖 Alternative reading method with record classification...\n")

	res, err := a.read(a.classified, src)
	if err == nil {
		a.reporter.Classified(res)
	}
	a.reporter.Info("")
	return res, err
}

// ReadWhole reads src in one go and prints it with file statistics
func (a *App) ReadWhole(src source.LogSource) (*source.Result, error) {
	a.reporter.Info("📂 Reading complete file at once...\n")

	res, err := a.read(a.mapped, src)
	if err == nil {
		a.reporter.WholeFile(res, a.reporter.RendererFor(src.Path))
	}
	a.reporter.Info("")
	return res, err
}

// read runs one attempt. A failure is reported and recorded in the error log
// before it is returned.
func (a *App) read(r source.Reader, src source.LogSource) (*source.Result, error) {
	a.logger.Debug("reading", "strategy", r.Name(), "path", src.Path)

	res, err := r.Read(src)
	if err == nil {
		a.logger.Debug("read done", "strategy", r.Name(), "path", src.Path, "lines", res.LineCount())
		return res, nil
	}

	ferr := fault.Classify(src.Path, fault.PhaseOpen, err)
	a.logger.Debug("read failed", "strategy", r.Name(), "path", src.Path, "kind", ferr.Kind, "phase", ferr.Phase)

	a.reporter.Failure(ferr)
	if a.errLog.LogError(ferr) {
		a.reporter.Logged(a.errLog.Path())
	}
	return nil, ferr
}

func (a *App) demonstrateNotFound() {
	a.reporter.Info("")
	a.reporter.Banner("DEMONSTRATING ERROR HANDLING WITH NON-EXISTENT FILE")
	a.ReadLines(source.NewLogSource(a.cfg.Files.Missing))
}

func (a *App) interactive(ctx context.Context) {
	a.reporter.Info("")
	a.reporter.Banner("INTERACTIVE FILE READING")

	path, err := a.askPath(ctx)
	if err != nil {
		if !errors.Is(err, ui.ErrCanceled) {
			a.logger.Warn("could not read a path", "err", err)
		}
		a.reporter.Info("Interactive reading skipped.")
		return
	}
	if path == "" {
		a.reporter.Info("No path entered, interactive reading skipped.")
		return
	}

	src := source.NewLogSource(path)
	a.ReadLines(src)

	// The other strategies only run against something that exists
	if _, err := os.Stat(path); err == nil {
		a.ReadClassified(src)
		a.ReadWhole(src)
	}
}

func (a *App) askPath(ctx context.Context) (string, error) {
	if a.opts.UserPath != "" {
		a.reporter.Info(ui.PromptText + a.opts.UserPath)
		return a.opts.UserPath, nil
	}
	if a.opts.NoPrompt {
		return "", nil
	}
	if a.opts.Terminal {
		return ui.RunPrompt(ctx, a.opts.Stdin, a.opts.Stdout)
	}
	return ui.ReadLine(ctx, a.opts.Stdin, a.opts.Stdout)
}
