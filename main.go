package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hesusruiz/md2html/config"
	"github.com/hesusruiz/md2html/transcode"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sentinel errors for the command line.
var (
	ErrUsage        = errors.New("usage: md2html [options] <input-file> <output-file>")
	ErrMissingInput = errors.New("missing input file")
)

// Exit codes for md2html. Every failure is reported with the same code.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

const (
	inputFileArgIndex  = 0
	outputFileArgIndex = 1
	minRequiredArgs    = 2
)

// exitCodeFor returns the exit code of the process for the error returned by the application.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// errorMessage formats err for the user. Usage and missing file errors are
// printed as they are, anything else is prefixed with "Error: ".
func errorMessage(err error) string {
	if errors.Is(err, ErrUsage) || errors.Is(err, ErrMissingInput) {
		return err.Error()
	}
	return "Error: " + err.Error()
}

// newLogger builds the logger for a run. Normal runs only report errors, so a
// successful conversion is silent. Debug runs report every line processed.
func newLogger(debug bool, w io.Writer) *zap.SugaredLogger {

	level := zapcore.ErrorLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	return zap.New(core).Sugar()
}

// process is the action of the application
func process(c *cli.Context) error {

	// Both the input and the output file are compulsory
	if c.NArg() < minRequiredArgs {
		return ErrUsage
	}

	inputFileName := c.Args().Get(inputFileArgIndex)
	outputFileName := c.Args().Get(outputFileArgIndex)

	// Check the input file before touching the output file
	if _, err := os.Stat(inputFileName); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInput, inputFileName)
		}
		return fmt.Errorf("%w: %w", transcode.ErrRead, err)
	}

	// Setup the logging system
	sugar := newLogger(c.Bool("debug"), c.App.ErrWriter)
	defer sugar.Sync()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	// The template in the command line has precedence over the one in the config file
	templateName := c.String("template")
	if len(templateName) == 0 {
		templateName = cfg.Template
	}

	j := &job{
		inputFileName:  inputFileName,
		outputFileName: outputFileName,
		templateName:   templateName,
		dryrun:         c.Bool("dryrun"),
		color:          c.Bool("color"),
		cfg:            cfg,
		stdout:         c.App.Writer,
		log:            sugar,
	}

	sugar.Debugw("starting", "input", inputFileName, "output", outputFileName, "template", templateName, "dryrun", j.dryrun)

	// If the user specified to watch, loop processing the input file when modified
	if c.Bool("watch") {
		return processWatch(c.Context, j, c.Duration("interval"))
	}

	return j.run(c.Context)
}

func newApp(stdout io.Writer, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:     "md2html",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:           "convert a simple Markdown document into HTML",
		UsageText:       "md2html [options] INPUT_FILE OUTPUT_FILE",
		Action:          process,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		// Errors are reported by run, never by the cli package
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read settings from the YAML `FILE`",
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "wrap the output in the HTML template `FILE`",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not generate output file, print the HTML instead",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "highlight the HTML printed in dry run mode",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the input file for changes",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: time.Second,
				Usage: "time between checks of the input file in watch mode",
			},
		},
	}
}

// run executes the application and returns the exit code of the process
func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	err := newApp(stdout, stderr).RunContext(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
	}
	return exitCodeFor(err)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}
