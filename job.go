package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hesusruiz/md2html/config"
	"github.com/hesusruiz/md2html/page"
	"github.com/hesusruiz/md2html/preview"
	"github.com/hesusruiz/md2html/transcode"
	"go.uber.org/zap"
)

// job is one conversion of an input file, as requested in the command line
type job struct {
	inputFileName  string
	outputFileName string
	templateName   string
	dryrun         bool
	color          bool
	cfg            *config.Config
	stdout         io.Writer
	log            *zap.SugaredLogger
}

func (j *job) options() transcode.Options {
	return transcode.Options{
		Transcoder: transcode.Transcoder{KeepListsOnHeading: j.cfg.KeepListsOnHeading},
		Log:        j.log,
	}
}

// run converts the input file. The fragments go straight to the output file unless
// they have to be wrapped in a template or printed.
func (j *job) run(ctx context.Context) error {

	if !j.dryrun && len(j.templateName) == 0 {
		stats, err := transcode.ConvertFile(ctx, j.inputFileName, j.outputFileName, j.options())
		if err != nil {
			return err
		}
		j.logStats(stats)
		return nil
	}

	in, err := os.Open(j.inputFileName)
	if err != nil {
		return fmt.Errorf("%w: %w", transcode.ErrRead, err)
	}
	defer in.Close()

	var buf bytes.Buffer
	stats, err := transcode.Convert(ctx, in, &buf, j.options())
	if err != nil {
		return err
	}
	j.logStats(stats)

	html := buf.Bytes()

	// Build the full document with the template
	if len(j.templateName) > 0 {
		html, err = page.WrapFile(j.templateName, html, map[string]string{"title": j.cfg.Title})
		if err != nil {
			return fmt.Errorf("error reading template %s: %w", j.templateName, err)
		}
	}

	// Do not write anything if dryrun was specified
	if j.dryrun {
		return preview.Write(j.stdout, html, j.cfg.PreviewStyle, j.color)
	}

	if err := os.WriteFile(j.outputFileName, html, 0664); err != nil {
		return fmt.Errorf("%w: %w", transcode.ErrWrite, err)
	}

	return nil
}

func (j *job) logStats(stats transcode.Stats) {
	j.log.Debugw("stats",
		"lines", stats.Lines,
		"fragments", stats.Fragments,
		"headings", stats.Headings,
		"listItems", stats.ListItems,
		"paragraphs", stats.Paragraphs,
	)
}
