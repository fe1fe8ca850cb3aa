package transcode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Sentinel errors for conversion I/O.
var (
	ErrRead  = errors.New("error reading input")
	ErrWrite = errors.New("error writing output")
)

// maxLineSize is the longest input line accepted by the scanner.
const maxLineSize = 1024 * 1024

// Options configure a conversion run.
type Options struct {
	Transcoder Transcoder

	// Log receives one debug record per input line. A nil logger disables logging.
	Log *zap.SugaredLogger
}

// Stats summarises a conversion run.
type Stats struct {
	Lines      int
	Fragments  int
	Headings   int
	ListItems  int
	Paragraphs int
}

// Convert reads r one line at a time and writes the HTML to w.
// Every non-empty fragment is written immediately, followed by a newline.
func Convert(ctx context.Context, r io.Reader, w io.Writer, opts Options) (Stats, error) {
	var stats Stats
	var st State

	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	bw := bufio.NewWriter(w)

	write := func(fragment string) error {
		if len(fragment) == 0 {
			return nil
		}
		if _, err := bw.WriteString(fragment); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		stats.Fragments++
		return nil
	}

	// Process the input one line at a time. The scanner removes the line terminators.
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for s.Scan() {

		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Lines++

		wasInParagraph := st.InsideParagraph

		var fragment string
		var kind Kind
		fragment, st, kind = opts.Transcoder.classify(s.Text(), st)

		switch kind {
		case Heading:
			stats.Headings++
		case UnorderedItem, OrderedItem:
			stats.ListItems++
		case Paragraph:
			if !wasInParagraph {
				stats.Paragraphs++
			}
		}

		log.Debugw("line", "num", stats.Lines, "kind", kind, "inside", st.Open())

		if err := write(fragment); err != nil {
			return stats, err
		}

	}

	// Check if there was any error
	if err := s.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrRead, err)
	}

	// Close any block left open by the last line
	if err := write(opts.Transcoder.Finalize(st)); err != nil {
		return stats, err
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	log.Debugw("conversion done", "lines", stats.Lines, "fragments", stats.Fragments)

	return stats, nil
}

// ConvertFile converts the file inputFileName and writes the result to outputFileName,
// creating or truncating it.
func ConvertFile(ctx context.Context, inputFileName string, outputFileName string, opts Options) (Stats, error) {

	in, err := os.Open(inputFileName)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer in.Close()

	out, err := os.Create(outputFileName)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	stats, err := Convert(ctx, in, out, opts)
	if err != nil {
		out.Close()
		return stats, err
	}

	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return stats, nil
}
