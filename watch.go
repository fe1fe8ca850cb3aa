package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hesusruiz/md2html/transcode"
)

// processWatch checks periodically if the input file has been modified, and if so
// it converts the file again. It returns when ctx is cancelled.
// Conversion errors are logged and do not stop the loop.
func processWatch(ctx context.Context, j *job, interval time.Duration) error {

	var oldTimestamp time.Time

	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(j.inputFileName)
		if err != nil {
			return fmt.Errorf("%w: %w", transcode.ErrRead, err)
		}
		currentTimestamp := info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if oldTimestamp.Before(currentTimestamp) {
			oldTimestamp = currentTimestamp
			j.log.Infow("processing", "input", j.inputFileName, "modified", currentTimestamp)

			if err := j.run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				j.log.Errorw("conversion failed", "input", j.inputFileName, "error", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

	}
}
