package verify

import (
	"log/slog"
	"sync/atomic"

	"github.com/pkg/errors"

	"md5sum/internal/manifest"
)

// Check verifies the manifest sources in order and returns the process exit
// status. A source that cannot be opened or read counts as a read error
// against the source name.
func Check(sources []string, e *Engine, agg *Aggregator) int {
	for _, src := range sources {
		if err := checkSource(src, e, agg); err != nil {
			return ExitFailure
		}
	}
	return agg.Finish()
}

func checkSource(src string, e *Engine, agg *Aggregator) error {
	atomic.AddInt64(&e.stats.Sources, 1)
	slog.Debug("checking manifest", "source", src)

	rc, err := e.Open(src)
	if err != nil {
		return agg.Record(Position{Source: src}, ReadError{Target: src, Err: err})
	}
	defer func() {
		_ = rc.Close()
	}()

	err = manifest.Lines(rc, func(lineNo int, line string) error {
		return agg.Record(Position{Source: src, Line: lineNo}, e.Check(line))
	})
	if err == nil {
		return nil
	}

	var abort *AbortError
	if errors.As(err, &abort) {
		return err
	}
	return agg.Record(Position{Source: src}, ReadError{Target: src, Err: err})
}

// Produce prints the digest line of every target in order. The first target
// that cannot be read ends the run.
func Produce(targets []string, e *Engine, console Console, quiet bool) int {
	for _, name := range targets {
		d, err := e.Digest(name)
		if err != nil {
			slog.Debug("digest failed", "target", name, "error", err)
			if !quiet {
				console.eprintln("%s: could not read %s", progName, name)
			}
			return ExitFailure
		}
		atomic.AddInt64(&e.stats.OK, 1)
		console.println("%s", manifest.FormatLine(d, name))
	}
	return ExitOK
}
