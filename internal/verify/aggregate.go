package verify

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"md5sum/internal/metrics"
)

// Console is where a run writes its lines. Out gets OK lines and computed
// digests, Err gets everything else.
type Console struct {
	Out io.Writer
	Err io.Writer
}

func (c Console) println(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c Console) eprintln(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Err, format+"\n", args...)
}

// Position locates a manifest line. Line is 0 when the whole source is
// concerned.
type Position struct {
	Source string
	Line   int
}

func (p Position) String() string {
	if p.Line == 0 {
		return p.Source
	}
	return fmt.Sprintf("%s: %d", p.Source, p.Line)
}

// AbortError stops a run at a line boundary. Its message has already been
// written to the console when it is returned.
type AbortError struct {
	Message string
	Err     error
}

func (e *AbortError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AbortError) Unwrap() error { return e.Err }

// Aggregator applies a Config to the outcomes of a run and decides its exit
// status.
type Aggregator struct {
	cfg     Config
	console Console
	stats   *metrics.Stats
	failed  []string
}

func NewAggregator(cfg Config, console Console, stats *metrics.Stats) *Aggregator {
	if stats == nil {
		stats = &metrics.Stats{}
	}
	return &Aggregator{
		cfg:     cfg,
		console: console,
		stats:   stats,
	}
}

// Record reports one outcome. A non-nil error is always an *AbortError and
// means no further line may be processed.
func (a *Aggregator) Record(pos Position, o Outcome) error {
	atomic.AddInt64(&a.stats.Lines, 1)

	switch o := o.(type) {
	case MatchSuccess:
		atomic.AddInt64(&a.stats.OK, 1)
		if !a.cfg.Status && !a.cfg.Quiet {
			a.console.println("%s: OK", o.Target)
		}

	case MatchFailed:
		atomic.AddInt64(&a.stats.Failed, 1)
		slog.Debug("checksum mismatch",
			"position", pos.String(), "target", o.Target,
			"expected", o.Expected, "computed", o.Computed)
		if !a.cfg.Status && !a.cfg.Quiet {
			a.console.eprintln("%s: FAILED", o.Target)
		}
		a.failed = append(a.failed, o.Target)

	case BadFormat:
		atomic.AddInt64(&a.stats.BadFormat, 1)
		if a.cfg.Strict {
			return a.abort(fmt.Sprintf("%s: ERROR: %s: improperly formatted checksum line", progName, pos), nil)
		}
		if a.cfg.Warn && !a.cfg.Quiet {
			a.console.eprintln("%s: WARNING: %s: improperly formatted checksum line", progName, pos)
		}

	case ReadError:
		atomic.AddInt64(&a.stats.ReadErrors, 1)
		if a.cfg.IgnoreMissing {
			slog.Debug("skipping unreadable target",
				"position", pos.String(), "target", o.Target, "error", o.Err)
			return nil
		}
		return a.abort(fmt.Sprintf("%s: FAILED: could not read %s", progName, o.Target), o.Err)

	default:
		panic(fmt.Sprintf("verify: unhandled outcome %T", o))
	}

	return nil
}

func (a *Aggregator) abort(msg string, cause error) error {
	slog.Debug("aborting run", "reason", msg, "error", cause)
	a.console.eprintln("%s", msg)
	return &AbortError{Message: msg, Err: cause}
}

// Failed returns the targets that did not match, in report order.
func (a *Aggregator) Failed() []string {
	return append([]string(nil), a.failed...)
}

// Finish writes the mismatch summary, if any, and returns the exit status of
// a run that was not aborted.
func (a *Aggregator) Finish() int {
	n := len(a.failed)
	if n == 0 {
		return ExitOK
	}

	if !a.cfg.Quiet {
		suffix := ""
		if n > 1 {
			suffix = "s"
		}
		a.console.eprintln("%s: WARNING: %d computed checksum%s did NOT match", progName, n, suffix)
	}
	return ExitFailure
}
