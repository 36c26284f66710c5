package verify

import (
	"io"
	"log/slog"
	"sync/atomic"

	"md5sum/internal/digest"
	"md5sum/internal/manifest"
	"md5sum/internal/metrics"
	"md5sum/internal/target"
)

// Engine checks single manifest lines against the current content of their
// targets. It is not safe for concurrent use.
type Engine struct {
	opener    target.Opener
	primitive digest.Primitive
	stats     *metrics.Stats

	// OnProgress receives counts of bytes hashed.
	OnProgress func(n int64)
}

func NewEngine(opener target.Opener, p digest.Primitive, stats *metrics.Stats) *Engine {
	if stats == nil {
		stats = &metrics.Stats{}
	}
	return &Engine{
		opener:    opener,
		primitive: p,
		stats:     stats,
	}
}

// Check classifies one manifest line. The target is only read when the line
// parses.
func (e *Engine) Check(line string) Outcome {
	entry, ok := manifest.ParseLine(line, e.primitive.Size())
	if !ok {
		return BadFormat{}
	}

	d, err := e.Digest(entry.Target)
	if err != nil {
		return ReadError{Target: entry.Target, Err: err}
	}

	if !d.MatchesHex(entry.Digest) {
		return MatchFailed{
			Target:   entry.Target,
			Expected: entry.Digest,
			Computed: d.Hex(),
		}
	}

	return MatchSuccess{Target: entry.Target}
}

// Digest opens name and hashes its whole content.
func (e *Engine) Digest(name string) (digest.Digest, error) {
	atomic.AddInt64(&e.stats.Targets, 1)

	rc, err := e.opener.Open(name)
	if err != nil {
		return digest.Digest{}, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			slog.Debug("close target", "target", name, "error", cerr)
		}
	}()

	return digest.Stream(rc, e.primitive, e.progress)
}

// Open exposes the engine's opener for manifest sources.
func (e *Engine) Open(name string) (io.ReadCloser, error) {
	return e.opener.Open(name)
}

func (e *Engine) progress(n int64) {
	atomic.AddInt64(&e.stats.BytesHashed, n)
	if e.OnProgress != nil {
		e.OnProgress(n)
	}
}
