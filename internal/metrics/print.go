package metrics

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Snapshot struct {
	DurationMs  int64 `json:"duration_ms"`
	Sources     int64 `json:"sources"`
	Lines       int64 `json:"lines"`
	OK          int64 `json:"ok"`
	Failed      int64 `json:"failed"`
	BadFormat   int64 `json:"bad_format"`
	ReadErrors  int64 `json:"read_errors"`
	Targets     int64 `json:"targets"`
	BytesHashed int64 `json:"bytes_hashed"`
}

func (s *Stats) Snapshot() Snapshot {
	dur := s.Duration()

	return Snapshot{
		DurationMs:  dur.Milliseconds(),
		Sources:     atomic.LoadInt64(&s.Sources),
		Lines:       atomic.LoadInt64(&s.Lines),
		OK:          atomic.LoadInt64(&s.OK),
		Failed:      atomic.LoadInt64(&s.Failed),
		BadFormat:   atomic.LoadInt64(&s.BadFormat),
		ReadErrors:  atomic.LoadInt64(&s.ReadErrors),
		Targets:     atomic.LoadInt64(&s.Targets),
		BytesHashed: atomic.LoadInt64(&s.BytesHashed),
	}
}

// ValidFormat reports whether format is accepted by Print.
func ValidFormat(format string) bool {
	return format == FormatText || format == FormatJSON
}

// Print writes snap to w as text or JSON.
func Print(w io.Writer, snap Snapshot, format string) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode stats")
		}
		_, err = w.Write(append(data, '\n'))
		return errors.Wrap(err, "write stats")
	case FormatText:
		return printText(w, snap)
	default:
		return errors.Errorf("unknown stats format %q", format)
	}
}

func printText(w io.Writer, snap Snapshot) error {
	lines := []struct {
		key string
		val any
	}{
		{"duration_ms", snap.DurationMs},
		{"sources", snap.Sources},
		{"lines", snap.Lines},
		{"ok", snap.OK},
		{"failed", snap.Failed},
		{"bad_format", snap.BadFormat},
		{"read_errors", snap.ReadErrors},
		{"targets", snap.Targets},
		{"bytes_hashed", snap.BytesHashed},
	}

	if _, err := fmt.Fprintln(w, "--- stats ---"); err != nil {
		return errors.Wrap(err, "write stats")
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.key+":", l.val); err != nil {
			return errors.Wrap(err, "write stats")
		}
	}

	if snap.DurationMs > 0 {
		secs := float64(snap.DurationMs) / 1000.0
		bps := float64(snap.BytesHashed) / secs
		if _, err := fmt.Fprintln(w, "throughput_mb_per_sec:", bps/1_000_000.0); err != nil {
			return errors.Wrap(err, "write stats")
		}
	}
	return nil
}
