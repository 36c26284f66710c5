package metrics

import "time"

// Stats counts what a run did. Fields are updated with sync/atomic while the
// progress bar reads them.
type Stats struct {
	Sources    int64
	Lines      int64
	OK         int64
	Failed     int64
	BadFormat  int64
	ReadErrors int64

	Targets     int64
	BytesHashed int64

	Started  time.Time
	Finished time.Time
}

func (s *Stats) Start() { s.Started = time.Now() }
func (s *Stats) Stop()  { s.Finished = time.Now() }
func (s *Stats) Duration() time.Duration {
	if s.Started.IsZero() {
		return 0
	}
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}
