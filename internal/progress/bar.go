package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"md5sum/internal/metrics"
)

type SnapshotFn func() metrics.Snapshot

// Bar shows bytes hashed so far. The total is unknown up front, so it
// renders as a spinner with a running description of the counters.
type Bar struct {
	bar  *progressbar.ProgressBar
	ch   chan int64
	done chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup

	snap   SnapshotFn
	lastB  int64
	lastAt time.Time
}

func New(w io.Writer, snap SnapshotFn) (*Bar, error) {
	b := &Bar{
		ch:     make(chan int64, 16384),
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
		snap:   snap,
		lastAt: time.Now(),
	}

	b.bar = progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetDescription("hashing"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(120*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	if err := b.bar.RenderBlank(); err != nil {
		return nil, errors.Wrap(err, "render progress bar")
	}

	go func() {
		defer close(b.done)
		for n := range b.ch {
			_ = b.bar.Add64(n)
		}
		_ = b.bar.Finish()
	}()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		t := time.NewTicker(1 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				b.updateDescription()
			case <-b.stop:
				return
			}
		}
	}()

	return b, nil
}

func (b *Bar) AddBytes(n int64) {
	if n <= 0 {
		return
	}
	b.ch <- n
}

// Close stops the bar and clears it. The bar must not be used afterwards.
func (b *Bar) Close() {
	close(b.stop)
	b.wg.Wait()
	close(b.ch)
	<-b.done
}

func (b *Bar) updateDescription() {
	if b.snap == nil {
		return
	}
	s := b.snap()

	now := time.Now()
	dt := now.Sub(b.lastAt).Seconds()

	mbps := 0.0
	if dt > 0 {
		mbps = (float64(s.BytesHashed-b.lastB) / 1_000_000.0) / dt
	}

	b.lastB = s.BytesHashed
	b.lastAt = now

	b.bar.Describe(fmt.Sprintf("hashing %d lines | ok=%d failed=%d bad=%d unreadable=%d | %.1f MB/s",
		s.Lines, s.OK, s.Failed, s.BadFormat, s.ReadErrors, mbps,
	))
}
