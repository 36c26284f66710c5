package digest

import (
	"io"

	"github.com/pkg/errors"
)

// BufferSize bounds how much of a stream is held in memory at once.
const BufferSize = 1 << 20 // 1 MiB

// Stream drives p over r until end of stream and returns the finalized
// digest. r is fully consumed. onProgress, if set, receives byte counts in
// batches of roughly BufferSize and once more at the end.
func Stream(r io.Reader, p Primitive, onProgress func(n int64)) (Digest, error) {
	p.Init()

	buf := make([]byte, BufferSize)
	var pending int64
	flush := func() {
		if pending > 0 && onProgress != nil {
			onProgress(pending)
		}
		pending = 0
	}

	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			p.Consume(buf[:n])
			pending += int64(n)
			if pending >= BufferSize {
				flush()
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			flush()
			return Digest{}, errors.Wrap(rerr, "read stream")
		}
	}
	flush()

	return p.Finalize(), nil
}
