package digest_test

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"md5sum/internal/digest"
)

// recorder is a deterministic primitive that remembers every chunk it saw.
type recorder struct {
	chunks [][]byte
	inits  int
}

func (r *recorder) Init() {
	r.inits++
	r.chunks = nil
}

func (r *recorder) Consume(p []byte) {
	r.chunks = append(r.chunks, append([]byte(nil), p...))
}

func (r *recorder) Finalize() digest.Digest {
	return digest.NewDigest("recorder", bytes.Join(r.chunks, nil))
}

func (r *recorder) Size() int    { return 0 }
func (r *recorder) Name() string { return "recorder" }

func md5Hex(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

func TestStream_TableDriven(t *testing.T) {
	small := []byte("hello world")
	large := bytes.Repeat([]byte("A"), 2*digest.BufferSize+7)

	tests := []struct {
		name    string
		content []byte
		reader  func(b []byte) io.Reader
	}{
		{"empty", nil, func(b []byte) io.Reader { return bytes.NewReader(b) }},
		{"small", small, func(b []byte) io.Reader { return bytes.NewReader(b) }},
		{"small one byte at a time", small, func(b []byte) io.Reader { return iotest.OneByteReader(bytes.NewReader(b)) }},
		{"larger than buffer", large, func(b []byte) io.Reader { return bytes.NewReader(b) }},
		{"larger than buffer half reads", large, func(b []byte) io.Reader { return iotest.HalfReader(bytes.NewReader(b)) }},
		{"data with eof", small, func(b []byte) io.Reader { return iotest.DataErrReader(bytes.NewReader(b)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := digest.New("md5")
			require.NoError(t, err)

			var progressed int64
			d, err := digest.Stream(tt.reader(tt.content), p, func(n int64) {
				progressed += n
			})
			require.NoError(t, err)

			assert.Equal(t, md5Hex(tt.content), d.Hex())
			assert.Equal(t, int64(len(tt.content)), progressed)
		})
	}
}

func TestStream_EmptyInputDigest(t *testing.T) {
	p, err := digest.New("md5")
	require.NoError(t, err)

	d, err := digest.Stream(bytes.NewReader(nil), p, nil)
	require.NoError(t, err)

	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", d.Hex())
}

func TestStream_ChunkingInvariance(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 4096)

	whole := &recorder{}
	d1, err := digest.Stream(bytes.NewReader(content), whole, nil)
	require.NoError(t, err)

	split := &recorder{}
	d2, err := digest.Stream(iotest.OneByteReader(bytes.NewReader(content)), split, nil)
	require.NoError(t, err)

	assert.Equal(t, d1.Bytes(), d2.Bytes())
	assert.Len(t, split.chunks, len(content))
	assert.Equal(t, 1, whole.inits)
	for _, c := range split.chunks {
		assert.NotEmpty(t, c)
	}
}

func TestStream_ReusesPrimitive(t *testing.T) {
	p, err := digest.New("md5")
	require.NoError(t, err)

	_, err = digest.Stream(bytes.NewReader([]byte("first")), p, nil)
	require.NoError(t, err)

	d, err := digest.Stream(bytes.NewReader([]byte("hello world")), p, nil)
	require.NoError(t, err)

	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", d.Hex())
}

func TestStream_PropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte("partial")), iotest.ErrReader(boom))

	p, err := digest.New("md5")
	require.NoError(t, err)

	var progressed int64
	d, err := digest.Stream(r, p, func(n int64) { progressed += n })

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, d.Size())
	assert.Equal(t, int64(len("partial")), progressed)
}
