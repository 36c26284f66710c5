package verify_test

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"md5sum/internal/digest"
	"md5sum/internal/metrics"
	"md5sum/internal/verify"
)

var errBrokenPipe = errors.New("broken pipe")

// memOpener serves targets from memory and records every open.
type memOpener struct {
	files map[string]string
	errs  map[string]error
	// partial targets yield their content, then fail.
	partial map[string]string
	opened  []string
}

func (m *memOpener) Open(name string) (io.ReadCloser, error) {
	m.opened = append(m.opened, name)
	if err, ok := m.errs[name]; ok {
		return nil, err
	}
	if content, ok := m.partial[name]; ok {
		r := io.MultiReader(strings.NewReader(content), iotest.ErrReader(errBrokenPipe))
		return io.NopCloser(r), nil
	}
	content, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newEngine(t *testing.T, opener *memOpener, stats *metrics.Stats) *verify.Engine {
	t.Helper()
	p, err := digest.New("md5")
	require.NoError(t, err)
	return verify.NewEngine(opener, p, stats)
}

type console struct {
	out bytes.Buffer
	err bytes.Buffer
}

func (c *console) sink() verify.Console {
	return verify.Console{Out: &c.out, Err: &c.err}
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
