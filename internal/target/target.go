// Package target resolves target names to readable byte streams.
package target

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// StdinName is the target name that means standard input.
const StdinName = "-"

var (
	ErrEmptyName   = errors.New("empty target name")
	ErrIsDirectory = errors.New("is a directory")
)

// Opener yields a readable stream for a target name. Callers close what they
// open.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// FS opens targets from the local file system. Stdin replaces os.Stdin for
// the "-" target when set.
type FS struct {
	Stdin io.Reader
}

var _ Opener = FS{}

func (fs FS) Open(name string) (io.ReadCloser, error) {
	switch name {
	case "":
		return nil, ErrEmptyName
	case StdinName:
		in := fs.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.NopCloser(in), nil
	}

	f, err := os.Open(name) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", name)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "stat %q", name)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, errors.Wrapf(ErrIsDirectory, "open %q", name)
	}

	return f, nil
}
