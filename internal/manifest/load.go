package manifest

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Lines calls fn for every line of r, in order, numbering from 1. The line
// terminator ("\n" or "\r\n") is removed; a final line without a terminator
// is still delivered. An error from fn stops the walk and is returned as is.
func Lines(r io.Reader, fn func(lineNo int, line string) error) error {
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, rerr := br.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return errors.Wrapf(rerr, "read manifest line %d", lineNo)
		}
		if rerr == io.EOF && line == "" {
			return nil
		}

		if strings.HasSuffix(line, "\n") {
			line = strings.TrimSuffix(line[:len(line)-1], "\r")
		}

		if err := fn(lineNo, line); err != nil {
			return err
		}

		if rerr == io.EOF {
			return nil
		}
	}
}
