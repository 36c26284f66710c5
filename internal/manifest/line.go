package manifest

import (
	"unicode/utf8"

	"md5sum/internal/digest"
)

const (
	textSep   = ' '
	binarySep = '*'
)

// ParseLine parses one manifest line for a digest of size bytes. The digest
// token must be exactly 2*size hex characters, followed by one space and one
// separator; the rest of the line is the target name, untrimmed. Anything
// else, including a name that is not valid UTF-8, is rejected.
func ParseLine(line string, size int) (Entry, bool) {
	tokenLen := 2 * size
	if size <= 0 || len(line) < tokenLen+2 {
		return Entry{}, false
	}

	token := line[:tokenLen]
	if !isHex(token) {
		return Entry{}, false
	}

	if line[tokenLen] != ' ' {
		return Entry{}, false
	}

	sep := line[tokenLen+1]
	if sep != textSep && sep != binarySep {
		return Entry{}, false
	}

	name := line[tokenLen+2:]
	if !utf8.ValidString(name) {
		return Entry{}, false
	}

	return Entry{
		Digest: token,
		Target: name,
		Binary: sep == binarySep,
	}, true
}

// FormatLine renders d and name in text mode, without a trailing newline.
func FormatLine(d digest.Digest, name string) string {
	return d.Hex() + "  " + name
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
