// Package digest holds the hash primitives the checker is built on and the
// bounded-buffer loop that drives them over a byte stream.
package digest

import (
	"encoding/hex"
	"strings"
)

// Digest is the finalized output of a Primitive. The zero value is an empty
// digest and never matches anything.
type Digest struct {
	algorithm string
	value     []byte
}

func NewDigest(algorithm string, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

func (d Digest) Algorithm() string {
	return d.algorithm
}

func (d Digest) Bytes() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

func (d Digest) Size() int {
	return len(d.value)
}

// Hex is the canonical lowercase form used in manifests.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

func (d Digest) String() string {
	return d.algorithm + ":" + d.Hex()
}

// MatchesHex reports whether token spells this digest, ignoring hex case.
func (d Digest) MatchesHex(token string) bool {
	if len(d.value) == 0 || len(token) != 2*len(d.value) {
		return false
	}
	return strings.EqualFold(d.Hex(), token)
}
