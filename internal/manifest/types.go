// Package manifest reads and writes checksum manifest lines of the form
// "<hex digest> <sep><name>", where sep is a space (text mode) or '*'
// (binary mode).
package manifest

// Entry is one parsed manifest line.
type Entry struct {
	// Digest is the hex token exactly as written, in either case.
	Digest string
	Target string
	Binary bool
}
