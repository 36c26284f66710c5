package verify

// Outcome is the result of checking one manifest line. It is one of
// MatchSuccess, MatchFailed, BadFormat or ReadError.
type Outcome interface {
	outcome()
}

type MatchSuccess struct {
	Target string
}

type MatchFailed struct {
	Target   string
	Expected string
	Computed string
}

// BadFormat means the line did not parse; no target was read.
type BadFormat struct{}

type ReadError struct {
	Target string
	Err    error
}

func (MatchSuccess) outcome() {}
func (MatchFailed) outcome()  {}
func (BadFormat) outcome()    {}
func (ReadError) outcome()    {}
