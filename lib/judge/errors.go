package judge

import "fmt"

// ErrSubmitTimeout is returned when the judge kept refusing a submission
// for the whole retry ceiling. The caller should try again later, the
// client never retries past the ceiling on its own.
var ErrSubmitTimeout = fmt.Errorf("judge refused the submission for too long, try again later")

// ParseError means the upstream markup did not match an expected shape.
// It is always surfaced: a silent default would corrupt displayed data.
type ParseError struct {
	// selector or region the parser was looking at
	Location string
	Detail   string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Location, e.Detail)
}

// AuthError means identity state required by an operation is missing or
// invalid.
type AuthError struct {
	Reason string
}

func (e AuthError) Error() string {
	return fmt.Sprintf("auth: %s", e.Reason)
}

// NotFoundError means a lookup by id found no match in cached reference
// data.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}
