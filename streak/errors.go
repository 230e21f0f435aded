package streak

import "fmt"

// MalformedDateError reports an entry date or submission timestamp that could
// not be parsed. It is propagated to the caller instead of being coerced into
// a punctuality verdict, since either guess would corrupt the streak silently.
type MalformedDateError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedDateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed %s %q", e.Field, e.Value)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }

// LadderError reports a misconfigured level table. It is raised by
// Ladder.Validate at load time so a bad table rejects the boot instead of
// producing inconsistent level pairs at call time.
type LadderError struct {
	Reason string
}

func (e *LadderError) Error() string {
	return "invalid level ladder: " + e.Reason
}
