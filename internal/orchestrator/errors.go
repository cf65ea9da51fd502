package orchestrator

import "fmt"

// Stage names the pipeline step an error escaped from, so the caller can
// pick a status without parsing messages.
type Stage string

const (
	StageSession Stage = "session"
	StageCursor  Stage = "cursor"
	StageListing Stage = "listing"
	StageFetch   Stage = "fetch"
)

// Error wraps any pipeline failure for the caller boundary. Identifier is
// set when one connection's fetch sank the page.
type Error struct {
	Stage      Stage
	Identifier string
	Err        error
}

func (e *Error) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("pipeline %s stage failed for %q: %v", e.Stage, e.Identifier, e.Err)
	}
	return fmt.Sprintf("pipeline %s stage failed: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
