package engine

import "errors"

var (
	// ErrGenerationUnavailable is returned when the text-generation
	// collaborator produced no usable question and the fallback bank has
	// no entry left for the required tier and focus area.
	ErrGenerationUnavailable = errors.New("question generation unavailable")

	// ErrSessionTerminal is returned by operations invoked after the
	// session reached Completed or Aborted.
	ErrSessionTerminal = errors.New("session is in a terminal state")

	// ErrNoPendingQuestion is returned when an answer or skip arrives
	// without an outstanding question.
	ErrNoPendingQuestion = errors.New("no pending question")
)

// InvariantError indicates a session bookkeeping bug, such as evaluating
// a skipped answer. It is never recovered from; all other failures
// degrade to fallback paths.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "session invariant violated: " + e.Msg
}
