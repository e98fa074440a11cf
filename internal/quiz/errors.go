package quiz

import "errors"

var (
	// ErrNotFound indicates the quiz id resolves to nothing, definitively.
	ErrNotFound = errors.New("quiz not found")
	// ErrForbidden is the ownership/visibility violation. It always propagates
	// and never triggers the local-mirror fallback.
	ErrForbidden = errors.New("quiz access forbidden")
	// ErrNotPlayable is returned when starting a play session on a quiz with
	// zero questions.
	ErrNotPlayable = errors.New("quiz has no questions")
	// ErrInvalid wraps validation failures on save.
	ErrInvalid = errors.New("invalid quiz")
)
