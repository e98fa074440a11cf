package importer

import "errors"

var (
	// ErrEmptyInput means the pasted source text was blank.
	ErrEmptyInput = errors.New("no input text to import")
	// ErrMissingCredential means no AI credential could be resolved from the
	// request, the user profile, or the environment.
	ErrMissingCredential = errors.New("AI credential required")
	// ErrInvalidCredential means the provider rejected the credential.
	ErrInvalidCredential = errors.New("AI credential rejected")
	// ErrParse means the model reply was not the expected JSON shape.
	ErrParse = errors.New("could not parse model reply")
)
