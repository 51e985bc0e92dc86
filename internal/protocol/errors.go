package protocol

import "errors"

var (
	// ErrMalformed indicates a frame whose fields cannot be parsed.
	ErrMalformed = errors.New("protocol: malformed frame")
	// ErrWrongRole indicates a frame carrying an unexpected role tag.
	ErrWrongRole = errors.New("protocol: wrong role tag")
)
