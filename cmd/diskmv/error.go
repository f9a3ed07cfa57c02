package main

import "errors"

var (
	// ErrMalformedFlag is an error that occurs when a flag argument cannot
	// be interpreted (bad -s value, empty -e list).
	ErrMalformedFlag = errors.New("malformed flag argument")

	// ErrRunCanceled is an error that occurs when an operator interrupt
	// stops the run between entries. Already completed moves stay; a
	// re-run picks up where the walk stopped.
	ErrRunCanceled = errors.New("run canceled")
)
