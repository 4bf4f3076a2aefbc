package parser

import "errors"

var (
	// ErrMissingRequiredField is returned when a field every descriptor of a
	// class carries is absent. The owning unit cannot be extracted.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMalformedToken is returned when an enumerated token such as an armor
	// descriptor does not follow its grammar.
	ErrMalformedToken = errors.New("malformed token")

	// ErrMalformedQuantity is returned when a numeric or metre quantity cannot be parsed.
	ErrMalformedQuantity = errors.New("malformed quantity")

	// ErrUnresolvedReference is returned when a required reference points at a
	// descriptor missing from the index.
	ErrUnresolvedReference = errors.New("unresolved reference")
)
