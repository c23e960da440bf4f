package swagger

import "errors"

var (
	// ErrMalformedSpec is returned when a document does not have the shape of
	// a Swagger 2.0 description.
	ErrMalformedSpec = errors.New("malformed swagger document")

	// ErrUnresolvableRef is returned for references that are not local,
	// not of the form #/container/name, or that point at nothing.
	ErrUnresolvableRef = errors.New("unresolvable reference")
)
