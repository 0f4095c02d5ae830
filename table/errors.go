package table

import "errors"

// Error kinds shared by the window and reshape engines. Callers match them
// with errors.Is; every failure aborts the whole operation.
var (
	// ErrInvalidSpec reports a malformed function or reshape specification.
	ErrInvalidSpec = errors.New("invalid spec")

	// ErrTypeMismatch reports an ordering between incompatible value kinds.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNumericConversion reports a cell that cannot be read as a number.
	ErrNumericConversion = errors.New("numeric conversion failed")
)
