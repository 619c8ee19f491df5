package valueobject

import "errors"

// ErrInvalidValue marks rejected input values. Validation failures across
// the domain wrap it so the presentation layer can match them with
// errors.Is instead of inspecting messages.
var ErrInvalidValue = errors.New("invalid value")
