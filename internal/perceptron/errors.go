package perceptron

import (
	"github.com/pkg/errors"
)

// ErrShapeMismatch is returned when matrix or vector dimensions are incompatible.
//
// Every shape failure wraps this error with the operation name and the
// offending dimensions, so callers should test for it with errors.Is.
var ErrShapeMismatch = errors.New("shape mismatch")

func shapeMismatch(op, format string, args ...any) error {
	return errors.Wrapf(ErrShapeMismatch, op+": "+format, args...)
}
