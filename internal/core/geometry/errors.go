package geometry

import "errors"

// Geometry errors
var (
	ErrZeroLength       = errors.New("vector has zero length")
	ErrSingularMatrix   = errors.New("matrix is singular")
	ErrVertexOutOfRange = errors.New("vertex index out of range")
)
