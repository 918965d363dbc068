package collision

import "errors"

// Registry errors
var (
	ErrNilObject        = errors.New("collision object is nil")
	ErrObjectRegistered = errors.New("collision object already registered")
	ErrObjectNotFound   = errors.New("collision object not found")
	ErrNilPolygon       = errors.New("polygon is nil")
)
