package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned for files no loader understands.
	ErrUnsupported = errors.New("unsupported asset kind")
	// ErrEmptyScene is returned for models without any triangles.
	ErrEmptyScene = errors.New("model has no triangles")
)

// LoadError is the failure of one asset path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
