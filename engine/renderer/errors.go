package renderer

import "errors"

var (
	// ErrConstruction is returned by NewRenderer when no usable adapter, device, surface or pipeline could be created.
	ErrConstruction = errors.New("renderer construction failed")

	// ErrCapacityExceeded is returned by LoadMesh when a mesh does not fit in the remaining vertex or index capacity.
	ErrCapacityExceeded = errors.New("buffer capacity exceeded")

	// ErrInvalidSurfaceSize is returned when a surface is configured with a zero width or height.
	ErrInvalidSurfaceSize = errors.New("invalid surface size")

	// ErrSurfaceLost is returned by Render when the next presentable frame cannot be acquired.
	ErrSurfaceLost = errors.New("surface lost")
)
