package texture

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow reports non-positive window dimensions.
var ErrInvalidWindow = errors.New("texture: window dimensions must be positive")

// ErrInvalidGrayLevels reports a gray-level count too small to quantize into.
var ErrInvalidGrayLevels = errors.New("texture: gray levels must be at least 2")

// ErrUnsupportedProperty reports a texture property name outside the
// recognised set.
var ErrUnsupportedProperty = errors.New("texture: unsupported property")

// ErrShapeMismatch reports an output buffer whose shape does not match the
// tile grid implied by the input shape and window.
var ErrShapeMismatch = errors.New("texture: output grid shape mismatch")

// DegenerateWindowError marks a tile whose maximum value is zero (or whose
// samples are all missing), making gray-level quantization undefined. Under
// the sentinel policy the affected output cell is set to NaN and computation
// continues; under the fail-fast policy the first such error aborts the run.
type DegenerateWindowError struct {
	TileRow int
	TileCol int
}

func (e *DegenerateWindowError) Error() string {
	return fmt.Sprintf("texture: degenerate window at tile (%d,%d): maximum value is zero", e.TileRow, e.TileCol)
}
