package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/stretchy-rig/parameter"
)

// Viewport maps y-down world coordinates onto terminal cells
// The world origin lands on the bottom-center cell, GroundMargin rows above the last row
type Viewport struct {
	Width, Height int
	Scale         float64 // world units per column

	anchorCol, anchorRow int
}

// NewViewport creates a viewport for a width x height terminal; scale <= 0 falls back to WorldPerColumn
func NewViewport(width, height int, scale float64) Viewport {
	if scale <= 0 {
		scale = parameter.WorldPerColumn
	}
	v := Viewport{Scale: scale}
	v.Resize(width, height)
	return v
}

// Resize re-anchors the viewport for new terminal dimensions
func (v *Viewport) Resize(width, height int) {
	v.Width, v.Height = width, height
	v.anchorCol = width / 2
	v.anchorRow = height - 1 - parameter.GroundMargin
}

func (v Viewport) rowScale() float64 {
	return v.Scale * parameter.CellAspect
}

// ToScreen returns the cell containing world point p
func (v Viewport) ToScreen(p mgl64.Vec2) (col, row int) {
	col = v.anchorCol + int(math.Round(p[0]/v.Scale))
	row = v.anchorRow + int(math.Round(p[1]/v.rowScale()))
	return col, row
}

// ToWorld returns the world point at the center of a cell
func (v Viewport) ToWorld(col, row int) mgl64.Vec2 {
	return mgl64.Vec2{
		float64(col-v.anchorCol) * v.Scale,
		float64(row-v.anchorRow) * v.rowScale(),
	}
}

// Contains reports whether a cell is on screen
func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && col < v.Width && row >= 0 && row < v.Height
}
