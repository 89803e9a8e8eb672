package render

import (
	"math"

	"github.com/lixenwraith/pie-merge/core"
)

// hudRows is the space reserved above the arena for score and status
const hudRows = 2

// Viewport maps arena pixels to terminal cells, a cell is twice as tall as it is wide
type Viewport struct {
	unit    float64 // arena pixels per column
	originX int
	originY int
	cols    int
	rows    int
}

// NewViewport fits an arenaW x arenaH field into a cols x rows terminal
func NewViewport(arenaW, arenaH float64, cols, rows int) Viewport {
	avail := max(rows-hudRows, 1)
	cols = max(cols, 1)
	unit := math.Max(arenaW/float64(cols), arenaH/float64(avail*2))
	if unit <= 0 {
		unit = 1
	}
	usedCols := int(math.Ceil(arenaW / unit))
	return Viewport{
		unit:    unit,
		originX: max((cols-usedCols)/2, 0),
		originY: hudRows,
		cols:    cols,
		rows:    rows,
	}
}

// ToScreen returns the cell containing p
func (v Viewport) ToScreen(p core.Vec2) (int, int) {
	x := v.originX + int(math.Floor(p.X/v.unit))
	y := v.originY + int(math.Floor(p.Y/(v.unit*2)))
	return x, y
}

// ToArena returns the arena point at the center of cell (x, y)
func (v Viewport) ToArena(x, y int) core.Vec2 {
	return core.V(
		(float64(x-v.originX)+0.5)*v.unit,
		(float64(y-v.originY)+0.5)*v.unit*2,
	)
}

// Unit returns arena pixels per column
func (v Viewport) Unit() float64 {
	return v.unit
}
