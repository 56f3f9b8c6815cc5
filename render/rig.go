package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/stretchy-rig/parameter"
	"github.com/lixenwraith/stretchy-rig/rigging"
	"github.com/lixenwraith/stretchy-rig/skeleton"
)

// Glyphs and fixed rows of the rig view
const (
	JointRune   = 'o'
	MarkerRune  = '░'
	HandleRune  = '+'
	GroundRune  = '▔'
	StatusRow   = 0
	statusSplit = " | "
)

// Styles for each layer; a dragged handle is drawn dim
var (
	StyleBone    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleJoint   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	StyleMarker  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xCC, 0x00, 0x00))
	StyleGround  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	StyleDragged = StyleMarker.Dim(true)
)

// Scene is everything drawn in one frame
type Scene struct {
	Skeleton *skeleton.Skeleton
	Controls []rigging.Control
	Status   []string
}

// Draw clears the screen and renders the ground, bones, markers and status line
// The caller is responsible for Show
func Draw(s tcell.Screen, vp Viewport, scene Scene) {
	s.Clear()

	drawGround(s, vp)

	controlled := make(map[*skeleton.Bone]bool, len(scene.Controls))
	for _, c := range scene.Controls {
		controlled[c.Bone] = true
	}

	for _, b := range scene.Skeleton.Bones() {
		if controlled[b] || b.Data().Length == 0 {
			continue
		}
		drawLine(s, vp, b.WorldPosition(), b.Tip(), StyleBone)
	}
	for _, b := range scene.Skeleton.Bones() {
		if controlled[b] || b.Data().Length == 0 {
			continue
		}
		setCell(s, vp, b.WorldPosition(), JointRune, StyleJoint)
	}

	for _, c := range scene.Controls {
		drawMarker(s, vp, c)
	}

	drawStatus(s, vp, scene.Status)
}

func drawGround(s tcell.Screen, vp Viewport) {
	_, row := vp.ToScreen(mgl64.Vec2{0, 0})
	row++
	for col := 0; col < vp.Width; col++ {
		if vp.Contains(col, row) {
			s.SetContent(col, row, GroundRune, nil, StyleGround)
		}
	}
}

// drawLine rasterizes a world segment with Bresenham, picking a glyph from the slope on screen
func drawLine(s tcell.Screen, vp Viewport, from, to mgl64.Vec2, style tcell.Style) {
	x0, y0 := vp.ToScreen(from)
	x1, y1 := vp.ToScreen(to)
	glyph := slopeRune(x1-x0, y1-y0)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		if vp.Contains(x0, y0) {
			s.SetContent(x0, y0, glyph, nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func slopeRune(dx, dy int) rune {
	if dx == 0 && dy == 0 {
		return JointRune
	}
	// Screen rows are twice as tall as columns
	angle := math.Atan2(float64(dy)*parameter.CellAspect, float64(dx))
	deg := math.Mod(mgl64.RadToDeg(angle)+180, 180)
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '-'
	case deg < 67.5:
		return '\\'
	case deg < 112.5:
		return '|'
	default:
		return '/'
	}
}

func drawMarker(s tcell.Screen, vp Viewport, c rigging.Control) {
	style := StyleMarker
	if c.Dragging {
		style = StyleDragged
	}

	rx := parameter.ControlRadius / vp.Scale
	ry := parameter.ControlRadius / vp.rowScale()
	col, row := vp.ToScreen(c.Position)

	for dr := -int(ry); dr <= int(ry); dr++ {
		for dc := -int(rx); dc <= int(rx); dc++ {
			nx, ny := float64(dc)/rx, float64(dr)/ry
			if nx*nx+ny*ny > 1 {
				continue
			}
			if vp.Contains(col+dc, row+dr) {
				s.SetContent(col+dc, row+dr, MarkerRune, nil, style)
			}
		}
	}
	if vp.Contains(col, row) {
		s.SetContent(col, row, HandleRune, nil, style.Bold(true))
	}
}

func drawStatus(s tcell.Screen, vp Viewport, parts []string) {
	col := 0
	for i, part := range parts {
		if i > 0 {
			col = drawText(s, vp, col, StatusRow, statusSplit)
		}
		col = drawText(s, vp, col, StatusRow, part)
	}
	for ; col < vp.Width; col++ {
		s.SetContent(col, StatusRow, ' ', nil, StyleStatus)
	}
}

func drawText(s tcell.Screen, vp Viewport, col, row int, text string) int {
	for _, r := range text {
		if !vp.Contains(col, row) {
			return col
		}
		s.SetContent(col, row, r, nil, StyleStatus)
		col++
	}
	return col
}

func setCell(s tcell.Screen, vp Viewport, p mgl64.Vec2, r rune, style tcell.Style) {
	col, row := vp.ToScreen(p)
	if vp.Contains(col, row) {
		s.SetContent(col, row, r, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
