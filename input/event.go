package input

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PointerKind discriminates pointer transitions
type PointerKind uint8

const (
	PointerNone PointerKind = iota
	PointerDown             // button pressed over a handle or empty space
	PointerMove             // motion while the button is held
	PointerUp               // button released, inside or outside the handle
)

// NoTarget marks a pointer event not aimed at any handle
const NoTarget = -1

// Event is a pointer interaction delivered to the rig, in world coordinates
type Event struct {
	Kind   PointerKind
	Target int
	Pos    mgl64.Vec2
}

// IntentType discriminates semantic actions produced from terminal events
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentQuit            // Esc, Ctrl+C, q
	IntentReset           // r - back to setup pose
	IntentToggleSound     // s
	IntentResize          // terminal resize
	IntentPointer         // Pointer carries the event
)

// Intent is the translated form of one terminal event
type Intent struct {
	Type    IntentType
	Pointer Event
}
