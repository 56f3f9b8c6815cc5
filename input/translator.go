package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// HitTester resolves the handle under a world position, NoTarget if none
type HitTester interface {
	ControlAt(p mgl64.Vec2) int
}

// Projector converts a terminal cell to world coordinates
type Projector interface {
	ToWorld(col, row int) mgl64.Vec2
}

// Translator turns tcell events into Intents
// tcell reports button state rather than transitions, so press and release are
// derived from the previous state; the handle grabbed on press stays the target
// of every move until release
type Translator struct {
	hits    HitTester
	proj    Projector
	pressed bool
	target  int
}

// NewTranslator creates a translator resolving handles through hits and cells through proj
func NewTranslator(hits HitTester, proj Projector) *Translator {
	return &Translator{
		hits:   hits,
		proj:   proj,
		target: NoTarget,
	}
}

// Pressed reports whether the primary button is held
func (t *Translator) Pressed() bool {
	return t.pressed
}

// Reset forgets any held button
func (t *Translator) Reset() {
	t.pressed = false
	t.target = NoTarget
}

// Process translates one event, returning nil when it carries no action
func (t *Translator) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.processKey(ev)
	case *tcell.EventMouse:
		return t.processMouse(ev)
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	}
	return nil
}

func (t *Translator) processKey(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return &Intent{Type: IntentQuit}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return &Intent{Type: IntentQuit}
		case 'r':
			t.Reset()
			return &Intent{Type: IntentReset}
		case 's':
			return &Intent{Type: IntentToggleSound}
		}
	}
	return nil
}

func (t *Translator) processMouse(ev *tcell.EventMouse) *Intent {
	col, row := ev.Position()
	pos := t.proj.ToWorld(col, row)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !t.pressed:
		t.pressed = true
		t.target = t.hits.ControlAt(pos)
		return &Intent{Type: IntentPointer, Pointer: Event{Kind: PointerDown, Target: t.target, Pos: pos}}

	case down && t.pressed:
		return &Intent{Type: IntentPointer, Pointer: Event{Kind: PointerMove, Target: t.target, Pos: pos}}

	case !down && t.pressed:
		target := t.target
		t.Reset()
		return &Intent{Type: IntentPointer, Pointer: Event{Kind: PointerUp, Target: target, Pos: pos}}
	}

	// Hover without a button held
	return nil
}
