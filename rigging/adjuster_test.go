package rigging

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/stretchy-rig/asset"
	"github.com/lixenwraith/stretchy-rig/input"
	"github.com/lixenwraith/stretchy-rig/parameter"
	"github.com/lixenwraith/stretchy-rig/skeleton"
)

type pose struct {
	x, y, rotation float64
}

func snapshot(s *skeleton.Skeleton) map[string]pose {
	out := make(map[string]pose, len(s.Bones()))
	for _, b := range s.Bones() {
		out[b.Name()] = pose{b.X, b.Y, b.Rotation}
	}
	return out
}

func newStretchyman(t *testing.T) (*skeleton.Skeleton, *Adjuster) {
	t.Helper()
	data, err := asset.Stretchyman()
	if err != nil {
		t.Fatalf("Failed to parse stretchyman: %v", err)
	}
	s := skeleton.NewSkeleton(data)
	a, err := NewAdjuster(s, StretchymanLayout())
	if err != nil {
		t.Fatalf("NewAdjuster failed: %v", err)
	}
	return s, a
}

func controlIndex(t *testing.T, a *Adjuster, name string) int {
	t.Helper()
	for i, c := range a.Controls() {
		if c.Name == name {
			return i
		}
	}
	t.Fatalf("No control %q", name)
	return input.NoTarget
}

func TestNewAdjuster_ResolvesStretchyman(t *testing.T) {
	_, a := newStretchyman(t)

	if got := len(a.Controls()); got != 6 {
		t.Fatalf("Expected 6 controls, got %d", got)
	}
	for _, c := range a.Controls() {
		if c.Position != c.Bone.WorldPosition() {
			t.Errorf("Control %q at %v, bone at %v", c.Name, c.Position, c.Bone.WorldPosition())
		}
	}
	if _, ok := a.Grabbed(); ok {
		t.Error("Expected nothing grabbed initially")
	}
}

func TestNewAdjuster_MissingBones(t *testing.T) {
	data, err := asset.Stretchyman()
	if err != nil {
		t.Fatalf("Failed to parse stretchyman: %v", err)
	}
	s := skeleton.NewSkeleton(data)

	layout := StretchymanLayout()
	layout.Head.Bone = "skull"
	layout.Hands[0].Target = "front arm wrist"

	_, err = NewAdjuster(s, layout)
	if !errors.Is(err, ErrBoneNotFound) {
		t.Fatalf("Expected ErrBoneNotFound, got %v", err)
	}
	for _, name := range []string{`"skull"`, `"front arm wrist"`} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Expected error to name %s, got %q", name, err)
		}
	}
}

func TestNewAdjuster_MiddleWithoutChild(t *testing.T) {
	data, _ := asset.Stretchyman()
	s := skeleton.NewSkeleton(data)

	layout := StretchymanLayout()
	layout.Limbs[0].Middle = "back leg 2"

	if _, err := NewAdjuster(s, layout); !errors.Is(err, ErrNoChild) {
		t.Errorf("Expected ErrNoChild, got %v", err)
	}
}

func TestRefreshAll_Idempotent(t *testing.T) {
	s, a := newStretchyman(t)

	// Pose the controllers somewhere off setup first
	moves := map[string]mgl64.Vec2{
		"front arm controller": {120, -220},
		"back leg controller":  {-70, -10},
		"head controller":      {40, -280},
		"hip controller":       {10, -110},
	}
	for name, p := range moves {
		if err := DragBone(s.FindBone(name), p); err != nil {
			t.Fatalf("DragBone %q failed: %v", name, err)
		}
	}
	s.UpdateWorldTransform()

	if err := a.RefreshAll(); err != nil {
		t.Fatalf("First refresh failed: %v", err)
	}
	first := snapshot(s)
	markers := append([]Control(nil), a.Controls()...)

	if err := a.RefreshAll(); err != nil {
		t.Fatalf("Second refresh failed: %v", err)
	}
	second := snapshot(s)

	for name, p := range first {
		if second[name] != p {
			t.Errorf("Bone %q changed between refreshes: %+v -> %+v", name, p, second[name])
		}
	}
	for i, c := range a.Controls() {
		if c.Position != markers[i].Position {
			t.Errorf("Marker %q moved: %v -> %v", c.Name, markers[i].Position, c.Position)
		}
	}
}

func TestRefreshAll_WritesDependentBones(t *testing.T) {
	s, a := newStretchyman(t)

	anchor := s.FindBone("front leg 1").WorldPosition()
	ctrl := s.FindBone("front leg controller").WorldPosition()
	mid := anchor.Add(ctrl).Mul(0.5)

	if err := a.RefreshAll(); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	middle := s.FindBone("front leg middle")
	if got := middle.WorldPosition(); got.Sub(mid).Len() > epsilon {
		t.Errorf("Front leg middle at %v, want midpoint %v", got, mid)
	}

	dist := ctrl.Sub(anchor).Len()
	wantPop := (parameter.KneeBias + max(0, parameter.LegRestLength-dist*parameter.LimbCompression)) * parameter.LegBendDirection
	if got := s.FindBone("front leg 2").Y; math.Abs(got-wantPop) > epsilon {
		t.Errorf("Front leg pop = %v, want %v", got, wantPop)
	}

	hand := s.FindBone("back arm controller")
	elbow := s.FindBone("back arm elbow")
	dir := hand.WorldPosition().Sub(elbow.WorldPosition()).Normalize()
	if want := -aimAngle(dir); math.Abs(hand.Rotation-want) > 1e-6 {
		t.Errorf("Back hand rotation = %v, want %v", hand.Rotation, want)
	}
}

func TestHandle_DragRoundTrip(t *testing.T) {
	s, a := newStretchyman(t)
	i := controlIndex(t, a, "front leg controller")
	target := mgl64.Vec2{55, -25}

	changed, err := a.Handle(input.Event{Kind: input.PointerDown, Target: i, Pos: a.Controls()[i].Position})
	if err != nil || !changed {
		t.Fatalf("Down: changed=%v err=%v", changed, err)
	}
	if got, ok := a.Grabbed(); !ok || got != i {
		t.Fatalf("Expected control %d grabbed, got %d/%v", i, got, ok)
	}
	if !a.Controls()[i].Dragging {
		t.Error("Expected grabbed control to be dragging")
	}

	changed, err = a.Handle(input.Event{Kind: input.PointerMove, Target: i, Pos: target})
	if err != nil || !changed {
		t.Fatalf("Move: changed=%v err=%v", changed, err)
	}

	c := a.Controls()[i]
	if c.Position.Sub(target).Len() > epsilon {
		t.Errorf("Marker at %v, want %v", c.Position, target)
	}
	if got := s.FindBone("front leg controller").WorldPosition(); got.Sub(target).Len() > epsilon {
		t.Errorf("Bone world at %v, want %v", got, target)
	}

	changed, err = a.Handle(input.Event{Kind: input.PointerUp, Target: i, Pos: target})
	if err != nil || !changed {
		t.Fatalf("Up: changed=%v err=%v", changed, err)
	}
	if _, ok := a.Grabbed(); ok || a.Controls()[i].Dragging {
		t.Error("Expected release")
	}
}

func TestHandle_DragNestedControl(t *testing.T) {
	s, a := newStretchyman(t)
	i := controlIndex(t, a, "hip controller")
	target := mgl64.Vec2{-20, -90}

	a.Handle(input.Event{Kind: input.PointerDown, Target: i})
	if _, err := a.Handle(input.Event{Kind: input.PointerMove, Target: i, Pos: target}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	// The hip follows its controller, legs re-center on the moved anchors
	if got := s.FindBone("hip").WorldPosition(); got.Sub(target).Len() > epsilon {
		t.Errorf("Hip at %v, want %v", got, target)
	}
	anchor := s.FindBone("back leg 1").WorldPosition()
	ctrl := s.FindBone("back leg controller").WorldPosition()
	if got := s.FindBone("back leg middle").WorldPosition(); got.Sub(anchor.Add(ctrl).Mul(0.5)).Len() > epsilon {
		t.Errorf("Back leg middle at %v not at midpoint", got)
	}
}

func TestHandle_IgnoresStrayEvents(t *testing.T) {
	_, a := newStretchyman(t)

	tests := []input.Event{
		{Kind: input.PointerDown, Target: input.NoTarget},
		{Kind: input.PointerDown, Target: 99},
		{Kind: input.PointerMove, Target: 0, Pos: mgl64.Vec2{1, 1}},
		{Kind: input.PointerUp, Target: 0},
		{Kind: input.PointerNone},
	}
	for _, ev := range tests {
		changed, err := a.Handle(ev)
		if changed || err != nil {
			t.Errorf("Event %+v: changed=%v err=%v", ev, changed, err)
		}
	}

	// Move aimed at another handle than the grabbed one
	a.Handle(input.Event{Kind: input.PointerDown, Target: 1})
	before := a.Controls()[0].Position
	if changed, _ := a.Handle(input.Event{Kind: input.PointerMove, Target: 0, Pos: mgl64.Vec2{9, 9}}); changed {
		t.Error("Expected move on non-grabbed handle to be ignored")
	}
	if a.Controls()[0].Position != before {
		t.Error("Non-grabbed marker moved")
	}
}

func TestControlAt(t *testing.T) {
	_, a := newStretchyman(t)
	head := controlIndex(t, a, "head controller")
	p := a.Controls()[head].Position

	if got := a.ControlAt(p.Add(mgl64.Vec2{parameter.ControlRadius - 1, 0})); got != head {
		t.Errorf("Expected hit on head controller, got %d", got)
	}
	if got := a.ControlAt(p.Add(mgl64.Vec2{0, -parameter.ControlRadius - 1})); got != input.NoTarget {
		t.Errorf("Expected miss, got %d", got)
	}
}

func TestControlAt_TopMostWins(t *testing.T) {
	_, a := newStretchyman(t)
	last := len(a.Controls()) - 1

	// Both handles cover the point; the first is nearer but drawn underneath
	a.controls[0].Position = mgl64.Vec2{0, 0}
	a.controls[last].Position = mgl64.Vec2{10, 0}

	if got := a.ControlAt(mgl64.Vec2{2, 0}); got != last {
		t.Errorf("Expected top-most control %d, got %d", last, got)
	}
	if got := a.ControlAt(mgl64.Vec2{-15, 0}); got != 0 {
		t.Errorf("Expected control 0 outside the top handle, got %d", got)
	}
}

func TestDragBone_DegenerateParent(t *testing.T) {
	s, a := newStretchyman(t)
	i := controlIndex(t, a, "head controller")
	c := a.Controls()[i]
	before := pose{c.Bone.X, c.Bone.Y, c.Bone.Rotation}
	marker := c.Position

	s.Root().ScaleX = 0
	s.UpdateWorldTransform()

	if err := DragBone(c.Bone, mgl64.Vec2{30, 40}); !errors.Is(err, skeleton.ErrSingular) {
		t.Fatalf("Expected ErrSingular, got %v", err)
	}
	if got := (pose{c.Bone.X, c.Bone.Y, c.Bone.Rotation}); got != before {
		t.Errorf("Bone moved to %+v, want %+v", got, before)
	}

	a.Handle(input.Event{Kind: input.PointerDown, Target: i})
	changed, err := a.Handle(input.Event{Kind: input.PointerMove, Target: i, Pos: mgl64.Vec2{30, 40}})
	if changed || !errors.Is(err, skeleton.ErrSingular) {
		t.Errorf("Expected unchanged move with ErrSingular, got %v/%v", changed, err)
	}
	if got := a.Controls()[i].Position; got != marker {
		t.Errorf("Marker moved to %v, want %v", got, marker)
	}
}

func TestReset(t *testing.T) {
	s, a := newStretchyman(t)
	setup := snapshot(s)

	i := controlIndex(t, a, "back arm controller")
	a.Handle(input.Event{Kind: input.PointerDown, Target: i})
	a.Handle(input.Event{Kind: input.PointerMove, Target: i, Pos: mgl64.Vec2{-150, -60}})

	if err := a.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if _, ok := a.Grabbed(); ok {
		t.Error("Expected grab dropped by reset")
	}
	for name, p := range snapshot(s) {
		if setup[name] != p {
			t.Errorf("Bone %q = %+v after reset, want %+v", name, p, setup[name])
		}
	}
}
