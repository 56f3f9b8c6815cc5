package rigging

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/stretchy-rig/input"
	"github.com/lixenwraith/stretchy-rig/parameter"
	"github.com/lixenwraith/stretchy-rig/skeleton"
)

// Skeleton is the runtime surface the adjuster reads from and writes into
type Skeleton interface {
	FindBone(name string) *skeleton.Bone
	UpdateWorldTransform()
	SetToSetupPose()
}

// Control is a draggable marker bound to one controller bone
type Control struct {
	Name     string
	Bone     *skeleton.Bone
	Position mgl64.Vec2
	Dragging bool
}

type limbBones struct {
	limb       Limb
	middle     *skeleton.Bone
	anchor     *skeleton.Bone
	controller *skeleton.Bone
}

type handBones struct {
	follower *skeleton.Bone
	target   *skeleton.Bone
}

// Adjuster owns the resolved bones of one rig and re-derives dependent bones from controllers
// Not safe for concurrent use; drive it from the frame loop only
type Adjuster struct {
	skel     Skeleton
	limbs    []limbBones
	hands    []handBones
	head     [3]*skeleton.Bone // controller, anchor, head
	controls []Control
	grabbed  int
}

// NewAdjuster resolves every bone named by layout, then performs an initial refresh
func NewAdjuster(skel Skeleton, layout Layout) (*Adjuster, error) {
	a := &Adjuster{
		skel:    skel,
		grabbed: input.NoTarget,
	}

	var missing []error
	find := func(name string) *skeleton.Bone {
		b := skel.FindBone(name)
		if b == nil {
			missing = append(missing, fmt.Errorf("%w: %q", ErrBoneNotFound, name))
		}
		return b
	}

	for _, limb := range layout.Limbs {
		lb := limbBones{
			limb:       limb,
			middle:     find(limb.Middle),
			anchor:     find(limb.Anchor),
			controller: find(limb.Controller),
		}
		if lb.middle != nil && len(lb.middle.Children()) == 0 {
			missing = append(missing, fmt.Errorf("%w: %q", ErrNoChild, limb.Middle))
		}
		a.limbs = append(a.limbs, lb)
	}

	for _, hand := range layout.Hands {
		a.hands = append(a.hands, handBones{
			follower: find(hand.Follower),
			target:   find(hand.Target),
		})
	}

	a.head = [3]*skeleton.Bone{
		find(layout.Head.Controller),
		find(layout.Head.Anchor),
		find(layout.Head.Bone),
	}

	for _, name := range layout.Controls {
		a.controls = append(a.controls, Control{Name: name, Bone: find(name)})
	}

	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}

	if err := a.RefreshAll(); err != nil {
		return nil, err
	}
	return a, nil
}

// Controls returns the markers in draw order
func (a *Adjuster) Controls() []Control {
	return a.controls
}

// Grabbed returns the index of the control being dragged
func (a *Adjuster) Grabbed() (int, bool) {
	return a.grabbed, a.grabbed != input.NoTarget
}

// RefreshAll centers every limb, aims the hands and head, then snaps the markers to their bones
// It is a pure function of the current controller and anchor world positions
func (a *Adjuster) RefreshAll() error {
	for _, lb := range a.limbs {
		l := lb.limb
		if err := center(lb.middle, lb.anchor, lb.controller, l.RestLength, l.Direction, l.Bias); err != nil {
			return err
		}
	}

	// Elbows hang off the middles just moved
	a.skel.UpdateWorldTransform()

	for _, hb := range a.hands {
		if err := AimRotate(hb.follower, hb.target); err != nil {
			if errors.Is(err, ErrZeroLength) {
				// Hand sits on its elbow, keep the last rotation
				continue
			}
			return err
		}
	}

	AimHead(a.head[0], a.head[1], a.head[2])

	a.skel.UpdateWorldTransform()
	a.PositionControls()
	return nil
}

// PositionControls moves every marker onto its bone's world position
func (a *Adjuster) PositionControls() {
	for i := range a.controls {
		a.controls[i].Position = a.controls[i].Bone.WorldPosition()
	}
}

// Reset returns the rig to its setup pose and drops any grab
func (a *Adjuster) Reset() error {
	a.release()
	a.skel.SetToSetupPose()
	a.skel.UpdateWorldTransform()
	return a.RefreshAll()
}

// ControlAt returns the top-most control within the marker radius of p, input.NoTarget if none
// Controls are drawn in order, so the last one hit is on top
func (a *Adjuster) ControlAt(p mgl64.Vec2) int {
	for i := len(a.controls) - 1; i >= 0; i-- {
		if a.controls[i].Position.Sub(p).Len() <= parameter.ControlRadius {
			return i
		}
	}
	return input.NoTarget
}

// Handle applies one pointer event, reporting whether the rig or markers changed
func (a *Adjuster) Handle(ev input.Event) (bool, error) {
	switch ev.Kind {
	case input.PointerDown:
		if ev.Target < 0 || ev.Target >= len(a.controls) {
			return false, nil
		}
		a.release()
		a.grabbed = ev.Target
		a.controls[ev.Target].Dragging = true
		log.Printf("grab %q at %.1f,%.1f", a.controls[ev.Target].Name, ev.Pos[0], ev.Pos[1])
		return true, nil

	case input.PointerMove:
		if a.grabbed == input.NoTarget || ev.Target != a.grabbed {
			return false, nil
		}
		c := &a.controls[a.grabbed]
		if err := DragBone(c.Bone, ev.Pos); err != nil {
			return false, err
		}
		c.Position = ev.Pos
		a.skel.UpdateWorldTransform()
		return true, a.RefreshAll()

	case input.PointerUp:
		if a.grabbed == input.NoTarget {
			return false, nil
		}
		log.Printf("release %q", a.controls[a.grabbed].Name)
		a.release()
		return true, nil
	}
	return false, nil
}

func (a *Adjuster) release() {
	if a.grabbed != input.NoTarget {
		a.controls[a.grabbed].Dragging = false
	}
	a.grabbed = input.NoTarget
}

// DragBone moves bone so its origin lands on the world position p
// When the parent space is degenerate the bone keeps its local position
func DragBone(bone *skeleton.Bone, p mgl64.Vec2) error {
	local, err := bone.ParentWorldToLocal(p)
	if err != nil {
		return fmt.Errorf("drag %q: %w", bone.Name(), err)
	}
	bone.X, bone.Y = local[0], local[1]
	return nil
}
