package rigging

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/stretchy-rig/parameter"
	"github.com/lixenwraith/stretchy-rig/skeleton"
)

// Center places limbMiddle halfway between anchor and controller and pops its first child
// sideways along the middle bone's local Y by max(0, restLength - distance*0.3) * direction
// World transforms of anchor and controller must be current
func Center(limbMiddle, anchor, controller *skeleton.Bone, restLength, direction float64) error {
	return center(limbMiddle, anchor, controller, restLength, direction, 0)
}

func center(limbMiddle, anchor, controller *skeleton.Bone, restLength, direction, bias float64) error {
	children := limbMiddle.Children()
	if len(children) == 0 {
		return fmt.Errorf("center %q: %w", limbMiddle.Name(), ErrNoChild)
	}

	from := anchor.WorldPosition()
	delta := controller.WorldPosition().Sub(from)
	distance := delta.Len()

	mid := from.Add(delta.Mul(parameter.LimbMidpoint))
	local, err := limbMiddle.ParentWorldToLocal(mid)
	if err != nil {
		return fmt.Errorf("center %q: %w", limbMiddle.Name(), err)
	}
	limbMiddle.X, limbMiddle.Y = local[0], local[1]

	children[0].Y = (bias + math.Max(0, restLength-distance*parameter.LimbCompression)) * direction
	return nil
}

// AimRotate turns follower so it points along the target-to-follower direction
// A zero-length direction leaves the rotation untouched and returns ErrZeroLength
func AimRotate(follower, target *skeleton.Bone) error {
	dir := follower.WorldPosition().Sub(target.WorldPosition())
	length := dir.Len()
	if length == 0 {
		return fmt.Errorf("aim %q at %q: %w", follower.Name(), target.Name(), ErrZeroLength)
	}
	dir = dir.Mul(1 / length)

	angle := aimAngle(dir)
	follower.Rotation = -angle
	return nil
}

// aimAngle maps a unit vector onto [0, 360) degrees, resolving the acos branch by the sign of y
func aimAngle(unit mgl64.Vec2) float64 {
	// Guard acos against rounding just past ±1
	x := mgl64.Clamp(unit[0], -1, 1)
	angle := mgl64.RadToDeg(math.Acos(x)) + parameter.HandAimBase
	if unit[1] < 0 {
		angle = parameter.FullTurnDeg - angle
	}
	return angle
}

// AimHead turns head toward the headController as seen from referenceAnchor,
// limited to ±90 degrees around the head's setup rotation
func AimHead(headController, referenceAnchor, head *skeleton.Bone) {
	head.Rotation = headRotation(headController.WorldPosition(), referenceAnchor.WorldPosition(), head.Data().Rotation)
}

func headRotation(controller, anchor mgl64.Vec2, rest float64) float64 {
	d := controller.Sub(anchor)
	angle := -mgl64.RadToDeg(math.Atan2(d[1], d[0]))
	angle = (angle - parameter.HeadAimOffset) * parameter.HeadAimGain
	return rest + math.Min(parameter.HeadTurnLimit, math.Abs(angle))*sign(angle)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
