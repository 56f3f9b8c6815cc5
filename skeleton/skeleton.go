package skeleton

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bone is a posed instance of BoneData
// X, Y, Rotation, ScaleX and ScaleY are the local transform relative to the parent bone
// World values are only valid after Skeleton.UpdateWorldTransform
type Bone struct {
	data     *BoneData
	skeleton *Skeleton
	parent   *Bone
	children []*Bone

	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64

	world mgl64.Mat3
}

// Accessors for the bone's setup data, tree links and last computed world matrix
func (b *Bone) Name() string        { return b.data.Name }
func (b *Bone) Data() *BoneData     { return b.data }
func (b *Bone) Parent() *Bone       { return b.parent }
func (b *Bone) Children() []*Bone   { return b.children }
func (b *Bone) World() mgl64.Mat3   { return b.world }
func (b *Bone) Skeleton() *Skeleton { return b.skeleton }

// WorldPosition returns the bone origin in world space
func (b *Bone) WorldPosition() mgl64.Vec2 {
	return mgl64.Vec2{b.world[6], b.world[7]}
}

// WorldX and WorldY are the components of WorldPosition
func (b *Bone) WorldX() float64 { return b.world[6] }
func (b *Bone) WorldY() float64 { return b.world[7] }

// WorldRotation returns the world-space angle of the bone's local X axis in degrees
func (b *Bone) WorldRotation() float64 {
	return mgl64.RadToDeg(math.Atan2(b.world[1], b.world[0]))
}

// Tip returns the world position of the bone end, Length along its local X axis
func (b *Bone) Tip() mgl64.Vec2 {
	return b.LocalToWorld(mgl64.Vec2{b.data.Length, 0})
}

// LocalToWorld transforms a point in this bone's local space to world space
func (b *Bone) LocalToWorld(p mgl64.Vec2) mgl64.Vec2 {
	return b.world.Mul3x1(p.Vec3(1)).Vec2()
}

// WorldToLocal transforms a world-space point into this bone's local space,
// the space its children's X and Y are expressed in
// A zero-scale bone collapses its space and returns ErrSingular
func (b *Bone) WorldToLocal(p mgl64.Vec2) (mgl64.Vec2, error) {
	if b.world.Det() == 0 {
		return mgl64.Vec2{}, fmt.Errorf("bone %q: %w", b.data.Name, ErrSingular)
	}
	return b.world.Inv().Mul3x1(p.Vec3(1)).Vec2(), nil
}

// SetToSetupPose restores the local transform from BoneData
func (b *Bone) SetToSetupPose() {
	b.X = b.data.X
	b.Y = b.data.Y
	b.Rotation = b.data.Rotation
	b.ScaleX = b.data.ScaleX
	b.ScaleY = b.data.ScaleY
}

func (b *Bone) local() mgl64.Mat3 {
	return mgl64.Translate2D(b.X, b.Y).
		Mul3(mgl64.HomogRotate2D(mgl64.DegToRad(b.Rotation))).
		Mul3(mgl64.Scale2D(b.ScaleX, b.ScaleY))
}

func (b *Bone) updateWorldTransform() {
	if b.parent == nil {
		b.world = mgl64.Translate2D(b.skeleton.x, b.skeleton.y).Mul3(b.local())
		return
	}
	b.world = b.parent.world.Mul3(b.local())
}

// Skeleton is a posed bone tree built from Data
type Skeleton struct {
	data   *Data
	bones  []*Bone
	byName map[string]*Bone
	x, y   float64
}

// NewSkeleton instantiates a skeleton in setup pose with world transforms computed
func NewSkeleton(data *Data) *Skeleton {
	s := &Skeleton{
		data:   data,
		bones:  make([]*Bone, 0, len(data.Bones)),
		byName: make(map[string]*Bone, len(data.Bones)),
	}

	for _, bd := range data.Bones {
		b := &Bone{data: bd, skeleton: s}
		if bd.Parent != nil {
			b.parent = s.bones[bd.Parent.Index]
			b.parent.children = append(b.parent.children, b)
		}
		s.bones = append(s.bones, b)
		s.byName[bd.Name] = b
	}

	s.SetToSetupPose()
	s.UpdateWorldTransform()
	return s
}

// Data and Bones expose the setup data and the bones in parent-first order
func (s *Skeleton) Data() *Data   { return s.data }
func (s *Skeleton) Bones() []*Bone { return s.bones }

// Root returns the first bone, nil for an empty skeleton
func (s *Skeleton) Root() *Bone {
	if len(s.bones) == 0 {
		return nil
	}
	return s.bones[0]
}

// FindBone returns the named bone, nil if absent
func (s *Skeleton) FindBone(name string) *Bone {
	return s.byName[name]
}

// Origin returns the skeleton position added to the root world transform
func (s *Skeleton) Origin() mgl64.Vec2 {
	return mgl64.Vec2{s.x, s.y}
}

// SetOrigin moves the whole skeleton; call UpdateWorldTransform afterwards
func (s *Skeleton) SetOrigin(p mgl64.Vec2) {
	s.x, s.y = p[0], p[1]
}

// SetToSetupPose resets every bone's local transform
func (s *Skeleton) SetToSetupPose() {
	for _, b := range s.bones {
		b.SetToSetupPose()
	}
}

// UpdateWorldTransform recomputes world matrices parent-first
func (s *Skeleton) UpdateWorldTransform() {
	for _, b := range s.bones {
		b.updateWorldTransform()
	}
}

// ParentWorldToLocal converts a world-space point into the space this bone's X and Y live in
// Root bones are positioned relative to the skeleton origin
func (b *Bone) ParentWorldToLocal(p mgl64.Vec2) (mgl64.Vec2, error) {
	if b.parent == nil {
		return p.Sub(b.skeleton.Origin()), nil
	}
	return b.parent.WorldToLocal(p)
}
