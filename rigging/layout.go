package rigging

import (
	"github.com/lixenwraith/stretchy-rig/parameter"
)

// Limb describes one anchor-to-controller chain whose middle bone is centered each refresh
type Limb struct {
	Middle     string
	Anchor     string
	Controller string
	RestLength float64
	Direction  float64
	Bias       float64
}

// Hand names a controller bone aimed away from its elbow
type Hand struct {
	Follower string
	Target   string
}

// Head names the bones driving the head turn
type Head struct {
	Controller string
	Anchor     string
	Bone       string
}

// Layout is the full set of bone names an Adjuster resolves
type Layout struct {
	Limbs    []Limb
	Hands    []Hand
	Head     Head
	Controls []string
}

// StretchymanLayout returns the bone layout of the stretchyman rig
func StretchymanLayout() Layout {
	return Layout{
		Limbs: []Limb{
			{"back leg middle", "back leg 1", "back leg controller", parameter.LegRestLength, parameter.LegBendDirection, parameter.KneeBias},
			{"front leg middle", "front leg 1", "front leg controller", parameter.LegRestLength, parameter.LegBendDirection, parameter.KneeBias},
			{"front arm middle", "front arm 1", "front arm controller", parameter.ArmRestLength, parameter.ArmBendDirection, parameter.KneeBias},
			{"back arm middle", "back arm 1", "back arm controller", parameter.ArmRestLength, parameter.ArmBendDirection, parameter.KneeBias},
		},
		Hands: []Hand{
			{Follower: "front arm controller", Target: "front arm elbow"},
			{Follower: "back arm controller", Target: "back arm elbow"},
		},
		Head: Head{
			Controller: "head controller",
			Anchor:     "hip controller",
			Bone:       "head",
		},
		Controls: []string{
			"back leg controller",
			"front leg controller",
			"back arm controller",
			"front arm controller",
			"head controller",
			"hip controller",
		},
	}
}
