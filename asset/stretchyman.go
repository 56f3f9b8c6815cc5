package asset

import (
	"github.com/lixenwraith/stretchy-rig/skeleton"
)

// StretchymanName is the skeleton name reported by Stretchyman
const StretchymanName = "stretchyman"

// Stretchyman parses the embedded stretchyman skeleton
func Stretchyman() (*skeleton.Data, error) {
	return skeleton.ParseJSON(StretchymanName, []byte(DefaultStretchymanSkeleton))
}

// DefaultStretchymanSkeleton is the bone list of the stretchyman rig in Spine JSON layout
// World space is y-down; the root sits between the feet
const DefaultStretchymanSkeleton = `{
  "skeleton": { "hash": "stretchyman-terminal", "spine": "3.4.02", "width": 264, "height": 372 },
  "bones": [
    { "name": "root" },

    { "name": "hip controller", "parent": "root", "y": -130 },
    { "name": "hip", "parent": "hip controller" },
    { "name": "torso", "parent": "hip", "length": 110, "rotation": -90 },
    { "name": "head", "parent": "torso", "length": 50, "x": 115 },

    { "name": "back leg 1", "parent": "hip", "length": 20, "x": -12, "y": 5, "rotation": 90 },
    { "name": "back leg middle", "parent": "back leg 1", "length": 10, "x": 60 },
    { "name": "back leg 2", "parent": "back leg middle", "length": 20 },

    { "name": "front leg 1", "parent": "hip", "length": 20, "x": 12, "y": 5, "rotation": 90 },
    { "name": "front leg middle", "parent": "front leg 1", "length": 10, "x": 60 },
    { "name": "front leg 2", "parent": "front leg middle", "length": 20 },

    { "name": "back arm 1", "parent": "torso", "length": 15, "x": 100, "y": -15, "rotation": 180 },
    { "name": "back arm middle", "parent": "back arm 1", "length": 10, "x": 45 },
    { "name": "back arm elbow", "parent": "back arm middle", "length": 25 },

    { "name": "front arm 1", "parent": "torso", "length": 15, "x": 100, "y": 15, "rotation": 180 },
    { "name": "front arm middle", "parent": "front arm 1", "length": 10, "x": 45 },
    { "name": "front arm elbow", "parent": "front arm middle", "length": 25 },

    { "name": "head controller", "parent": "root", "y": -300 },
    { "name": "back leg controller", "parent": "root", "length": 18, "x": -30 },
    { "name": "front leg controller", "parent": "root", "length": 18, "x": 30 },
    { "name": "back arm controller", "parent": "root", "length": 18, "x": -90, "y": -150 },
    { "name": "front arm controller", "parent": "root", "length": 18, "x": 90, "y": -150 }
  ]
}
`
