package parameter

import "time"

// Limb centering: knee/elbow pop = (bias + max(0, rest - distance*compression)) * direction
const (
	LegRestLength    = 65.0
	ArmRestLength    = 90.0
	LegBendDirection = 1.0
	ArmBendDirection = -1.0
	LimbCompression  = 0.3
	LimbMidpoint     = 0.5
	// KneeBias is the constant pop carried by the stretchyman limb table on top of the compression term
	KneeBias = 22.0
)

// Head aiming: rotation = rest + clamp((angle - HeadAimOffset) * HeadAimGain, ±HeadTurnLimit)
const (
	HeadAimOffset = 90.0
	HeadAimGain   = 2.5
	HeadTurnLimit = 90.0
)

// Hand aiming
const (
	HandAimBase = 180.0
	FullTurnDeg = 360.0
)

// Controls
const (
	ControlRadius = 20.0 // world units, hit-test and marker size
)

// Terminal viewport
const (
	// WorldPerColumn is the world distance covered by one terminal column at scale 1
	WorldPerColumn = 5.0
	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0
	// GroundMargin is the number of rows kept below the skeleton origin
	GroundMargin = 2

	FrameInterval = 16 * time.Millisecond
)

// Feedback tones
const (
	GrabToneFreq    = 660.0
	ReleaseToneFreq = 440.0
	ToneDuration    = 60 * time.Millisecond
	ToneAttack      = 5 * time.Millisecond
	ToneRelease     = 30 * time.Millisecond
	ToneVolume      = 0.3
	ToneSampleRate  = 44100
)
