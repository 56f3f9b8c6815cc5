package rigging

import "errors"

var (
	// ErrBoneNotFound is returned when a layout names a bone the skeleton does not have
	ErrBoneNotFound = errors.New("bone not found")
	// ErrZeroLength is returned when an aim direction collapses to a point
	ErrZeroLength = errors.New("zero-length aim vector")
	// ErrNoChild is returned when a limb middle bone has no child to pop
	ErrNoChild = errors.New("limb middle bone has no child")
)
