package skeleton

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNoBones       = errors.New("skeleton has no bones")
	ErrDuplicateBone = errors.New("duplicate bone name")
	ErrUnknownParent = errors.New("parent bone not defined before child")
	ErrSingular      = errors.New("bone transform is not invertible")
)

// BoneData is the setup pose of a single bone, shared by every skeleton built from the same Data
type BoneData struct {
	Index    int
	Name     string
	Parent   *BoneData
	Length   float64
	X, Y     float64
	Rotation float64 // degrees, counter-clockwise
	ScaleX   float64
	ScaleY   float64
}

// Data is the immutable bone hierarchy of a character, parents ordered before children
type Data struct {
	Name    string
	Hash    string
	Version string
	Width   float64
	Height  float64
	Bones   []*BoneData
}

// FindBone returns setup data for the named bone, nil if absent
func (d *Data) FindBone(name string) *BoneData {
	for _, b := range d.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// jsonSkeleton mirrors the subset of the Spine export format read here
// Slots, skins, attachments, constraints and animations are ignored
type jsonSkeleton struct {
	Skeleton struct {
		Hash   string  `json:"hash"`
		Spine  string  `json:"spine"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"skeleton"`
	Bones []jsonBone `json:"bones"`
}

type jsonBone struct {
	Name     string   `json:"name"`
	Parent   string   `json:"parent"`
	Length   float64  `json:"length"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation float64  `json:"rotation"`
	ScaleX   *float64 `json:"scaleX"`
	ScaleY   *float64 `json:"scaleY"`
}

// ParseJSON builds skeleton Data from Spine-style JSON
func ParseJSON(name string, raw []byte) (*Data, error) {
	var js jsonSkeleton
	if err := json.Unmarshal(raw, &js); err != nil {
		return nil, fmt.Errorf("parse skeleton %q: %w", name, err)
	}
	if len(js.Bones) == 0 {
		return nil, fmt.Errorf("parse skeleton %q: %w", name, ErrNoBones)
	}

	data := &Data{
		Name:    name,
		Hash:    js.Skeleton.Hash,
		Version: js.Skeleton.Spine,
		Width:   js.Skeleton.Width,
		Height:  js.Skeleton.Height,
		Bones:   make([]*BoneData, 0, len(js.Bones)),
	}

	byName := make(map[string]*BoneData, len(js.Bones))
	for i, jb := range js.Bones {
		if _, exists := byName[jb.Name]; exists {
			return nil, fmt.Errorf("parse skeleton %q: bone %q: %w", name, jb.Name, ErrDuplicateBone)
		}

		bd := &BoneData{
			Index:    i,
			Name:     jb.Name,
			Length:   jb.Length,
			X:        jb.X,
			Y:        jb.Y,
			Rotation: jb.Rotation,
			ScaleX:   1,
			ScaleY:   1,
		}
		if jb.ScaleX != nil {
			bd.ScaleX = *jb.ScaleX
		}
		if jb.ScaleY != nil {
			bd.ScaleY = *jb.ScaleY
		}

		if jb.Parent != "" {
			parent, ok := byName[jb.Parent]
			if !ok {
				return nil, fmt.Errorf("parse skeleton %q: bone %q parent %q: %w", name, jb.Name, jb.Parent, ErrUnknownParent)
			}
			bd.Parent = parent
		}

		byName[jb.Name] = bd
		data.Bones = append(data.Bones, bd)
	}

	return data, nil
}
