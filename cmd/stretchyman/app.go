package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stretchy-rig/audio"
	"github.com/lixenwraith/stretchy-rig/input"
	"github.com/lixenwraith/stretchy-rig/parameter"
	"github.com/lixenwraith/stretchy-rig/render"
	"github.com/lixenwraith/stretchy-rig/rigging"
	"github.com/lixenwraith/stretchy-rig/skeleton"
)

// App drives one stretchyman rig on a tcell screen
type App struct {
	screen tcell.Screen
	vp     render.Viewport
	skel   *skeleton.Skeleton
	rig    *rigging.Adjuster
	input  *input.Translator
	sound  *audio.Feedback

	frames int
}

// NewApp builds the rig from data; screen must already be initialized
func NewApp(screen tcell.Screen, data *skeleton.Data, scale float64, sound *audio.Feedback) (*App, error) {
	skel := skeleton.NewSkeleton(data)

	rig, err := rigging.NewAdjuster(skel, rigging.StretchymanLayout())
	if err != nil {
		return nil, fmt.Errorf("rig %q: %w", data.Name, err)
	}

	width, height := screen.Size()
	a := &App{
		screen: screen,
		vp:     render.NewViewport(width, height, scale),
		skel:   skel,
		rig:    rig,
		sound:  sound,
	}
	a.input = input.NewTranslator(rig, &a.vp)

	log.Printf("loaded %q: %d bones, %d controls", data.Name, len(skel.Bones()), len(rig.Controls()))
	return a, nil
}

// handle applies one terminal event, returning false when the app should exit
func (a *App) handle(ev tcell.Event) bool {
	intent := a.input.Process(ev)
	if intent == nil {
		return true
	}

	switch intent.Type {
	case input.IntentQuit:
		return false

	case input.IntentResize:
		a.screen.Sync()
		a.vp.Resize(a.screen.Size())

	case input.IntentReset:
		if err := a.rig.Reset(); err != nil {
			log.Printf("reset: %v", err)
		}

	case input.IntentToggleSound:
		muted := a.sound.ToggleMute()
		log.Printf("sound muted=%v", muted)

	case input.IntentPointer:
		a.handlePointer(intent.Pointer)
	}
	return true
}

func (a *App) handlePointer(ev input.Event) {
	_, wasGrabbed := a.rig.Grabbed()

	changed, err := a.rig.Handle(ev)
	if err != nil {
		log.Printf("pointer %v: %v", ev.Kind, err)
		return
	}
	if !changed {
		return
	}

	_, grabbed := a.rig.Grabbed()
	switch {
	case grabbed && !wasGrabbed:
		a.sound.PlayGrab()
	case !grabbed && wasGrabbed:
		a.sound.PlayRelease()
	}
}

// refresh re-derives the rig; called every frame
func (a *App) refresh() {
	if err := a.rig.RefreshAll(); err != nil {
		log.Printf("refresh: %v", err)
	}
	a.frames++
}

func (a *App) status() []string {
	parts := []string{a.skel.Data().Name, "drag the red handles", "r reset", "q quit"}
	if a.sound.Enabled() {
		parts = append(parts, "s mute")
	}
	if i, ok := a.rig.Grabbed(); ok {
		parts = append(parts, "dragging "+a.rig.Controls()[i].Name)
	}
	return parts
}

func (a *App) draw() {
	render.Draw(a.screen, a.vp, render.Scene{
		Skeleton: a.skel,
		Controls: a.rig.Controls(),
		Status:   a.status(),
	})
	a.screen.Show()
}

// run is the frame loop: events are applied as they arrive, the rig is refreshed and redrawn every tick
func (a *App) run() {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handle(ev) {
				log.Printf("exit after %d frames", a.frames)
				return
			}

		case <-ticker.C:
			a.refresh()
			a.draw()
		}
	}
}
