package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stretchy-rig/asset"
	"github.com/lixenwraith/stretchy-rig/audio"
	"github.com/lixenwraith/stretchy-rig/parameter"
	"github.com/lixenwraith/stretchy-rig/skeleton"
)

var (
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/stretchyman.log")
	soundFlag    = flag.Bool("sound", false, "Play tones on grab and release")
	skeletonFlag = flag.String("skeleton", "", "Spine JSON skeleton to load instead of the built-in stretchyman")
	scaleFlag    = flag.Float64("scale", parameter.WorldPerColumn, "World units per terminal column")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	data, err := loadSkeleton(*skeletonFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load skeleton: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseDragEvents)

	// Panic Recovery: restore the terminal before printing the stack
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSTRETCHYMAN CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	sound := audio.NewFeedback()
	if *soundFlag {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the rig works without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	app, err := NewApp(screen, data, *scaleFlag, sound)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to build rig: %v\n", err)
		os.Exit(1)
	}

	app.run()

	sound.Cleanup()
	screen.Fini()
}

func loadSkeleton(path string) (*skeleton.Data, error) {
	if path == "" {
		return asset.Stretchyman()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return skeleton.ParseJSON(path, raw)
}
