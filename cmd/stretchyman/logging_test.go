package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogging_DiscardsWithoutDebug(t *testing.T) {
	chdir(t, t.TempDir())
	defer log.SetOutput(os.Stderr)

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("Expected nil log file when debug is off")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory when debug is off")
	}
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	chdir(t, t.TempDir())
	defer log.SetOutput(os.Stderr)

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected log file when debug is on")
	}
	defer f.Close()

	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Fatal("Log output must not share the terminal")
	}

	log.Printf("grab %q", "head controller")

	raw, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(raw), `grab "head controller"`) {
		t.Errorf("Expected log line in file, got %q", raw)
	}
}

func TestSetupLogging_RotatesLargeFile(t *testing.T) {
	chdir(t, t.TempDir())
	defer log.SetOutput(os.Stderr)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write oversized log: %v", err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("Expected log file after rotation")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotated := 0
	for _, e := range entries {
		if e.Name() != logFileName && strings.HasSuffix(e.Name(), ".log") {
			rotated++
		}
	}
	if rotated != 1 {
		t.Errorf("Expected 1 rotated log, found %d", rotated)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected fresh log under %d bytes, got %d", maxLogSize, info.Size())
	}
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}
