package hook

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeHook(t *testing.T, dir, name, script string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), mode); err != nil {
		t.Fatalf("write hook: %v", err)
	}
	return path
}

func TestRunner_Discover(t *testing.T) {
	t.Run("missing directory yields no hooks", func(t *testing.T) {
		r := NewRunner(filepath.Join(t.TempDir(), "absent"), time.Second)
		if err := r.Discover(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Count() != 0 {
			t.Errorf("expected 0 hooks, got %d", r.Count())
		}
	})

	t.Run("only executable files are picked up", func(t *testing.T) {
		dir := t.TempDir()
		writeHook(t, dir, "on-mode", "#!/bin/sh\nexit 0\n", 0755)
		writeHook(t, dir, "notes.txt", "not a hook", 0644)
		if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
			t.Fatal(err)
		}

		r := NewRunner(dir, time.Second)
		if err := r.Discover(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Count() != 1 {
			t.Errorf("expected 1 hook, got %d", r.Count())
		}
	})
}

func TestRunner_Notify(t *testing.T) {
	t.Run("delivers the event as json on stdin", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "captured.json")
		writeHook(t, dir, "capture", "#!/bin/sh\ncat > "+out+"\n", 0755)

		r := NewRunner(dir, 2*time.Second)
		if err := r.Discover(); err != nil {
			t.Fatal(err)
		}

		r.Notify(Event{Event: "mode", Mode: "photo_zoom", PhotoIndex: 2})

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("hook did not run: %v", err)
		}
		want := `{"event":"mode","mode":"photo_zoom","photoIndex":2}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("a failing hook does not stop the rest", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "ran")
		writeHook(t, dir, "a-fails", "#!/bin/sh\nexit 1\n", 0755)
		writeHook(t, dir, "b-runs", "#!/bin/sh\ntouch "+out+"\n", 0755)

		r := NewRunner(dir, 2*time.Second)
		if err := r.Discover(); err != nil {
			t.Fatal(err)
		}

		r.Notify(Event{Event: "mode", Mode: "tree"})

		if _, err := os.Stat(out); err != nil {
			t.Error("second hook should run despite the first failing")
		}
	})

	t.Run("hung hooks are cut off by the timeout", func(t *testing.T) {
		dir := t.TempDir()
		writeHook(t, dir, "sleeper", "#!/bin/sh\nsleep 30\n", 0755)

		r := NewRunner(dir, 100*time.Millisecond)
		if err := r.Discover(); err != nil {
			t.Fatal(err)
		}

		start := time.Now()
		r.Notify(Event{Event: "mode", Mode: "scatter"})
		if time.Since(start) > 5*time.Second {
			t.Error("notify should return shortly after the timeout")
		}
	})
}
