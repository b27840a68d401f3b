// Package hook notifies external collaborators of scene mode changes by
// running executables found in a hooks directory. Each accepted transition
// is delivered as a JSON event on the hook's stdin.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// Event is the payload delivered to every hook on a mode change.
type Event struct {
	Event      string `json:"event"`
	Mode       string `json:"mode"`
	PhotoIndex int    `json:"photoIndex"`
}

// Runner discovers and executes mode-change hooks. Hook failures are
// logged, never fatal: the scene must not depend on its observers.
type Runner struct {
	dir     string
	timeout time.Duration
	mu      sync.RWMutex
	hooks   []string
}

// NewRunner creates a Runner for the given hooks directory.
func NewRunner(dir string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Runner{dir: dir, timeout: timeout}
}

// Discover scans the hooks directory for executable files. A missing
// directory simply yields no hooks.
func (r *Runner) Discover() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = nil

	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Mode()&0111 == 0 {
			continue
		}
		r.hooks = append(r.hooks, filepath.Join(r.dir, entry.Name()))
	}

	return nil
}

// Count returns the number of discovered hooks.
func (r *Runner) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// Notify runs every discovered hook with the given event. It blocks until
// all hooks finish or time out; callers that must not stall should invoke
// it from a goroutine.
func (r *Runner) Notify(ev Event) {
	r.mu.RLock()
	hooks := make([]string, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.RUnlock()

	if len(hooks) == 0 {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("hook: marshal event: %v", err)
		return
	}

	for _, path := range hooks {
		if err := r.run(path, payload); err != nil {
			log.Printf("hook %s: %v", filepath.Base(path), err)
		}
	}
}

func (r *Runner) run(path string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = bytes.NewReader(payload)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return context.DeadlineExceeded
	}
	if err != nil && stderr.Len() > 0 {
		log.Printf("hook %s stderr: %s", filepath.Base(path), stderr.String())
	}
	return err
}
