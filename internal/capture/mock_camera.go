package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a canned frame sequence so the detection pipeline
// can run without a device. Unlike the real camera it records SetFPS calls,
// letting tests observe the idle/active sampling switch.
type MockCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	mu      sync.Mutex
	running bool
	fps     int
}

// NewMockCamera creates a MockCamera over the given frames. With loop set,
// playback wraps around instead of running dry.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
		fps:    IdleFPS,
	}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// ReadFrame returns a clone of the next canned frame, so callers can close
// it without touching the original.
func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}

	if len(c.frames) == 0 {
		return nil, errors.New("no frames available")
	}

	if c.index >= len(c.frames) {
		if c.loop {
			c.index = 0
		} else {
			return nil, errors.New("no more frames")
		}
	}

	frame := c.frames[c.index].Clone()
	c.index++

	return &frame, nil
}

// SetFPS records the requested capture rate. Values <= 0 are ignored, like
// the real camera.
func (c *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

// FPS returns the last rate recorded by SetFPS, IdleFPS before any call.
func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetFrames swaps in a new frame sequence and restarts playback. Tests use
// this to change what the camera "sees" mid-run.
func (c *MockCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.index = 0
}

// Reset restarts playback from the first frame.
func (c *MockCamera) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}
