// Package app wires the capture pipeline, gesture machine, and scene
// choreographer into a running application.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/deodar/internal/capture"
	"github.com/ayusman/deodar/internal/detector"
	"github.com/ayusman/deodar/internal/gesture"
	"github.com/ayusman/deodar/internal/hook"
	"github.com/ayusman/deodar/internal/scene"
)

// Pipeline timing constants.
const (
	// IdleTimeoutMs is how long after the last motion the camera drops
	// back to the idle sampling rate.
	IdleTimeoutMs = 2000
	// FrameRate is the scene advance and broadcast rate.
	FrameRate = 60
)

// Config holds configuration options for the application.
type Config struct {
	CameraID     int
	MotionThresh float64
	HookDir      string
	Scene        scene.Config
}

// App orchestrates hand capture, gesture classification, and the scene.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	machine  *gesture.Machine
	scene    *scene.Scene
	hooks    *hook.Runner

	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	wg        sync.WaitGroup
	observers []func(gesture.Mode)

	// Latest classified reading, handed from the capture pipeline to the
	// frame loop.
	readingMu  sync.Mutex
	reading    gesture.Reading
	hasReading bool

	subMu sync.Mutex
	subs  map[chan scene.Frame]struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		motion:  capture.NewMotionDetector(motionThreshold),
		machine: gesture.NewMachine(),
		scene:   scene.New(config.Scene),
		hooks:   hook.NewRunner(config.HookDir, 5*time.Second),
		enabled: true,
		subs:    make(map[chan scene.Frame]struct{}),
	}

	a.machine.OnChange(a.handleModeChange)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// handleModeChange runs on every accepted transition, gesture-driven or
// manual. Entering photo zoom from any other mode advances the active
// photo before the scene sees the new mode.
func (a *App) handleModeChange(from, to gesture.Mode) {
	if to == gesture.ModePhotoZoom && from != gesture.ModePhotoZoom {
		a.scene.Photos().Advance()
	}
	a.scene.SetMode(to)

	ev := hook.Event{
		Event:      "mode",
		Mode:       to.String(),
		PhotoIndex: a.scene.Photos().ActiveIndex(),
	}
	go a.hooks.Notify(ev)

	a.mu.RLock()
	observers := a.observers
	a.mu.RUnlock()
	for _, fn := range observers {
		fn(to)
	}
}

// OnModeChange registers an additional observer for accepted mode
// changes, e.g. the tray's mode display.
func (a *App) OnModeChange(fn func(gesture.Mode)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, fn)
}

// SetEnabled enables or disables hand control. The scene keeps animating
// either way; a disabled app simply stops feeding it gestures.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether hand control is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetMode switches the scene mode manually, bypassing the debounce.
func (a *App) SetMode(m gesture.Mode) {
	a.machine.Set(m)
}

// Mode returns the current scene mode.
func (a *App) Mode() gesture.Mode {
	return a.machine.Mode()
}

// HandleClick zooms to the clicked photo. The mode switch runs first so
// its advance-on-entry side effect cannot clobber the selection.
func (a *App) HandleClick(photoID string) bool {
	a.machine.Set(gesture.ModePhotoZoom)
	return a.scene.Photos().SetActive(photoID)
}

// DiscoverHooks scans the hook directory for mode-change executables.
func (a *App) DiscoverHooks() error {
	return a.hooks.Discover()
}

// Start opens the camera and begins the capture and frame loops.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	a.stopCh = make(chan struct{})

	// A camera failure leaves the scene running without hand control.
	if err := a.camera.Open(); err != nil {
		log.Printf("Camera unavailable (%v); scene runs without hand control", err)
	} else {
		a.camera.SetFPS(capture.IdleFPS)
		a.wg.Add(1)
		go a.runPipeline(a.stopCh)
	}

	a.wg.Add(1)
	go a.runFrameLoop(a.stopCh)

	log.Println("Scene started")
	return nil
}

// Stop halts the pipeline and frame loop and releases resources.
func (a *App) Stop() {
	a.mu.Lock()

	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Scene stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Scene returns the scene choreographer.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Machine returns the gesture mode machine.
func (a *App) Machine() *gesture.Machine {
	return a.machine
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

func (a *App) setReading(r gesture.Reading) {
	a.readingMu.Lock()
	a.reading = r
	a.hasReading = true
	a.readingMu.Unlock()
}

func (a *App) takeReading() (gesture.Reading, bool) {
	a.readingMu.Lock()
	defer a.readingMu.Unlock()
	if !a.hasReading {
		return gesture.Reading{}, false
	}
	a.hasReading = false
	return a.reading, true
}
