package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/deodar/internal/capture"
	"github.com/ayusman/deodar/internal/gesture"
)

// runPipeline is the capture loop. It reads camera frames, gates the
// sampling rate on scene motion, and turns detected hands into gesture
// readings for the frame loop.
//
// Pipeline logic:
// 1. Start in idle mode (5 fps)
// 2. On motion detected, switch to active mode (15 fps)
// 3. Run hand detection on each frame, never more often than 50ms apart
// 4. Classify the first hand and feed the reading to the mode machine
// 5. After 2s without motion, switch back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()
	lastSample := time.Time{}

	frameInterval := time.Second / time.Duration(capture.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if hand control is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(capture.ActiveFPS)
					frameInterval = time.Second / time.Duration(capture.ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active sampling")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(capture.IdleFPS)
					frameInterval = time.Second / time.Duration(capture.IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle sampling")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			// Detection is expensive; rate-limit it independently of the
			// capture tick.
			if time.Since(lastSample) < capture.MinSampleInterval {
				frame.Close()
				continue
			}
			lastSample = time.Now()

			a.processFrame(frame)
		}
	}
}

// processFrame runs hand detection on one frame and feeds the result to
// the gesture machinery. It closes the frame.
func (a *App) processFrame(frame *gocv.Mat) {
	d := a.Detector()
	if d == nil {
		frame.Close()
		return
	}

	hands, err := d.Detect(frame)
	frame.Close()

	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return
	}

	if len(hands) == 0 {
		return
	}

	// One hand drives the scene; extra hands are ignored.
	reading := gesture.Classify(&hands[0])
	a.setReading(reading)

	if a.machine.Observe(reading, time.Now()) {
		log.Printf("Gesture switched mode to %s", a.machine.Mode())
	}
}
