package app

import (
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/deodar/internal/capture"
	"github.com/ayusman/deodar/internal/detector"
	"github.com/ayusman/deodar/internal/gesture"
)

// recordingDetector timestamps every Detect call so tests can check how
// often the pipeline actually runs hand detection.
type recordingDetector struct {
	*detector.MockDetector
	mu    sync.Mutex
	calls []time.Time
}

func (d *recordingDetector) Detect(frame *gocv.Mat) ([]detector.HandLandmarks, error) {
	d.mu.Lock()
	d.calls = append(d.calls, time.Now())
	d.mu.Unlock()
	return d.MockDetector.Detect(frame)
}

func (d *recordingDetector) times() []time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]time.Time, len(d.calls))
	copy(out, d.calls)
	return out
}

// movingFrames returns a looping dark/bright pair; every frame differs from
// the previous one, so the motion detector fires on each read.
func movingFrames(t *testing.T) []*gocv.Mat {
	t.Helper()
	dark := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	bright := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	bright.SetTo(gocv.NewScalar(255, 255, 255, 0))
	t.Cleanup(func() {
		dark.Close()
		bright.Close()
	})
	return []*gocv.Mat{&dark, &bright}
}

// stillFrames returns two identical frames, a scene with nothing moving.
func stillFrames(t *testing.T) []*gocv.Mat {
	t.Helper()
	a := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	b := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return []*gocv.Mat{&a, &b}
}

// newPipelineApp builds a test app whose capture loop reads canned frames.
func newPipelineApp(t *testing.T, frames []*gocv.Mat, det detector.Detector) (*App, *capture.MockCamera) {
	t.Helper()
	a := newTestApp(t)
	cam := capture.NewMockCamera(frames, true)
	a.camera = cam
	a.SetDetector(det)
	return a, cam
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestPipeline_MotionGatesSamplingRate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, cam := newPipelineApp(t, movingFrames(t), detector.NewMockDetector())

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	if cam.FPS() != capture.IdleFPS {
		t.Errorf("FPS before motion = %d, want IdleFPS %d", cam.FPS(), capture.IdleFPS)
	}

	// A changing scene promotes the camera to the active rate.
	if !waitFor(t, 2*time.Second, func() bool { return cam.FPS() == capture.ActiveFPS }) {
		t.Fatalf("FPS = %d, want ActiveFPS %d after motion", cam.FPS(), capture.ActiveFPS)
	}

	// Once the scene goes still, the idle timeout demotes it again.
	cam.SetFrames(stillFrames(t))
	timeout := time.Duration(IdleTimeoutMs)*time.Millisecond + 2*time.Second
	if !waitFor(t, timeout, func() bool { return cam.FPS() == capture.IdleFPS }) {
		t.Errorf("FPS = %d, want IdleFPS %d after idle timeout", cam.FPS(), capture.IdleFPS)
	}
}

func TestPipeline_DetectionRateLimited(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rec := &recordingDetector{MockDetector: detector.NewMockDetector()}
	a, _ := newPipelineApp(t, movingFrames(t), rec)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(1200 * time.Millisecond)
	a.Stop()

	calls := rec.times()
	if len(calls) < 3 {
		t.Fatalf("detector ran %d times, want at least 3", len(calls))
	}

	// Timestamps are taken inside the detector, a moment after the
	// pipeline's own clock, so allow a little scheduling slack.
	const slack = 10 * time.Millisecond
	for i := 1; i < len(calls); i++ {
		if gap := calls[i].Sub(calls[i-1]); gap < capture.MinSampleInterval-slack {
			t.Errorf("detection calls %d and %d only %v apart, want at least %v",
				i-1, i, gap, capture.MinSampleInterval)
		}
	}
}

func TestPipeline_GestureDrivesMode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

	a, _ := newPipelineApp(t, movingFrames(t), mock)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	// An open palm in front of the camera moves the scene to scatter.
	if !waitFor(t, 2*time.Second, func() bool { return a.Mode() == gesture.ModeScatter }) {
		t.Fatalf("mode = %s, want scatter from open palm", a.Mode())
	}

	// Closing the hand brings the tree back, once the debounce allows it.
	mock.SetHands([]detector.HandLandmarks{detector.FistLandmarks()})
	if !waitFor(t, gesture.DebounceWindow+2*time.Second, func() bool { return a.Mode() == gesture.ModeTree }) {
		t.Errorf("mode = %s, want tree from fist", a.Mode())
	}
}
