// Package capture acquires video frames from a camera device using GoCV
// (OpenCV) and gates hand-detection sampling on scene motion.
package capture

import (
	"errors"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Sampling limits. Hand detection is expensive, so detection consumers
// never sample frames more often than MinSampleInterval regardless of the
// capture rate.
const (
	IdleFPS       = 5
	ActiveFPS     = 15
	DefaultWidth  = 640
	DefaultHeight = 480

	MinSampleInterval = 50 * time.Millisecond
)

// ErrCameraNotOpen is returned when reading from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// cameraImpl manages video capture from a camera device using GoCV.
type cameraImpl struct {
	deviceID int
	width    int
	height   int
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
	fps      int
}

// NewCamera creates a Camera for the given device ID at the default idle
// sampling rate and 640x480 resolution.
func NewCamera(deviceID int) Camera {
	return &cameraImpl{
		deviceID: deviceID,
		width:    DefaultWidth,
		height:   DefaultHeight,
		fps:      IdleFPS,
	}
}

// Open acquires the camera device. This is a one-time async setup step;
// callers must tolerate failure, which leaves the scene running without
// hand control.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return err
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(c.height))
	capture.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.capture = capture
	c.running = true

	return nil
}

// Close releases the camera device.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera.
// The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, errors.New("failed to read frame from camera")
	}

	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// SetFPS sets the capture rate. Values <= 0 are ignored.
func (c *cameraImpl) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps

	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current capture rate setting.
func (c *cameraImpl) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fps
}

// IsOpen returns true if the camera is currently open.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
