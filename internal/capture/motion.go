package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// MotionDetector decides whether anything is moving in front of the camera
// using frame differencing with Gaussian blur for noise reduction. The
// detection pipeline uses it to fall back to a low idle sampling rate when
// nobody is waving at the tree.
type MotionDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

const (
	// blurKernel is the Gaussian blur kernel size (21x21).
	blurKernel = 21
	// diffThreshold is the binary threshold applied to the frame difference.
	diffThreshold = 25
)

// NewMotionDetector creates a MotionDetector. threshold is the percentage
// of pixels that must change between frames to count as motion (1.0 = 1%).
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Detect compares a frame against the previous one. Returns whether motion
// was detected and the percentage of pixels that changed. The first frame
// establishes the baseline and never reports motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changePercent > m.threshold, changePercent
}

// Reset clears the baseline so the next frame starts fresh.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// Close releases resources used by the motion detector.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// SetThreshold replaces the motion threshold. Values <= 0 are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.threshold = threshold
}
