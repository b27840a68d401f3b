// Package gesture classifies hand landmark frames into discrete gestures and
// drives the debounced scene mode state machine.
package gesture

import "github.com/ayusman/deodar/internal/detector"

// Classification thresholds.
const (
	// CurlRatio is the squared-distance ratio below which a finger counts
	// as curled: wrist-to-tip < CurlRatio * wrist-to-PIP.
	CurlRatio = 1.2

	// PinchThreshold is the thumb-tip to index-tip distance below which the
	// hand counts as pinching, in normalized camera units.
	PinchThreshold = 0.05
)

// Reading is the ephemeral classification of one sampled hand frame.
// It carries no identity; each sample overwrites the last.
type Reading struct {
	IsFist     bool
	IsOpen     bool
	IsPinching bool
	PinchDist  float64

	// X and Y are the hand control position in [-1,1], derived from the
	// index finger base. X is mirrored to match the flipped camera view.
	X, Y float64
}

// fingerJoints lists (tip, PIP) landmark pairs for the four non-thumb fingers.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// Classify derives a Reading from one hand's landmarks. It is a pure
// function: no state is kept between calls.
func Classify(hand *detector.HandLandmarks) Reading {
	var r Reading
	if hand == nil {
		return r
	}

	wrist := hand.Points[detector.Wrist]

	curled := 0
	for _, f := range fingerJoints {
		tipSq := wrist.DistSq(hand.Points[f[0]])
		pipSq := wrist.DistSq(hand.Points[f[1]])
		if tipSq < CurlRatio*pipSq {
			curled++
		}
	}

	r.IsFist = curled >= 4
	r.IsOpen = curled <= 1

	r.PinchDist = hand.Points[detector.ThumbTip].Dist(hand.Points[detector.IndexTip])
	r.IsPinching = r.PinchDist < PinchThreshold && !r.IsFist

	// Index finger base is the control point; remap [0,1] camera space to
	// [-1,1] with X inverted so on-screen motion matches the mirrored feed.
	base := hand.Points[detector.IndexMCP]
	r.X = -(base.X*2 - 1)
	r.Y = base.Y*2 - 1

	return r
}
