package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/deodar/internal/detector"
)

func TestClassify(t *testing.T) {
	t.Run("fist fixture reads as fist", func(t *testing.T) {
		hand := detector.FistLandmarks()

		r := Classify(&hand)

		if !r.IsFist {
			t.Error("expected IsFist for fist landmarks")
		}
		if r.IsOpen {
			t.Error("fist must not read as open")
		}
		if r.IsPinching {
			t.Error("fist must never read as pinching")
		}
	})

	t.Run("open palm fixture reads as open", func(t *testing.T) {
		hand := detector.OpenPalmLandmarks()

		r := Classify(&hand)

		if !r.IsOpen {
			t.Error("expected IsOpen for open palm landmarks")
		}
		if r.IsFist {
			t.Error("open palm must not read as fist")
		}
		if r.IsPinching {
			t.Error("open palm must not read as pinching")
		}
	})

	t.Run("pinch fixture reads as pinching and open", func(t *testing.T) {
		hand := detector.PinchLandmarks()

		r := Classify(&hand)

		if !r.IsPinching {
			t.Errorf("expected IsPinching, pinch distance %f", r.PinchDist)
		}
		if r.PinchDist >= PinchThreshold {
			t.Errorf("expected pinch distance < %f, got %f", PinchThreshold, r.PinchDist)
		}
		// OK-sign ambiguity: both flags legitimately true at once.
		if !r.IsOpen {
			t.Error("OK-sign pinch should also read as open")
		}
	})

	t.Run("pinch distance under threshold with fist is not a pinch", func(t *testing.T) {
		hand := detector.FistLandmarks()
		// Force thumb and index tips together.
		hand.Points[detector.ThumbTip] = hand.Points[detector.IndexTip]

		r := Classify(&hand)

		if !r.IsFist {
			t.Fatal("fixture no longer reads as fist")
		}
		if r.IsPinching {
			t.Error("IsPinching must be false whenever IsFist holds")
		}
	})

	t.Run("nil hand yields inert reading", func(t *testing.T) {
		r := Classify(nil)

		if r.IsFist || r.IsOpen || r.IsPinching {
			t.Errorf("expected all-false reading for nil hand, got %+v", r)
		}
		if r.X != 0 || r.Y != 0 {
			t.Errorf("expected origin position, got (%f, %f)", r.X, r.Y)
		}
	})

	t.Run("hand position remaps to [-1,1] with X mirrored", func(t *testing.T) {
		var hand detector.HandLandmarks
		hand.Points[detector.IndexMCP] = detector.Point3D{X: 0.25, Y: 0.75}

		r := Classify(&hand)

		if math.Abs(r.X-0.5) > 1e-9 {
			t.Errorf("expected X = 0.5 (mirrored), got %f", r.X)
		}
		if math.Abs(r.Y-0.5) > 1e-9 {
			t.Errorf("expected Y = 0.5, got %f", r.Y)
		}
	})

	t.Run("center of camera maps to origin", func(t *testing.T) {
		var hand detector.HandLandmarks
		hand.Points[detector.IndexMCP] = detector.Point3D{X: 0.5, Y: 0.5}

		r := Classify(&hand)

		if math.Abs(r.X) > 1e-9 || math.Abs(r.Y) > 1e-9 {
			t.Errorf("expected origin, got (%f, %f)", r.X, r.Y)
		}
	})

	t.Run("three curled fingers is neither fist nor open", func(t *testing.T) {
		hand := detector.FistLandmarks()
		// Extend the pinky well past its knuckle.
		hand.Points[detector.PinkyTip] = detector.Point3D{X: 0.34, Y: 0.42, Z: 0.0}

		r := Classify(&hand)

		if r.IsFist {
			t.Error("3 curled fingers must not read as fist")
		}
		if r.IsOpen {
			t.Error("3 curled fingers must not read as open")
		}
	})
}
