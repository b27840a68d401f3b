package scene

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween/ease"
)

// Construction intro timing.
const (
	// IntroDuration is the total length of the one-shot assembly animation.
	IntroDuration float32 = 4.0
	// IntroTravel is each element's fixed flight time.
	IntroTravel float32 = 1.8
)

const (
	introStartRadiusMul = 2.5
	introStartHeight    = -1.5
	introSpinTurn       = 2 * math32.Pi
	introOrbitRate      = 0.8
)

// constructionPose returns the scripted position and scale factor for one
// element during the intro window. The scale factor is the eased travel
// progress: 0 before the element's delay, exactly 1 once delay+travel has
// elapsed, at which point the position is exactly the tree target.
//
// Before its delay, the element circles at its oversized start radius; its
// orbit phase depends on elapsed time and normalized height. During travel
// the radius and height converge on the tree target while the angle unwinds
// from one full turn behind, a decaying corkscrew rather than a straight
// slide.
func constructionPose(elapsed, delay float32, normH float32, tx, ty, tz float32) (x, y, z, scale float32) {
	finalR := math32.Hypot(tx, tz)
	finalA := math32.Atan2(tz, tx)
	startR := finalR*introStartRadiusMul + 3.0

	t := elapsed - delay
	if t <= 0 {
		a := elapsed*introOrbitRate + normH*introSpinTurn
		return startR * math32.Cos(a), introStartHeight, startR * math32.Sin(a), 0
	}

	p := t / IntroTravel
	if p >= 1 {
		return tx, ty, tz, 1
	}
	e := ease.OutCubic(p, 0, 1, 1)

	r := startR + (finalR-startR)*e
	h := introStartHeight + (ty-introStartHeight)*e
	a := finalA - introSpinTurn*(1-e)
	return r * math32.Cos(a), h, r * math32.Sin(a), e
}

// introActive reports whether the construction window is still running.
func introActive(elapsed float32) bool {
	return elapsed < IntroDuration
}
