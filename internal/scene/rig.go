package scene

import (
	"github.com/chewxy/math32"

	"github.com/ayusman/deodar/internal/gesture"
)

// Rig rotation tuning.
const (
	introSpinRate   = 0.35 // rad/s auto spin during construction
	treeAutoRate    = 0.22
	scatterAutoRate = 0.10

	treeHandGain     = 0.30 // small nudge in tree mode
	scatterYawGain   = 1.20 // hand drives azimuth directly when scattered
	scatterPitchGain = 0.50 // tighter multiplier so the cloud never flips
	treePitchGain    = 0.15

	treeBlendRate    = 3.0 // 1/s, damped first-order blend toward target
	scatterBlendRate = 2.0

	pitchClamp = 0.6
)

// Rig is the camera/group orientation: a yaw spin around the tree axis plus
// a pitch tilt. It never snaps; yaw and pitch are continuously blended
// toward their targets.
type Rig struct {
	Yaw   float32
	Pitch float32

	autoYaw float32
}

// advance updates the rig for one frame. During the intro the rig is
// auto-driven and hand input is ignored.
func (r *Rig) advance(dt float32, mode gesture.Mode, handX, handY float32, intro bool) {
	if intro {
		r.autoYaw += introSpinRate * dt
		r.Yaw = r.autoYaw
		r.Pitch = blend(r.Pitch, 0, treeBlendRate*dt)
		return
	}

	var yawTarget, pitchTarget, rate float32
	switch mode {
	case gesture.ModeScatter:
		r.autoYaw += scatterAutoRate * dt
		yawTarget = r.autoYaw + handX*scatterYawGain
		pitchTarget = clamp(handY*scatterPitchGain, -pitchClamp, pitchClamp)
		rate = scatterBlendRate
	default:
		r.autoYaw += treeAutoRate * dt
		yawTarget = r.autoYaw + handX*treeHandGain
		pitchTarget = clamp(handY*treePitchGain, -pitchClamp, pitchClamp)
		rate = treeBlendRate
	}

	r.Yaw = blend(r.Yaw, yawTarget, rate*dt)
	r.Pitch = blend(r.Pitch, pitchTarget, rate*dt)
}

// blend moves cur toward target by fraction k, clamped so a large dt can
// never overshoot.
func blend(cur, target, k float32) float32 {
	if k > 1 {
		k = 1
	}
	return cur + (target-cur)*k
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
