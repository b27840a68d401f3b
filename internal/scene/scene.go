package scene

import (
	"math/rand/v2"
	"sync"

	"github.com/chewxy/math32"

	"github.com/ayusman/deodar/internal/gesture"
)

// Scene geometry.
const (
	treeHeight      float32 = 6.0
	treeBaseRadius  float32 = 2.4
	scatterRMin     float32 = 4.0
	scatterRMax     float32 = 9.0
	photoRingRadius float32 = 7.0
	camDistance     float32 = 12.0
)

// Steady-state interpolation tuning.
const (
	// SnapThreshold is the distance beyond which interpolation is replaced
	// by instantaneous placement, recovering from stale positions without a
	// visible long slide.
	SnapThreshold float32 = 10.0

	followGain    float32 = 4.0 // 1/s element position gain
	modeBlendRate float32 = 2.5 // 1/s accent tint fade

	overlayDistance  float32 = 5.0
	overlayScaleFull float32 = 1.0
	overlayPosRate   float32 = 8.0
	overlayEnterRate float32 = 6.0
	overlayExitRate  float32 = 10.0 // exit is sharper than entry
)

// Params are the four tunable scalars exposed to the UI. The scene assumes
// they arrive pre-clamped; it does not validate them.
type Params struct {
	Density        float64 `json:"density" yaml:"density"`
	SizeFactor     float64 `json:"sizeFactor" yaml:"sizeFactor"`
	BreathingSpeed float64 `json:"breathingSpeed" yaml:"breathingSpeed"`
	StarBrightness float64 `json:"starBrightness" yaml:"starBrightness"`
}

// DefaultParams returns the tunables at their neutral values.
func DefaultParams() Params {
	return Params{Density: 1, SizeFactor: 1, BreathingSpeed: 1, StarBrightness: 1}
}

// Config sets the element pool sizes and layout seed.
type Config struct {
	StardustCount int
	OrnamentCount int
	BulbCount     int
	Seed          uint64
}

// DefaultConfig returns the standard pool sizes.
func DefaultConfig() Config {
	return Config{
		StardustCount: 12000,
		OrnamentCount: 180,
		BulbCount:     240,
		Seed:          1,
	}
}

// Scene is the choreographer: it owns the element pools and computes every
// element's position, rotation, and glow each frame from the current mode,
// hand position, tunables, and elapsed time.
//
// Advance is driven from a single frame loop; the setters may be called from
// other goroutines and are mutex-guarded.
type Scene struct {
	mu sync.Mutex

	cfg     Config
	elapsed float64

	stardust  *Pool
	ornaments *Pool
	bulbs     *Pool
	photos    *PhotoList

	rig  Rig
	mode gesture.Mode

	handX, handY float32
	params       Params

	modeFactor   float32
	overlayPos   [3]float32
	overlayScale float32
}

// New constructs a Scene with all target layouts precomputed from the
// config seed. Layouts are fixed for the scene's lifetime.
func New(cfg Config) *Scene {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	s := &Scene{
		cfg:    cfg,
		photos: NewPhotoList(),
		params: DefaultParams(),
		mode:   gesture.ModeTree,
	}

	s.stardust = newPool(cfg.StardustCount)
	treeLayout(s.stardust, rng, treeHeight, treeBaseRadius)
	scatterLayout(s.stardust, rng, treeHeight/2, scatterRMin, scatterRMax)
	sprinkleParams(s.stardust, rng, 0.8, 0.4, 0)
	s.stardust.finish()

	s.ornaments = newPool(cfg.OrnamentCount)
	treeLayout(s.ornaments, rng, treeHeight*0.95, treeBaseRadius*1.05)
	scatterLayout(s.ornaments, rng, treeHeight/2, scatterRMin, scatterRMax*0.9)
	sprinkleParams(s.ornaments, rng, 1.0, 0.5, 1.5)
	s.ornaments.finish()

	s.bulbs = newPool(cfg.BulbCount)
	strandLayout(s.bulbs, treeHeight*0.9, treeBaseRadius, 7)
	scatterLayout(s.bulbs, rng, treeHeight/2, scatterRMin, scatterRMax*0.8)
	sprinkleParams(s.bulbs, rng, 0.6, 0.2, 0)
	s.bulbs.finish()

	return s
}

// Photos returns the scene's photo list.
func (s *Scene) Photos() *PhotoList {
	return s.photos
}

// SetMode tells the choreographer which mode's targets to converge on.
func (s *Scene) SetMode(m gesture.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// Mode returns the mode the choreographer is converging on.
func (s *Scene) Mode() gesture.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetHand feeds the continuous hand control position, in [-1,1] each axis.
func (s *Scene) SetHand(x, y float64) {
	s.mu.Lock()
	s.handX = float32(x)
	s.handY = float32(y)
	s.mu.Unlock()
}

// SetParams replaces the tunables. Values are assumed pre-clamped.
func (s *Scene) SetParams(p Params) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
}

// Params returns the current tunables.
func (s *Scene) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Elapsed returns the scene clock in seconds since construction.
func (s *Scene) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Advance steps the whole scene by dt seconds: rig rotation, element
// positions, glow, accent blend, photo cards, and the focused overlay.
func (s *Scene) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed += dt
	d := float32(dt)
	now := float32(s.elapsed)
	intro := introActive(now)

	density := float32(s.params.Density)
	s.stardust.setActive(density)
	s.ornaments.setActive(density)
	s.bulbs.setActive(density)

	s.rig.advance(d, s.mode, s.handX, s.handY, intro)

	breathing := float32(s.params.BreathingSpeed)
	for _, p := range []*Pool{s.stardust, s.ornaments, s.bulbs} {
		if intro {
			s.constructPool(p, now)
		} else {
			s.steadyPool(p, d)
		}
		s.pulsePool(p, now, breathing, d)
	}

	s.advancePhotos(d, now, intro)
	s.advanceOverlay(d)

	// Accent tint fades in for tree mode, out otherwise; blended, never
	// switched.
	target := float32(0)
	if s.mode == gesture.ModeTree {
		target = 1
	}
	s.modeFactor = blend(s.modeFactor, target, modeBlendRate*d)
}

// constructPool runs the scripted assembly trajectory, ignoring mode.
func (s *Scene) constructPool(p *Pool, now float32) {
	for i := 0; i < p.N; i++ {
		x, y, z, _ := constructionPose(now, p.Delay[i], p.NormH[i],
			p.Tree[3*i], p.Tree[3*i+1], p.Tree[3*i+2])
		p.Cur[3*i] = x
		p.Cur[3*i+1] = y
		p.Cur[3*i+2] = z
	}
}

// steadyPool converges every element on the current mode's target. Elements
// farther than SnapThreshold from their target are placed instantly.
func (s *Scene) steadyPool(p *Pool, dt float32) {
	targets := p.Tree
	if s.mode != gesture.ModeTree {
		targets = p.Scatter
	}

	k := followGain * dt
	if k > 1 {
		k = 1
	}
	snapSq := SnapThreshold * SnapThreshold

	for i := 0; i < 3*p.N; i += 3 {
		dx := targets[i] - p.Cur[i]
		dy := targets[i+1] - p.Cur[i+1]
		dz := targets[i+2] - p.Cur[i+2]
		if dx*dx+dy*dy+dz*dz > snapSq {
			p.Cur[i] = targets[i]
			p.Cur[i+1] = targets[i+1]
			p.Cur[i+2] = targets[i+2]
			continue
		}
		p.Cur[i] += dx * k
		p.Cur[i+1] += dy * k
		p.Cur[i+2] += dz * k
	}
}

// pulsePool updates per-element rotation and glow. Inactive elements are
// updated too so they resume seamlessly when density rises.
func (s *Scene) pulsePool(p *Pool, now, breathing, dt float32) {
	for i := 0; i < p.N; i++ {
		p.Rot[i] += p.Spin[i] * dt
		p.Glow[i] = 0.55 + 0.45*math32.Sin(p.Phase[i]+now*breathing*2)
	}
}

// introScale returns the construction scale factor for pool element i, 1
// outside the intro window.
func (s *Scene) introScale(p *Pool, i int, now float32) float32 {
	if !introActive(now) {
		return 1
	}
	_, _, _, sc := constructionPose(now, p.Delay[i], p.NormH[i],
		p.Tree[3*i], p.Tree[3*i+1], p.Tree[3*i+2])
	return sc
}

// advancePhotos moves the photo cards. Cards have a third target set, the
// viewing ring, used in photo-zoom mode. Orientation is not stored: cards
// billboard to the camera instantly at snapshot time.
func (s *Scene) advancePhotos(dt, now float32, intro bool) {
	s.photos.mu.Lock()
	defer s.photos.mu.Unlock()

	k := followGain * dt
	if k > 1 {
		k = 1
	}
	snapSq := SnapThreshold * SnapThreshold

	for i := range s.photos.cards {
		c := &s.photos.cards[i]

		if intro {
			normH := c.tree[1] / treeHeight
			delay := normH * (IntroDuration - IntroTravel)
			x, y, z, sc := constructionPose(now, delay, normH, c.tree[0], c.tree[1], c.tree[2])
			c.cur = [3]float32{x, y, z}
			c.scale = sc
			continue
		}

		var target [3]float32
		switch s.mode {
		case gesture.ModeTree:
			target = c.tree
		case gesture.ModePhotoZoom:
			target = c.ring
		default:
			target = c.scatter
		}

		dx := target[0] - c.cur[0]
		dy := target[1] - c.cur[1]
		dz := target[2] - c.cur[2]
		if dx*dx+dy*dy+dz*dz > snapSq {
			c.cur = target
		} else {
			c.cur[0] += dx * k
			c.cur[1] += dy * k
			c.cur[2] += dz * k
		}
		c.scale = blend(c.scale, 1, k)
	}
}

// advanceOverlay keeps the focused-photo billboard locked a fixed offset in
// front of the camera and drives its content scale toward full when zoomed
// and zero otherwise, with a sharper exit than entry.
func (s *Scene) advanceOverlay(dt float32) {
	camX, camY, camZ := s.cameraPos()

	// Unit vector from camera toward the scene center.
	fx := -camX
	fy := treeHeight/2 - camY
	fz := -camZ
	l := math32.Sqrt(fx*fx + fy*fy + fz*fz)
	if l < 1e-6 {
		l = 1
	}
	tx := camX + fx/l*overlayDistance
	ty := camY + fy/l*overlayDistance
	tz := camZ + fz/l*overlayDistance

	pk := overlayPosRate * dt
	if pk > 1 {
		pk = 1
	}
	s.overlayPos[0] = blend(s.overlayPos[0], tx, pk)
	s.overlayPos[1] = blend(s.overlayPos[1], ty, pk)
	s.overlayPos[2] = blend(s.overlayPos[2], tz, pk)

	zoomed := s.mode == gesture.ModePhotoZoom && s.photos.Len() > 0
	if zoomed {
		s.overlayScale = blend(s.overlayScale, overlayScaleFull, overlayEnterRate*dt)
	} else {
		s.overlayScale = blend(s.overlayScale, 0, overlayExitRate*dt)
	}
}

// cameraPos derives the camera position from the rig orientation. The
// camera orbits the tree's midpoint at a fixed distance.
func (s *Scene) cameraPos() (x, y, z float32) {
	cp := math32.Cos(s.rig.Pitch)
	x = camDistance * cp * math32.Sin(s.rig.Yaw)
	y = treeHeight/2 + camDistance*math32.Sin(s.rig.Pitch)
	z = camDistance * cp * math32.Cos(s.rig.Yaw)
	return
}
