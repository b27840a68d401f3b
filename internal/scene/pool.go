// Package scene implements the holiday scene choreographer: element pools,
// target layouts, the one-shot construction intro, and the per-frame advance
// that produces transform data for renderer clients.
package scene

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Pool holds one class of visual elements as flat structure-of-arrays
// buffers. Positions are x/y/z interleaved, indexed by element id. Target
// positions are computed once at construction and never change; only Cur is
// rewritten each frame.
type Pool struct {
	N int

	Tree    []float32 // 3*N, assembled-tree targets
	Scatter []float32 // 3*N, scattered-cloud targets
	Cur     []float32 // 3*N, interpolated positions

	// Static per-element parameters, assigned once.
	Phase []float32 // pulse phase offset
	Scale []float32 // base scale jitter
	Spin  []float32 // rotation speed, radians per second
	Color []uint8   // renderer palette index
	NormH []float32 // height in the tree layout, normalized to [0,1]
	Delay []float32 // construction start delay, seconds

	Rot  []float32 // current rotation angle, advanced each frame
	Glow []float32 // current pulse intensity, recomputed each frame

	// Active is how many leading elements are drawn at the current density.
	// Inactive elements keep simulating so density increases resume smoothly.
	Active int
}

func newPool(n int) *Pool {
	return &Pool{
		N:       n,
		Tree:    make([]float32, 3*n),
		Scatter: make([]float32, 3*n),
		Cur:     make([]float32, 3*n),
		Phase:   make([]float32, n),
		Scale:   make([]float32, n),
		Spin:    make([]float32, n),
		Color:   make([]uint8, n),
		NormH:   make([]float32, n),
		Delay:   make([]float32, n),
		Rot:     make([]float32, n),
		Glow:    make([]float32, n),
		Active:  n,
	}
}

// finish derives normalized heights and construction delays from the
// tree targets, and starts every element at its tree position so a snap
// never fires on the first steady-state frame.
func (p *Pool) finish() {
	minY, maxY := float32(math32.MaxFloat32), float32(-math32.MaxFloat32)
	for i := 0; i < p.N; i++ {
		y := p.Tree[3*i+1]
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	span := maxY - minY
	if span <= 0 {
		span = 1
	}
	for i := 0; i < p.N; i++ {
		p.NormH[i] = (p.Tree[3*i+1] - minY) / span
		p.Delay[i] = p.NormH[i] * (IntroDuration - IntroTravel)
	}
	copy(p.Cur, p.Tree)
}

// setActive truncates the drawn range to floor(N * density).
func (p *Pool) setActive(density float32) {
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	p.Active = int(float32(p.N) * density)
}

// treeLayout distributes n points over a cone surface using a golden-angle
// spiral with small radial jitter. Apex is at treeHeight, base at 0.
func treeLayout(p *Pool, rng *rand.Rand, height, baseRadius float32) {
	const golden = 2.3999631 // golden angle in radians
	for i := 0; i < p.N; i++ {
		t := float32(i) / float32(p.N)
		h := t * height
		r := baseRadius * (1 - t)
		r += (rng.Float32() - 0.5) * 0.3 * baseRadius * (1 - t)
		if r < 0.05 {
			r = 0.05
		}
		a := float32(i) * golden
		p.Tree[3*i] = r * math32.Cos(a)
		p.Tree[3*i+1] = h
		p.Tree[3*i+2] = r * math32.Sin(a)
	}
}

// strandLayout winds n points in a tight helix around the cone surface,
// used for the light bulbs.
func strandLayout(p *Pool, height, baseRadius float32, turns float32) {
	for i := 0; i < p.N; i++ {
		t := float32(i) / float32(p.N)
		h := t * height
		r := baseRadius*(1-t) + 0.1
		a := t * turns * 2 * math32.Pi
		p.Tree[3*i] = r * math32.Cos(a)
		p.Tree[3*i+1] = h
		p.Tree[3*i+2] = r * math32.Sin(a)
	}
}

// scatterLayout places n points uniformly in a spherical shell centered on
// the tree's midpoint.
func scatterLayout(p *Pool, rng *rand.Rand, centerY, rMin, rMax float32) {
	for i := 0; i < p.N; i++ {
		// Uniform direction via normalized gaussian triple.
		x := float32(rng.NormFloat64())
		y := float32(rng.NormFloat64())
		z := float32(rng.NormFloat64())
		l := math32.Sqrt(x*x + y*y + z*z)
		if l < 1e-6 {
			x, y, z, l = 1, 0, 0, 1
		}
		r := rMin + rng.Float32()*(rMax-rMin)
		p.Scatter[3*i] = x / l * r
		p.Scatter[3*i+1] = centerY + y/l*r
		p.Scatter[3*i+2] = z / l * r
	}
}

// paletteSize is how many renderer-side colors a pool element can index.
const paletteSize = 6

// sprinkleParams assigns the static per-element parameters.
func sprinkleParams(p *Pool, rng *rand.Rand, baseScale, scaleJitter, maxSpin float32) {
	for i := 0; i < p.N; i++ {
		p.Phase[i] = rng.Float32() * 2 * math32.Pi
		p.Scale[i] = baseScale + rng.Float32()*scaleJitter
		p.Spin[i] = (rng.Float32()*2 - 1) * maxSpin
		p.Color[i] = uint8(rng.IntN(paletteSize))
		p.Rot[i] = rng.Float32() * 2 * math32.Pi
	}
}
