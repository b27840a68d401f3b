// Deodar-view is a native preview renderer for the holiday scene. It runs
// the scene in-process without a camera and projects the 3D element
// buffers to 2D. The mouse stands in for the hand; keys switch modes.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ayusman/deodar/internal/gesture"
	"github.com/ayusman/deodar/internal/scene"
)

const (
	screenW = 960
	screenH = 720

	// Perspective projection tuning.
	focal       = 600.0
	camDist     = 12.0
	lookHeight  = 3.0
	minDepth    = 0.5
	previewSeed = 11
)

// Game implements ebiten.Game over a live Scene.
type Game struct {
	scene *Renderer
}

// Renderer owns the scene and the projection state.
type Renderer struct {
	s     *scene.Scene
	frame scene.Frame
}

func main() {
	s := scene.New(scene.Config{
		StardustCount: 3000,
		OrnamentCount: 120,
		BulbCount:     160,
		Seed:          previewSeed,
	})

	// A few placeholder photos so the cards and overlay are visible.
	for i := 1; i <= 5; i++ {
		s.Photos().Add(fmt.Sprintf("photo-%d", i))
	}

	g := &Game{scene: &Renderer{s: s}}

	ebiten.SetWindowTitle("Deodar - Scene Preview")
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func (g *Game) Update() error {
	r := g.scene

	// Mode keys mirror the gesture table: T fist/tree, S open/scatter,
	// P pinch/photo zoom. Space advances the zoomed photo.
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		r.s.SetMode(gesture.ModeTree)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		r.s.SetMode(gesture.ModeScatter)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		r.s.SetMode(gesture.ModePhotoZoom)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		r.s.Photos().Advance()
	}

	// The cursor plays the hand: map screen position to [-1,1].
	mx, my := ebiten.CursorPosition()
	handX := float64(mx)/float64(screenW)*2 - 1
	handY := float64(my)/float64(screenH)*2 - 1
	r.s.SetHand(handX, handY)

	r.s.Advance(1.0 / float64(ebiten.TPS()))
	r.frame = r.s.Snapshot()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := &g.scene.frame
	screen.Fill(color.RGBA{R: 8, G: 10, B: 22, A: 255})

	g.drawPool(screen, f, &f.Stardust, color.RGBA{R: 220, G: 230, B: 255, A: 255}, 1.0)
	g.drawPool(screen, f, &f.Ornaments, accentColor(f.ModeFactor), 3.0)
	g.drawPool(screen, f, &f.Bulbs, color.RGBA{R: 255, G: 214, B: 120, A: 255}, 2.0)

	for i := range f.Photos {
		p := &f.Photos[i]
		sx, sy, depth, ok := project(f, p.Pos[0], p.Pos[1], p.Pos[2])
		if !ok {
			continue
		}
		half := p.Scale * focal / depth * 0.4
		vector.StrokeRect(screen, sx-half, sy-half*0.75, half*2, half*1.5, 1.5,
			color.RGBA{R: 240, G: 240, B: 240, A: 255}, true)
	}

	if f.Overlay.Scale > 0.01 {
		sx, sy, depth, ok := project(f, f.Overlay.Pos[0], f.Overlay.Pos[1], f.Overlay.Pos[2])
		if ok {
			half := f.Overlay.Scale * focal / depth * 1.2
			vector.StrokeRect(screen, sx-half, sy-half*0.75, half*2, half*1.5, 3,
				color.RGBA{R: 255, G: 255, B: 255, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, f.Overlay.URL, int(sx-half)+4, int(sy-half*0.75)+4)
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"mode: %s   elapsed: %.1fs   FPS: %.0f\n[T] tree  [S] scatter  [P] photo zoom  [Space] next photo",
		f.Mode, f.Elapsed, ebiten.ActualFPS()), 4, 4)
}

// drawPool projects and draws one element pool as glowing dots.
func (g *Game) drawPool(screen *ebiten.Image, f *scene.Frame, p *scene.PoolFrame, base color.RGBA, radius float32) {
	for i := 0; i < p.Active; i++ {
		sx, sy, depth, ok := project(f, p.Pos[3*i], p.Pos[3*i+1], p.Pos[3*i+2])
		if !ok {
			continue
		}
		glow := p.Glow[i]
		c := color.RGBA{
			R: uint8(float32(base.R) * glow),
			G: uint8(float32(base.G) * glow),
			B: uint8(float32(base.B) * glow),
			A: 255,
		}
		r := radius * p.Scale[i] * focal / depth * 0.01
		if r < 0.5 {
			r = 0.5
		}
		vector.DrawFilledCircle(screen, sx, sy, r, c, false)
	}
}

// project maps a world point through the rig orientation and a simple
// perspective camera. Returns false when the point is behind the camera.
func project(f *scene.Frame, x, y, z float32) (sx, sy, depth float32, ok bool) {
	y -= lookHeight

	// Rig yaw spins the scene group; pitch tilts it.
	sinY, cosY := math32.Sincos(-f.Rig.Yaw)
	x, z = x*cosY-z*sinY, x*sinY+z*cosY

	sinP, cosP := math32.Sincos(-f.Rig.Pitch)
	y, z = y*cosP-z*sinP, y*sinP+z*cosP

	depth = camDist - z
	if depth < minDepth {
		return 0, 0, 0, false
	}

	sx = screenW/2 + x*focal/depth
	sy = screenH/2 - y*focal/depth
	return sx, sy, depth, true
}

// accentColor blends the ornament tint between neutral and the holiday
// accent as the mode factor fades.
func accentColor(modeFactor float32) color.RGBA {
	return color.RGBA{
		R: uint8(180 + 75*modeFactor),
		G: uint8(190 - 120*modeFactor),
		B: uint8(200 - 140*modeFactor),
		A: 255,
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
