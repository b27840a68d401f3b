package scene

import (
	"math"
	"testing"

	"github.com/chewxy/math32"

	"github.com/ayusman/deodar/internal/gesture"
)

func testConfig() Config {
	return Config{
		StardustCount: 1200,
		OrnamentCount: 40,
		BulbCount:     60,
		Seed:          7,
	}
}

// runIntro advances the scene past the construction window.
func runIntro(s *Scene) {
	for s.Elapsed() < float64(IntroDuration)+1 {
		s.Advance(1.0 / 60.0)
	}
}

func TestScene_Density(t *testing.T) {
	t.Run("active count is floor of pool size times density", func(t *testing.T) {
		s := New(Config{StardustCount: 12000, OrnamentCount: 10, BulbCount: 10, Seed: 1})
		p := s.Params()
		p.Density = 0.5
		s.SetParams(p)

		s.Advance(1.0 / 60.0)

		if s.stardust.Active != 6000 {
			t.Errorf("expected 6000 active stardust, got %d", s.stardust.Active)
		}
	})

	t.Run("snapshot slices are truncated to the active range", func(t *testing.T) {
		s := New(testConfig())
		p := s.Params()
		p.Density = 0.25
		s.SetParams(p)
		s.Advance(1.0 / 60.0)

		f := s.Snapshot()

		if f.Stardust.Active != 300 {
			t.Errorf("expected 300 active, got %d", f.Stardust.Active)
		}
		if len(f.Stardust.Pos) != 900 {
			t.Errorf("expected 900 position floats, got %d", len(f.Stardust.Pos))
		}
	})

	t.Run("inactive elements keep simulating", func(t *testing.T) {
		s := New(testConfig())
		runIntro(s)

		p := s.Params()
		p.Density = 0.1
		s.SetParams(p)
		s.SetMode(gesture.ModeScatter)

		// Drive long enough for everything, drawn or not, to reach scatter.
		for i := 0; i < 600; i++ {
			s.Advance(1.0 / 60.0)
		}

		last := s.stardust.N - 1
		dx := s.stardust.Cur[3*last] - s.stardust.Scatter[3*last]
		dy := s.stardust.Cur[3*last+1] - s.stardust.Scatter[3*last+1]
		dz := s.stardust.Cur[3*last+2] - s.stardust.Scatter[3*last+2]
		if math32.Sqrt(dx*dx+dy*dy+dz*dz) > 0.01 {
			t.Error("hidden elements should continue converging on their targets")
		}
	})
}

func TestScene_SteadyInterpolation(t *testing.T) {
	t.Run("elements approach the scatter target monotonically", func(t *testing.T) {
		s := New(testConfig())
		runIntro(s)
		s.SetMode(gesture.ModeScatter)

		i := 17
		dist := func() float64 {
			dx := float64(s.stardust.Cur[3*i] - s.stardust.Scatter[3*i])
			dy := float64(s.stardust.Cur[3*i+1] - s.stardust.Scatter[3*i+1])
			dz := float64(s.stardust.Cur[3*i+2] - s.stardust.Scatter[3*i+2])
			return math.Sqrt(dx*dx + dy*dy + dz*dz)
		}

		prev := dist()
		for step := 0; step < 120; step++ {
			s.Advance(1.0 / 60.0)
			d := dist()
			if d > prev+1e-5 {
				t.Fatalf("distance grew from %f to %f at step %d", prev, d, step)
			}
			prev = d
		}
	})

	t.Run("mode flapping never teleports a settled element", func(t *testing.T) {
		s := New(testConfig())
		runIntro(s)

		// Pick an element whose tree and scatter targets sit inside the
		// snap threshold of each other, so interpolation always applies.
		i := -1
		for j := 0; j < s.stardust.N; j++ {
			dx := s.stardust.Tree[3*j] - s.stardust.Scatter[3*j]
			dy := s.stardust.Tree[3*j+1] - s.stardust.Scatter[3*j+1]
			dz := s.stardust.Tree[3*j+2] - s.stardust.Scatter[3*j+2]
			if math32.Sqrt(dx*dx+dy*dy+dz*dz) < 9 {
				i = j
				break
			}
		}
		if i < 0 {
			t.Fatal("no element with nearby targets in this layout")
		}
		prevX := s.stardust.Cur[3*i]
		modes := []gesture.Mode{gesture.ModeScatter, gesture.ModeTree}
		for step := 0; step < 240; step++ {
			if step%30 == 0 {
				s.SetMode(modes[(step/30)%2])
			}
			s.Advance(1.0 / 60.0)
			x := s.stardust.Cur[3*i]
			if math32.Abs(x-prevX) > 1.0 {
				t.Fatalf("element jumped %f units in one frame", math32.Abs(x-prevX))
			}
			prevX = x
		}
	})

	t.Run("far elements snap instead of sliding", func(t *testing.T) {
		s := New(testConfig())
		runIntro(s)
		s.SetMode(gesture.ModeTree)

		i := 5
		s.stardust.Cur[3*i] = s.stardust.Tree[3*i] + 50
		s.stardust.Cur[3*i+1] = s.stardust.Tree[3*i+1]
		s.stardust.Cur[3*i+2] = s.stardust.Tree[3*i+2]

		s.Advance(1.0 / 60.0)

		if s.stardust.Cur[3*i] != s.stardust.Tree[3*i] {
			t.Errorf("expected instant snap to target, got offset %f",
				s.stardust.Cur[3*i]-s.stardust.Tree[3*i])
		}
	})
}

func TestScene_IntroConvergence(t *testing.T) {
	t.Run("all elements sit on the tree right after the intro", func(t *testing.T) {
		s := New(testConfig())
		for i := 0; i < 300; i++ { // 5s at 60fps
			s.Advance(1.0 / 60.0)
		}

		var worst float32
		for i := 0; i < s.stardust.N; i++ {
			dx := s.stardust.Cur[3*i] - s.stardust.Tree[3*i]
			dy := s.stardust.Cur[3*i+1] - s.stardust.Tree[3*i+1]
			dz := s.stardust.Cur[3*i+2] - s.stardust.Tree[3*i+2]
			d := math32.Sqrt(dx*dx + dy*dy + dz*dz)
			if d > worst {
				worst = d
			}
		}
		if worst > 0.05 {
			t.Errorf("worst post-intro offset %f", worst)
		}
	})

	t.Run("construction scales reach exactly 1", func(t *testing.T) {
		s := New(testConfig())
		now := IntroDuration - 0.001
		for i := 0; i < s.stardust.N; i++ {
			if s.stardust.Delay[i]+IntroTravel <= now-0.01 {
				if sc := s.introScale(s.stardust, i, now); sc != 1 {
					t.Fatalf("element %d finished travel but scale is %f", i, sc)
				}
			}
		}
	})

	t.Run("hand input is ignored during the intro", func(t *testing.T) {
		a := New(testConfig())
		b := New(testConfig())
		b.SetHand(1, -1)

		for i := 0; i < 60; i++ {
			a.Advance(1.0 / 60.0)
			b.Advance(1.0 / 60.0)
		}

		if a.rig.Yaw != b.rig.Yaw || a.rig.Pitch != b.rig.Pitch {
			t.Error("rig must ignore the hand while constructing")
		}
	})
}

func TestScene_ModeFactor(t *testing.T) {
	s := New(testConfig())
	runIntro(s)

	for i := 0; i < 300; i++ {
		s.Advance(1.0 / 60.0)
	}
	if s.modeFactor < 0.95 {
		t.Errorf("expected accent factor near 1 in tree mode, got %f", s.modeFactor)
	}

	s.SetMode(gesture.ModeScatter)
	s.Advance(1.0 / 60.0)
	mid := s.modeFactor
	if mid >= 1 || mid <= 0 {
		t.Errorf("accent factor should blend, not switch; got %f one frame in", mid)
	}

	for i := 0; i < 300; i++ {
		s.Advance(1.0 / 60.0)
	}
	if s.modeFactor > 0.05 {
		t.Errorf("expected accent factor near 0 out of tree mode, got %f", s.modeFactor)
	}
}

func TestScene_Overlay(t *testing.T) {
	t.Run("empty photo list keeps the overlay collapsed in zoom mode", func(t *testing.T) {
		s := New(testConfig())
		runIntro(s)
		s.SetMode(gesture.ModePhotoZoom)

		for i := 0; i < 120; i++ {
			s.Advance(1.0 / 60.0)
		}

		if s.overlayScale != 0 {
			t.Errorf("expected overlay scale 0 with no photos, got %f", s.overlayScale)
		}
	})

	t.Run("overlay opens in zoom and closes faster on exit", func(t *testing.T) {
		s := New(testConfig())
		s.Photos().Add("a.jpg")
		runIntro(s)

		s.SetMode(gesture.ModePhotoZoom)
		openSteps := 0
		for s.overlayScale < 0.9*overlayScaleFull {
			s.Advance(1.0 / 60.0)
			openSteps++
			if openSteps > 600 {
				t.Fatal("overlay never opened")
			}
		}

		s.SetMode(gesture.ModeScatter)
		closeSteps := 0
		for s.overlayScale > 0.1*overlayScaleFull {
			s.Advance(1.0 / 60.0)
			closeSteps++
			if closeSteps > 600 {
				t.Fatal("overlay never closed")
			}
		}

		if closeSteps >= openSteps {
			t.Errorf("exit (%d steps) should be sharper than entry (%d steps)", closeSteps, openSteps)
		}
	})

	t.Run("overlay tracks in front of the camera", func(t *testing.T) {
		s := New(testConfig())
		s.Photos().Add("a.jpg")
		runIntro(s)
		s.SetMode(gesture.ModePhotoZoom)

		for i := 0; i < 600; i++ {
			s.Advance(1.0 / 60.0)
		}

		camX, camY, camZ := s.cameraPos()
		dx := s.overlayPos[0] - camX
		dy := s.overlayPos[1] - camY
		dz := s.overlayPos[2] - camZ
		d := math32.Sqrt(dx*dx + dy*dy + dz*dz)
		if math32.Abs(d-overlayDistance) > 0.5 {
			t.Errorf("overlay should hover ~%f in front of the camera, got %f", overlayDistance, d)
		}
	})
}

func TestScene_Snapshot(t *testing.T) {
	s := New(testConfig())
	s.Photos().Add("first.jpg")
	s.Photos().Add("second.jpg")
	s.Advance(1.0 / 60.0)

	f := s.Snapshot()

	if f.Mode != "tree" {
		t.Errorf("expected mode tree, got %s", f.Mode)
	}
	if len(f.Photos) != 2 {
		t.Fatalf("expected 2 photo frames, got %d", len(f.Photos))
	}
	if f.Overlay.URL != "first.jpg" {
		t.Errorf("expected overlay to carry the active photo, got %q", f.Overlay.URL)
	}
	if f.Stardust.Active != 1200 {
		t.Errorf("expected full pool active at density 1, got %d", f.Stardust.Active)
	}
	if f.Star != 1 {
		t.Errorf("expected star brightness uniform 1, got %f", f.Star)
	}

	// Snapshot must be a copy the caller owns.
	f.Stardust.Pos[0] = 9999
	g := s.Snapshot()
	if g.Stardust.Pos[0] == 9999 {
		t.Error("snapshot aliases the live buffers")
	}
}

func TestScene_LayoutDeterminism(t *testing.T) {
	a := New(testConfig())
	b := New(testConfig())

	for i := range a.stardust.Tree {
		if a.stardust.Tree[i] != b.stardust.Tree[i] {
			t.Fatal("same seed must produce identical tree layouts")
		}
	}
	for i := range a.stardust.Scatter {
		if a.stardust.Scatter[i] != b.stardust.Scatter[i] {
			t.Fatal("same seed must produce identical scatter layouts")
		}
	}
}
