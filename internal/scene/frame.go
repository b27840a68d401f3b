package scene

import "github.com/chewxy/math32"

// PoolFrame is the per-frame transform data for one element pool. Slices
// are truncated to the active draw range; positions are x/y/z interleaved.
type PoolFrame struct {
	Active int       `json:"active"`
	Pos    []float32 `json:"pos"`
	Scale  []float32 `json:"scale"`
	Rot    []float32 `json:"rot"`
	Glow   []float32 `json:"glow"`
	Color  []uint8   `json:"color"`
}

// PhotoFrame is one photo card's transform. Yaw is the billboard angle
// facing the camera, computed fresh each snapshot rather than lerped.
type PhotoFrame struct {
	ID    string     `json:"id"`
	URL   string     `json:"url"`
	Pos   [3]float32 `json:"pos"`
	Scale float32    `json:"scale"`
	Yaw   float32    `json:"yaw"`
}

// OverlayFrame is the focused-photo billboard. Scale collapses to zero when
// nothing is zoomed.
type OverlayFrame struct {
	PhotoID string     `json:"photoId,omitempty"`
	URL     string     `json:"url,omitempty"`
	Pos     [3]float32 `json:"pos"`
	Scale   float32    `json:"scale"`
}

// RigFrame is the camera/group orientation.
type RigFrame struct {
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// Frame is one complete snapshot of the scene for renderer clients: element
// transforms plus the shader uniform values.
type Frame struct {
	Elapsed    float64      `json:"elapsed"`
	Mode       string       `json:"mode"`
	ModeFactor float32      `json:"modeFactor"`
	Star       float32      `json:"star"`
	Rig        RigFrame     `json:"rig"`
	Stardust   PoolFrame    `json:"stardust"`
	Ornaments  PoolFrame    `json:"ornaments"`
	Bulbs      PoolFrame    `json:"bulbs"`
	Photos     []PhotoFrame `json:"photos"`
	Overlay    OverlayFrame `json:"overlay"`
}

// Snapshot copies the current scene state into a Frame the caller owns.
func (s *Scene) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := float32(s.elapsed)
	size := float32(s.params.SizeFactor)

	f := Frame{
		Elapsed:    s.elapsed,
		Mode:       s.mode.String(),
		ModeFactor: s.modeFactor,
		Star:       float32(s.params.StarBrightness),
		Rig:        RigFrame{Yaw: s.rig.Yaw, Pitch: s.rig.Pitch},
		Stardust:   s.poolFrame(s.stardust, now, size),
		Ornaments:  s.poolFrame(s.ornaments, now, size),
		Bulbs:      s.poolFrame(s.bulbs, now, size),
	}

	camX, _, camZ := s.cameraPos()

	s.photos.mu.Lock()
	f.Photos = make([]PhotoFrame, len(s.photos.photos))
	for i, p := range s.photos.photos {
		c := s.photos.cards[i]
		f.Photos[i] = PhotoFrame{
			ID:    p.ID,
			URL:   p.URL,
			Pos:   c.cur,
			Scale: c.scale * size,
			// Flat cards face the camera directly; any orientation lag is
			// visually obvious, so this is a snap, not a lerp.
			Yaw: math32.Atan2(camX-c.cur[0], camZ-c.cur[2]),
		}
	}
	if s.photos.active >= 0 && s.photos.active < len(s.photos.photos) {
		active := s.photos.photos[s.photos.active]
		f.Overlay.PhotoID = active.ID
		f.Overlay.URL = active.URL
	}
	s.photos.mu.Unlock()

	f.Overlay.Pos = s.overlayPos
	f.Overlay.Scale = s.overlayScale

	return f
}

// poolFrame copies one pool's active range. Callers hold s.mu.
func (s *Scene) poolFrame(p *Pool, now, size float32) PoolFrame {
	n := p.Active
	out := PoolFrame{
		Active: n,
		Pos:    make([]float32, 3*n),
		Scale:  make([]float32, n),
		Rot:    make([]float32, n),
		Glow:   make([]float32, n),
		Color:  make([]uint8, n),
	}
	copy(out.Pos, p.Cur[:3*n])
	copy(out.Rot, p.Rot[:n])
	copy(out.Glow, p.Glow[:n])
	copy(out.Color, p.Color[:n])
	for i := 0; i < n; i++ {
		out.Scale[i] = p.Scale[i] * size * s.introScale(p, i, now)
	}
	return out
}
