package scene

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// Photo is one user-provided picture shown on a card in the scene.
type Photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// photoCard carries the spatial state for one photo. Cards have a third
// target layout (the viewing ring) on top of the usual tree/scatter pair.
type photoCard struct {
	tree    [3]float32
	scatter [3]float32
	ring    [3]float32
	cur     [3]float32
	scale   float32
}

// PhotoList is the ordered, user-extensible photo collection. One photo may
// be active (focused) at a time, selected by index.
type PhotoList struct {
	mu     sync.Mutex
	photos []Photo
	cards  []photoCard
	active int
}

// NewPhotoList creates an empty photo list.
func NewPhotoList() *PhotoList {
	return &PhotoList{active: -1}
}

// Add appends a photo for the given URL and returns it with a fresh ID.
// The new card's targets are laid out from its list position.
func (l *PhotoList) Add(url string) Photo {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := Photo{ID: uuid.NewString(), URL: url}
	l.photos = append(l.photos, p)
	l.cards = append(l.cards, photoCard{})
	if l.active < 0 {
		l.active = 0
	}
	l.relayout()
	return p
}

// List returns a copy of the photos in order.
func (l *PhotoList) List() []Photo {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Photo, len(l.photos))
	copy(out, l.photos)
	return out
}

// Len returns the number of photos.
func (l *PhotoList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.photos)
}

// Active returns the focused photo, or ok=false if the list is empty.
func (l *PhotoList) Active() (Photo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active < 0 || l.active >= len(l.photos) {
		return Photo{}, false
	}
	return l.photos[l.active], true
}

// ActiveIndex returns the focused index, or -1 if the list is empty.
func (l *PhotoList) ActiveIndex() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.photos) == 0 {
		return -1
	}
	return l.active
}

// Advance moves the focus to the next photo, wrapping around. It is a no-op
// on an empty list.
func (l *PhotoList) Advance() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.photos) == 0 {
		return
	}
	l.active = (l.active + 1) % len(l.photos)
}

// SetActive focuses the photo with the given id. Returns false if no photo
// has that id.
func (l *PhotoList) SetActive(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, p := range l.photos {
		if p.ID == id {
			l.active = i
			return true
		}
	}
	return false
}

// relayout recomputes card targets from list positions. Callers hold l.mu.
//
// Cards hang on the cone surface in tree mode, drift in a ring-shaped shell
// when scattered, and line up on the viewing ring in photo mode.
func (l *PhotoList) relayout() {
	n := len(l.cards)
	for i := range l.cards {
		t := float32(i) / float32(n)
		a := t * 2 * math32.Pi

		// Tree: pinned to the lower half of the cone surface.
		h := treeHeight * (0.15 + 0.5*t)
		r := treeBaseRadius*(1-h/treeHeight) + 0.2
		l.cards[i].tree = [3]float32{r * math32.Cos(a), h, r * math32.Sin(a)}

		// Scatter: wide flat ring around the cloud's midline.
		sr := scatterRMax * 0.8
		l.cards[i].scatter = [3]float32{
			sr * math32.Cos(a*3+1),
			treeHeight/2 + (t-0.5)*4,
			sr * math32.Sin(a*3+1),
		}

		// Photo ring: evenly spaced circle at viewing height.
		l.cards[i].ring = [3]float32{
			photoRingRadius * math32.Cos(a),
			treeHeight / 2,
			photoRingRadius * math32.Sin(a),
		}
	}
}
