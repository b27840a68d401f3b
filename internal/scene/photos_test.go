package scene

import "testing"

func TestPhotoList(t *testing.T) {
	t.Run("empty list has no active photo", func(t *testing.T) {
		l := NewPhotoList()

		if _, ok := l.Active(); ok {
			t.Error("expected no active photo")
		}
		if l.ActiveIndex() != -1 {
			t.Errorf("expected index -1, got %d", l.ActiveIndex())
		}
	})

	t.Run("advance on empty list is a no-op", func(t *testing.T) {
		l := NewPhotoList()

		l.Advance()

		if l.ActiveIndex() != -1 {
			t.Errorf("expected index -1 after advance on empty list, got %d", l.ActiveIndex())
		}
	})

	t.Run("first photo becomes active", func(t *testing.T) {
		l := NewPhotoList()

		p := l.Add("one.jpg")

		active, ok := l.Active()
		if !ok {
			t.Fatal("expected an active photo")
		}
		if active.ID != p.ID {
			t.Errorf("expected active %s, got %s", p.ID, active.ID)
		}
	})

	t.Run("ids are unique and urls preserved in order", func(t *testing.T) {
		l := NewPhotoList()
		l.Add("a.jpg")
		l.Add("b.jpg")
		l.Add("c.jpg")

		photos := l.List()
		if len(photos) != 3 {
			t.Fatalf("expected 3 photos, got %d", len(photos))
		}
		seen := map[string]bool{}
		for i, url := range []string{"a.jpg", "b.jpg", "c.jpg"} {
			if photos[i].URL != url {
				t.Errorf("photo %d: expected %s, got %s", i, url, photos[i].URL)
			}
			if seen[photos[i].ID] {
				t.Errorf("duplicate id %s", photos[i].ID)
			}
			seen[photos[i].ID] = true
		}
	})

	t.Run("advance wraps around circularly", func(t *testing.T) {
		l := NewPhotoList()
		l.Add("a.jpg")
		l.Add("b.jpg")
		l.Add("c.jpg")

		want := []int{1, 2, 0, 1}
		for step, idx := range want {
			l.Advance()
			if l.ActiveIndex() != idx {
				t.Errorf("advance %d: expected index %d, got %d", step+1, idx, l.ActiveIndex())
			}
		}
	})

	t.Run("set active by id", func(t *testing.T) {
		l := NewPhotoList()
		l.Add("a.jpg")
		b := l.Add("b.jpg")

		if !l.SetActive(b.ID) {
			t.Fatal("expected SetActive to find the photo")
		}
		if l.ActiveIndex() != 1 {
			t.Errorf("expected index 1, got %d", l.ActiveIndex())
		}
		if l.SetActive("nope") {
			t.Error("expected SetActive to report unknown id")
		}
	})

	t.Run("cards get distinct ring targets", func(t *testing.T) {
		l := NewPhotoList()
		l.Add("a.jpg")
		l.Add("b.jpg")

		if l.cards[0].ring == l.cards[1].ring {
			t.Error("ring positions must differ between cards")
		}
	})
}
