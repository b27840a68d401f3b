package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockCamera_Playback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame1 := solidFrame(0)
	defer frame1.Close()
	frame2 := solidFrame(255)
	defer frame2.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame1, &frame2}, false)

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < 2; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() frame %d error = %v", i, err)
		}
		f.Close()
	}

	// Sequence exhausted without looping.
	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after all frames consumed")
	}

	// Reset rewinds playback.
	cam.Reset()
	f, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Reset error = %v", err)
	}
	f.Close()
}

func TestMockCamera_Loop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := solidFrame(0)
	defer frame.Close()

	cam := NewMockCamera([]*gocv.Mat{&frame}, true)
	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		f.Close()
	}
}

func TestMockCamera_NotOpen(t *testing.T) {
	cam := NewMockCamera(nil, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestMockCamera_RecordsFPS(t *testing.T) {
	cam := NewMockCamera(nil, false)

	// Starts at the idle rate, like the real camera.
	if got := cam.FPS(); got != IdleFPS {
		t.Errorf("FPS() = %d, want IdleFPS %d", got, IdleFPS)
	}

	// The pipeline promotes to the active rate on motion; the mock must
	// report it back so tests can observe the switch.
	cam.SetFPS(ActiveFPS)
	if got := cam.FPS(); got != ActiveFPS {
		t.Errorf("FPS() = %d, want ActiveFPS %d", got, ActiveFPS)
	}

	cam.SetFPS(0)
	if got := cam.FPS(); got != ActiveFPS {
		t.Errorf("FPS() = %d after SetFPS(0), want unchanged %d", got, ActiveFPS)
	}

	cam.SetFPS(IdleFPS)
	if got := cam.FPS(); got != IdleFPS {
		t.Errorf("FPS() = %d, want IdleFPS %d", got, IdleFPS)
	}
}
