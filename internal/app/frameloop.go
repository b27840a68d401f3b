package app

import (
	"time"

	"github.com/ayusman/deodar/internal/scene"
)

// runFrameLoop advances the scene at the display rate and broadcasts
// snapshots to subscribers.
func (a *App) runFrameLoop(stopCh <-chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			if r, ok := a.takeReading(); ok {
				a.scene.SetHand(r.X, r.Y)
			}
			a.scene.Advance(dt)
			a.broadcast(a.scene.Snapshot())
		}
	}
}

// Subscribe registers a frame channel. Slow consumers are coalesced: a
// frame that cannot be delivered immediately is dropped, never queued.
func (a *App) Subscribe() chan scene.Frame {
	ch := make(chan scene.Frame, 1)
	a.subMu.Lock()
	a.subs[ch] = struct{}{}
	a.subMu.Unlock()
	return ch
}

// Unsubscribe removes a channel registered with Subscribe.
func (a *App) Unsubscribe(ch chan scene.Frame) {
	a.subMu.Lock()
	delete(a.subs, ch)
	a.subMu.Unlock()
}

func (a *App) broadcast(f scene.Frame) {
	a.subMu.Lock()
	defer a.subMu.Unlock()

	for ch := range a.subs {
		select {
		case ch <- f:
		default:
			// Replace the stale frame so the consumer always wakes to the
			// newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- f:
			default:
			}
		}
	}
}
