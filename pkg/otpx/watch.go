package otpx

import (
	"context"
	"time"
)

// Watch emits the code window for secret once per Tick until ctx is done.
//
// Between boundaries only Remaining changes (DISPLAYED). When the clock
// crosses into a new time step the code is recomputed and the emitted
// window has Refreshed set (REFRESHED). The channel is closed when ctx is
// cancelled. Slow receivers skip to the latest window rather than block
// the watcher.
func (e *Engine) Watch(ctx context.Context, secret string) <-chan CodeWindow {
	out := make(chan CodeWindow, 1)

	tick := e.Tick
	if tick <= 0 {
		tick = time.Second
	}

	go func() {
		defer close(out)

		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		now := e.now()
		step := e.counter(now)
		w := e.WindowAt(secret, now)
		out <- w

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			now = e.now()
			if s := e.counter(now); s != step {
				step = s
				w = e.WindowAt(secret, now)
				w.Refreshed = true
			} else {
				w.Remaining = e.SecondsRemaining(now.Unix())
				w.Refreshed = false
			}

			if ctx.Err() != nil {
				return
			}
			offer(out, w)
		}
	}()

	return out
}

// offer replaces any unread window with w. A refresh that was never read is
// carried over so receivers always observe the boundary.
func offer(out chan CodeWindow, w CodeWindow) {
	select {
	case out <- w:
		return
	default:
	}

	select {
	case old := <-out:
		w.Refreshed = w.Refreshed || old.Refreshed
	default:
	}

	select {
	case out <- w:
	default:
	}
}
