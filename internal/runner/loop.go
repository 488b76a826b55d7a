package runner

import (
	"context"
	"time"

	"splitflap/internal/applog"
)

// DefaultQuantum bounds busy-polling without hurting key responsiveness.
const DefaultQuantum = 100 * time.Millisecond

// RunLoop is the cooperative control loop: each iteration checks the
// shutdown flag, polls for one key, ticks the engine, then sleeps one
// quantum. The engine's Cleanup runs on every exit path.
func RunLoop(ctx context.Context, eng Engine, keys KeySource, sd *Shutdown, quantum time.Duration) error {
	if quantum <= 0 {
		quantum = DefaultQuantum
	}

	eng.Start()
	defer eng.Cleanup()

	for {
		if sd.Requested() {
			applog.Infof("shutdown requested, stopping")
			return nil
		}
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		if k := keys.Poll(); k != KeyNone {
			if eng.HandleKey(k) == FlowExit {
				return nil
			}
		}

		flow, err := eng.Tick(ctx)
		if err != nil {
			// Per-item failures never abort the run.
			applog.Errorf("tick: %v", err)
		}
		if flow == FlowExit {
			return nil
		}

		time.Sleep(quantum)
	}
}
