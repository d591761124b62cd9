// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"time"

	"github.com/katalvlaran/gridpath/astar"
)

// Run is the session event loop.
//
// Commands from cmds are applied in arrival order; rejected ones are logged
// and counted, never fatal. While a search is running Run ticks once per
// Interval, or continuously when Interval is 0. Run returns nil once cmds is
// closed (or nil) and no search is running.
//
// When ctx is done a running search is cancelled and ctx.Err() returned.
func (s *Session) Run(ctx context.Context, cmds <-chan Command) error {
	var tickC <-chan time.Time
	if s.opts.Interval > 0 {
		t := time.NewTicker(s.opts.Interval)
		defer t.Stop()
		tickC = t.C
	}

	for {
		running := s.engine.State() == astar.Running
		if !running && cmds == nil {
			return nil
		}

		if running && tickC == nil {
			select {
			case <-ctx.Done():
				return s.interrupt(ctx)
			case cmd, ok := <-cmds:
				if !ok {
					cmds = nil
					continue
				}
				_ = s.ApplyContext(ctx, cmd)
			default:
				if _, err := s.Tick(); err != nil {
					return err
				}
			}
			continue
		}

		var stepC <-chan time.Time
		if running {
			stepC = tickC
		}
		select {
		case <-ctx.Done():
			return s.interrupt(ctx)
		case cmd, ok := <-cmds:
			if !ok {
				cmds = nil
				continue
			}
			_ = s.ApplyContext(ctx, cmd)
		case <-stepC:
			if _, err := s.Tick(); err != nil {
				return err
			}
		}
	}
}

func (s *Session) interrupt(ctx context.Context) error {
	if s.engine.State() == astar.Running {
		_ = s.ApplyContext(context.WithoutCancel(ctx), CancelSearch())
	}
	return ctx.Err()
}
