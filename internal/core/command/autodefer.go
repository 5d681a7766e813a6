package command

import (
	"context"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// autodeferTimer is the handle of an armed autodefer. stop cancels it and
// waits until its goroutine has exited.
type autodeferTimer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (t *autodeferTimer) stop() {
	t.cancel()
	<-t.done
}

// startAutodefer arms a timer that defers the interaction once the grace
// period elapses without a response. Must be called before the callback runs.
func (c *Context) startAutodefer(mode AutodeferMode) {
	if mode == AutodeferOff {
		return
	}

	ctx, cancel := context.WithCancel(c.respCtx)
	t := &autodeferTimer{cancel: cancel, done: make(chan struct{})}
	c.autodefer = t

	go func() {
		defer close(t.done)
		defer cancel()

		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(AutodeferGrace):
		}

		if err := c.lock.Acquire(ctx, 1); err != nil {
			return
		}
		defer c.lock.Release(1)

		if c.IssuedResponse() {
			return
		}

		var flags domain.MessageFlags
		if mode == AutodeferEphemeral {
			flags = domain.FlagEphemeral
		}

		err := c.responder.CreateInitialResponse(ctx, c.interaction, domain.InitialResponse{
			Type:  domain.ResponseDeferred,
			Flags: flags,
		})
		if err != nil {
			c.logger.Warn().Err(err).Msg("failed to autodefer interaction")
			return
		}

		c.logger.Debug().Str("mode", mode.String()).Msg("autodeferred interaction")
		c.record(&InteractionResponse{ctx: c, initial: true, autodeferred: true})
	}()
}

// stopAutodefer cancels and awaits a pending autodefer. The caller must hold the lock.
func (c *Context) stopAutodefer() {
	if c.autodefer == nil {
		return
	}

	c.autodefer.stop()
	c.autodefer = nil
}
