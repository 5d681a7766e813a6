package command

import (
	"runtime/debug"
)

// HookResult is returned by a pre-hook. A zero result lets the invocation continue.
type HookResult struct {
	Abort bool
	// Reason is an optional explanation recorded in the debug log on abort.
	Reason string
}

// Abort is a HookResult that silently stops the invocation.
func Abort(reason string) HookResult {
	return HookResult{Abort: true, Reason: reason}
}

// Hook runs before the callback. Returning an error aborts the invocation and
// hands the error to the error handlers.
type Hook interface {
	Check(ctx *Context) (HookResult, error)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx *Context) (HookResult, error)

func (f HookFunc) Check(ctx *Context) (HookResult, error) {
	return f(ctx)
}

// PostHook runs after the callback, whether or not it failed.
type PostHook interface {
	After(ctx *Context) error
}

type PostHookFunc func(ctx *Context) error

func (f PostHookFunc) After(ctx *Context) error {
	return f(ctx)
}

// Limiter is a hook that keeps per-bucket state.
type Limiter interface {
	Hook
	// Reset clears the bucket the context falls into.
	Reset(ctx *Context)
	// IsRateLimited reports whether the next call in the context's bucket would be rejected.
	IsRateLimited(ctx *Context) bool
}

// ConcurrencyLimiter bounds how many invocations may run at once per bucket.
type ConcurrencyLimiter interface {
	// TryAcquire takes a slot in the context's bucket without blocking.
	TryAcquire(ctx *Context) bool
	Release(ctx *Context)
	Limit() int
}

// resolveHooks returns the pre- and post-hooks of n: client, plugin, then the
// tree from the root down to n.
func resolveHooks(n Node) ([]Hook, []PostHook) {
	var hooks []Hook
	var postHooks []PostHook

	if top := n.root(); top != nil {
		reg := top.reg()
		if reg.client != nil {
			hooks = append(hooks, reg.client.hooks...)
			postHooks = append(postHooks, reg.client.postHooks...)
		}
		if reg.plugin != nil {
			hooks = append(hooks, reg.plugin.hooks...)
			postHooks = append(postHooks, reg.plugin.postHooks...)
		}
	}

	for _, node := range scopeChain(n) {
		hooks = append(hooks, node.Hooks()...)
		postHooks = append(postHooks, node.PostHooks()...)
	}

	return hooks, postHooks
}

// resolveConcurrencyLimiter returns the nearest limiter from n up to the client.
func resolveConcurrencyLimiter(n Node) ConcurrencyLimiter {
	for cur := n; cur != nil; cur = cur.parent() {
		if l := cur.concurrencyLimiter(); l != nil {
			return l
		}
	}

	top := n.root()
	if top == nil {
		return nil
	}

	reg := top.reg()
	if reg.plugin != nil && reg.plugin.limiter != nil {
		return reg.plugin.limiter
	}
	if reg.client != nil {
		return reg.client.limiter
	}

	return nil
}

func resetLimiters(n Node, ctx *Context) {
	for _, h := range n.Hooks() {
		if l, ok := h.(Limiter); ok {
			l.Reset(ctx)
		}
	}
}

// invoke runs the hook chain and the callback of cmd.
func (c *Client) invoke(ctx *Context, cmd Callable) {
	if limiter := resolveConcurrencyLimiter(cmd); limiter != nil {
		if !limiter.TryAcquire(ctx) {
			c.propagate(ctx, cmd, &MaxConcurrencyReachedError{Limit: limiter.Limit()})
			return
		}
		defer limiter.Release(ctx)
	}

	hooks, postHooks := resolveHooks(cmd)

	defer c.runPostHooks(ctx, cmd, postHooks)

	if aborted := c.runPreHooks(ctx, cmd, hooks); aborted {
		return
	}

	if err := safeCallback(cmd.callback(), ctx); err != nil {
		ctx.failed.Store(true)
		c.propagate(ctx, cmd, err)
	}
}

func (c *Client) runPreHooks(ctx *Context, cmd Callable, hooks []Hook) bool {
	for _, hook := range hooks {
		res, err := safeHook(hook, ctx)
		if err != nil {
			ctx.logger.Debug().Err(err).Msg("pre-hook failed, aborting invocation")
			c.propagate(ctx, cmd, err)
			return true
		}

		if res.Abort {
			ctx.logger.Debug().Str("reason", res.Reason).Msg("pre-hook aborted invocation")
			return true
		}
	}

	return false
}

// runPostHooks runs every post-hook. A failing post-hook is handed to the
// error handlers and the remaining post-hooks still run.
func (c *Client) runPostHooks(ctx *Context, cmd Callable, hooks []PostHook) {
	for _, hook := range hooks {
		if err := safePostHook(hook, ctx); err != nil {
			c.propagate(ctx, cmd, err)
		}
	}
}

func safeCallback(cb Callback, ctx *Context) (err error) {
	defer recoverInto(&err)
	return cb(ctx)
}

func safeHook(hook Hook, ctx *Context) (res HookResult, err error) {
	defer recoverInto(&err)
	return hook.Check(ctx)
}

func safePostHook(hook PostHook, ctx *Context) (err error) {
	defer recoverInto(&err)
	return hook.After(ctx)
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = &PanicError{Value: r, Stack: debug.Stack()}
	}
}
