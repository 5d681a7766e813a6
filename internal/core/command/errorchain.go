package command

import (
	"errors"
	"strings"
)

// FallbackMessage is sent when no error handler handled an error and the
// interaction can still be answered.
const FallbackMessage = "❌ Something went wrong. Please contact the bot developer."

// ErrorHandler handles an error raised below its scope. Returning nil marks the
// error handled; returning an error (the same or a different one) passes it to
// the next scope up.
type ErrorHandler func(ctx *Context, err error) error

// errorChain returns the handlers of n and its ancestors, innermost first,
// followed by the plugin handler.
func errorChain(n Node) []ErrorHandler {
	var chain []ErrorHandler

	for cur := n; cur != nil; cur = cur.parent() {
		if h := cur.ErrorHandler(); h != nil {
			chain = append(chain, h)
		}
	}

	if top := n.root(); top != nil {
		if p := top.reg().plugin; p != nil && p.errorHandler != nil {
			chain = append(chain, p.errorHandler)
		}
	}

	return chain
}

// propagate offers err to each error handler from cmd outwards, then to the client.
func (c *Client) propagate(ctx *Context, cmd Node, err error) {
	for _, handler := range errorChain(cmd) {
		if err = safeErrorHandler(handler, ctx, err); err == nil {
			return
		}
	}

	c.onError(ctx, err)
}

func (c *Client) onError(ctx *Context, err error) {
	if c.errorHandler != nil {
		if err = safeErrorHandler(c.errorHandler, ctx, err); err == nil {
			return
		}
	}

	c.fallback(ctx, err)
}

// fallback logs an unhandled error and makes a best-effort attempt to tell the user.
func (c *Client) fallback(ctx *Context, err error) {
	event := ctx.logger.Error().Err(err).Str("command", strings.Join(ctx.command.QualifiedName(), " "))

	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		event = event.Bytes("stack", panicErr.Stack)
	}

	event.Msg("unhandled error in command callback")

	if !ctx.canSendFallback() {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			ctx.logger.Debug().Interface("panic", r).Msg("fallback response panicked")
		}
	}()

	if _, ferr := ctx.Respond(FallbackMessage); ferr != nil {
		ctx.logger.Debug().Err(ferr).Msg("failed to send fallback response")
	}
}

func safeErrorHandler(handler ErrorHandler, ctx *Context, err error) (out error) {
	defer recoverInto(&out)
	return handler(ctx, err)
}
