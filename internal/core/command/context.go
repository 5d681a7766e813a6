package command

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/port"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Context is the state of one command invocation. It enforces that an
// interaction receives at most one initial response, followed by any number
// of followups, and races the autodefer timer against the handler.
type Context struct {
	ctx          context.Context
	respCtx      context.Context
	client       *Client
	command      Callable
	interaction  *domain.Interaction
	responder    port.InteractionResponder
	clock        Clock
	createdAt    time.Time
	invocationID uuid.UUID
	logger       zerolog.Logger

	args          map[string]any
	targetUser    *domain.User
	targetMember  *domain.Member
	targetMessage *domain.Message

	failed atomic.Bool

	// lock serializes response issuance between callers and the autodefer timer.
	lock      *semaphore.Weighted
	autodefer *autodeferTimer

	stateMu   sync.Mutex
	issued    bool
	responses []*InteractionResponse
}

func newContext(ctx context.Context, client *Client, cmd Callable, interaction *domain.Interaction) *Context {
	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("failed to generate invocation id")
	}

	createdAt := interaction.CreatedAt
	if createdAt.IsZero() {
		createdAt = client.clock.Now()
	}

	return &Context{
		ctx:          ctx,
		respCtx:      context.WithoutCancel(ctx),
		client:       client,
		command:      cmd,
		interaction:  interaction,
		responder:    client.responder,
		clock:        client.clock,
		createdAt:    createdAt,
		invocationID: id,
		logger: log.With().
			Str("invocation", id.String()).
			Str("interaction", interaction.ID.String()).
			Str("command", strings.Join(cmd.QualifiedName(), " ")).
			Logger(),
		args: make(map[string]any),
		lock: semaphore.NewWeighted(1),
	}
}

// Context returns the context the invocation was dispatched with.
func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) Client() *Client {
	return c.client
}

func (c *Context) Command() Callable {
	return c.command
}

func (c *Context) Interaction() *domain.Interaction {
	return c.interaction
}

// Author returns the invoking user.
func (c *Context) Author() *domain.User {
	return c.interaction.Author()
}

// Member returns the invoking member, nil outside guilds.
func (c *Context) Member() *domain.Member {
	return c.interaction.Member
}

func (c *Context) GuildID() domain.Snowflake {
	return c.interaction.GuildID
}

func (c *Context) ChannelID() domain.Snowflake {
	return c.interaction.ChannelID
}

func (c *Context) Locale() domain.Locale {
	return c.interaction.Locale
}

// TargetMember returns the member targeted by a user command, if resolved.
func (c *Context) TargetMember() *domain.Member {
	return c.targetMember
}

func (c *Context) InvocationID() uuid.UUID {
	return c.invocationID
}

func (c *Context) Logger() *zerolog.Logger {
	return &c.logger
}

// Option returns the decoded value of the parameter called name.
func (c *Context) Option(name string) (any, bool) {
	v, ok := c.args[name]
	return v, ok
}

// HasFailed reports whether the callback returned an error.
func (c *Context) HasFailed() bool {
	return c.failed.Load()
}

// IssuedResponse reports whether an initial response was sent.
func (c *Context) IssuedResponse() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	return c.issued
}

// Responses returns the tracked responses in the order they were issued.
func (c *Context) Responses() []*InteractionResponse {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	out := make([]*InteractionResponse, len(c.responses))
	copy(out, c.responses)

	return out
}

// IsValid reports whether the interaction can still be responded to: within
// 3 seconds of creation before the initial response, within 15 minutes after.
func (c *Context) IsValid() bool {
	elapsed := c.clock.Now().Sub(c.createdAt)
	if c.IssuedResponse() {
		return elapsed < FollowupWindow
	}

	return elapsed < InitialResponseWindow
}

// Respond sends the initial response, or a followup if one was already issued.
func (c *Context) Respond(content string, opts ...ResponseOption) (*InteractionResponse, error) {
	rc := newResponseConfig(content, opts)

	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.lock.Release(1)

	c.stopAutodefer()

	var resp *InteractionResponse

	if c.IssuedResponse() {
		msg, err := c.responder.CreateFollowup(c.respCtx, c.interaction, rc.payload)
		if err != nil {
			return nil, fmt.Errorf("creating followup: %w", err)
		}

		resp = &InteractionResponse{ctx: c, message: msg}
	} else {
		payload := rc.payload
		err := c.responder.CreateInitialResponse(c.respCtx, c.interaction, domain.InitialResponse{
			Type:    domain.ResponseMessage,
			Message: &payload,
		})
		if err != nil {
			return nil, fmt.Errorf("creating initial response: %w", err)
		}

		resp = &InteractionResponse{ctx: c, initial: true}
	}

	c.record(resp)

	if rc.deleteAfter > 0 {
		if err := resp.DeleteAfter(rc.deleteAfter); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

// Defer acknowledges the interaction with a placeholder to be edited later.
func (c *Context) Defer(flags domain.MessageFlags) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.lock.Release(1)

	if c.IssuedResponse() {
		return ErrResponseAlreadyIssued
	}

	c.stopAutodefer()

	err := c.responder.CreateInitialResponse(c.respCtx, c.interaction, domain.InitialResponse{
		Type:  domain.ResponseDeferred,
		Flags: flags,
	})
	if err != nil {
		return fmt.Errorf("deferring interaction: %w", err)
	}

	c.record(&InteractionResponse{ctx: c, initial: true})

	return nil
}

// RespondWithModal answers with a modal. It is only valid as the first response.
func (c *Context) RespondWithModal(modal domain.Modal) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.lock.Release(1)

	if c.IssuedResponse() {
		return ErrResponseAlreadyIssued
	}

	c.stopAutodefer()

	err := c.responder.CreateInitialResponse(c.respCtx, c.interaction, domain.InitialResponse{
		Type:  domain.ResponseModal,
		Modal: &modal,
	})
	if err != nil {
		return fmt.Errorf("responding with modal: %w", err)
	}

	c.stateMu.Lock()
	c.issued = true
	c.stateMu.Unlock()

	return nil
}

// EditInitialResponse replaces the initial response. It fails with
// ErrNoResponseIssued before an initial response exists.
func (c *Context) EditInitialResponse(content string, opts ...ResponseOption) (*InteractionResponse, error) {
	rc := newResponseConfig(content, opts)

	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.lock.Release(1)

	if !c.IssuedResponse() {
		return nil, ErrNoResponseIssued
	}

	c.stopAutodefer()

	msg, err := c.responder.EditInitialResponse(c.respCtx, c.interaction, rc.payload)
	if err != nil {
		return nil, fmt.Errorf("editing initial response: %w", err)
	}

	resp := &InteractionResponse{ctx: c, initial: true, message: msg}

	if rc.deleteAfter > 0 {
		if err := resp.DeleteAfter(rc.deleteAfter); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

func (c *Context) acquire() error {
	if err := c.lock.Acquire(c.respCtx, 1); err != nil {
		return fmt.Errorf("acquiring response lock: %w", err)
	}

	return nil
}

func (c *Context) record(resp *InteractionResponse) {
	c.stateMu.Lock()
	c.issued = true
	c.responses = append(c.responses, resp)
	c.stateMu.Unlock()
}

// canSendFallback reports whether the fallback error message may be sent: the
// interaction is still valid and nothing but an autodefer placeholder was sent.
func (c *Context) canSendFallback() bool {
	if !c.IsValid() {
		return false
	}

	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if !c.issued {
		return true
	}

	return len(c.responses) == 1 && c.responses[0].autodeferred
}
