package command

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

type responseConfig struct {
	payload     domain.MessagePayload
	deleteAfter time.Duration
}

type ResponseOption func(*responseConfig)

func WithEphemeral() ResponseOption {
	return func(rc *responseConfig) {
		rc.payload.Flags |= domain.FlagEphemeral
	}
}

func WithFlags(flags domain.MessageFlags) ResponseOption {
	return func(rc *responseConfig) {
		rc.payload.Flags |= flags
	}
}

func WithEmbeds(embeds ...domain.Embed) ResponseOption {
	return func(rc *responseConfig) {
		rc.payload.Embeds = append(rc.payload.Embeds, embeds...)
	}
}

func WithTTS() ResponseOption {
	return func(rc *responseConfig) {
		rc.payload.TTS = true
	}
}

// WithDeleteAfter schedules the response for deletion once d has elapsed.
func WithDeleteAfter(d time.Duration) ResponseOption {
	return func(rc *responseConfig) {
		rc.deleteAfter = d
	}
}

func newResponseConfig(content string, opts []ResponseOption) responseConfig {
	rc := responseConfig{payload: domain.MessagePayload{Content: content}}
	for _, opt := range opts {
		opt(&rc)
	}

	return rc
}

// InteractionResponse is a response issued through a Context: the initial
// response or a followup.
type InteractionResponse struct {
	ctx          *Context
	initial      bool
	autodeferred bool

	mu      sync.Mutex
	message *domain.Message

	deleteScheduled atomic.Bool
}

// IsInitial reports whether this is the initial response rather than a followup.
func (r *InteractionResponse) IsInitial() bool {
	return r.initial
}

// Message returns the message behind the response, fetching the initial
// response message on first use.
func (r *InteractionResponse) Message() (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.message != nil {
		return r.message, nil
	}

	if !r.initial {
		return nil, errors.New("followup response has no message")
	}

	msg, err := r.ctx.responder.FetchInitialResponse(r.ctx.respCtx, r.ctx.interaction)
	if err != nil {
		return nil, fmt.Errorf("fetching initial response: %w", err)
	}

	r.message = msg

	return msg, nil
}

// Edit replaces the content of the response.
func (r *InteractionResponse) Edit(content string, opts ...ResponseOption) (*domain.Message, error) {
	rc := newResponseConfig(content, opts)

	var (
		msg *domain.Message
		err error
	)

	if r.initial {
		msg, err = r.ctx.responder.EditInitialResponse(r.ctx.respCtx, r.ctx.interaction, rc.payload)
	} else {
		msg, err = r.ctx.responder.EditFollowup(r.ctx.respCtx, r.ctx.interaction, r.followupID(), rc.payload)
	}
	if err != nil {
		return nil, fmt.Errorf("editing response: %w", err)
	}

	r.mu.Lock()
	r.message = msg
	r.mu.Unlock()

	return msg, nil
}

func (r *InteractionResponse) Delete() error {
	if r.initial {
		if err := r.ctx.responder.DeleteInitialResponse(r.ctx.respCtx, r.ctx.interaction); err != nil {
			return fmt.Errorf("deleting initial response: %w", err)
		}
		return nil
	}

	if err := r.ctx.responder.DeleteFollowup(r.ctx.respCtx, r.ctx.interaction, r.followupID()); err != nil {
		return fmt.Errorf("deleting followup: %w", err)
	}

	return nil
}

// DeleteAfter deletes the response in the background once d has elapsed.
// A failed deletion is only logged. Scheduling twice returns ErrDeleteAlreadyScheduled.
func (r *InteractionResponse) DeleteAfter(d time.Duration) error {
	if !r.deleteScheduled.CompareAndSwap(false, true) {
		return ErrDeleteAlreadyScheduled
	}

	go func() {
		<-r.ctx.clock.After(d)

		if err := r.Delete(); err != nil {
			r.ctx.logger.Debug().Err(err).Msg("delete-after failed")
		}
	}()

	return nil
}

func (r *InteractionResponse) followupID() domain.Snowflake {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.message == nil {
		return 0
	}

	return r.message.ID
}
