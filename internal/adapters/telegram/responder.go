package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name Bot

// TelegramMessageLimit is the maximum number of characters in one message.
const TelegramMessageLimit = 4096

var ErrNoInitialMessage = errors.New("initial response has no message")

// Bot is the subset of *bot.Bot the transport uses.
type Bot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
}

type sentMessage struct {
	message *domain.Message
	at      time.Time
}

// Responder answers interactions with replies to the command message. The
// initial response message is remembered per interaction so that it can be
// edited or deleted later.
type Responder struct {
	bot Bot

	mu      sync.Mutex
	initial map[domain.Snowflake]sentMessage
	now     func() time.Time
}

func NewResponder(b Bot) *Responder {
	return &Responder{
		bot:     b,
		initial: make(map[domain.Snowflake]sentMessage),
		now:     time.Now,
	}
}

func (r *Responder) CreateInitialResponse(ctx context.Context, interaction *domain.Interaction,
	response domain.InitialResponse) error {
	switch response.Type {
	case domain.ResponseMessage:
		msg, err := r.sendReply(ctx, interaction, *response.Message)
		if err != nil {
			return err
		}

		r.remember(interaction.ID, msg)

		return nil
	case domain.ResponseDeferred:
		_, err := r.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: telegramChatID(interaction.ChannelID),
			Action: models.ChatActionTyping,
		})
		if err != nil {
			return fmt.Errorf("telegram API error: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%s response: %w", response.Type, domain.ErrUnsupported)
	}
}

func (r *Responder) CreateFollowup(ctx context.Context, interaction *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	return r.sendReply(ctx, interaction, payload)
}

func (r *Responder) FetchInitialResponse(_ context.Context, interaction *domain.Interaction) (*domain.Message, error) {
	msg, ok := r.lookup(interaction.ID)
	if !ok {
		return nil, ErrNoInitialMessage
	}

	return msg, nil
}

// EditInitialResponse edits the initial message. After a defer there is no
// message yet, so the content is sent as the initial message instead.
func (r *Responder) EditInitialResponse(ctx context.Context, interaction *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	initial, ok := r.lookup(interaction.ID)
	if !ok {
		msg, err := r.sendReply(ctx, interaction, payload)
		if err != nil {
			return nil, err
		}

		r.remember(interaction.ID, msg)

		return msg, nil
	}

	msg, err := r.edit(ctx, interaction, initial.ID, payload)
	if err != nil {
		return nil, err
	}

	r.remember(interaction.ID, msg)

	return msg, nil
}

func (r *Responder) EditFollowup(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake,
	payload domain.MessagePayload) (*domain.Message, error) {
	return r.edit(ctx, interaction, messageID, payload)
}

func (r *Responder) DeleteInitialResponse(ctx context.Context, interaction *domain.Interaction) error {
	initial, ok := r.lookup(interaction.ID)
	if !ok {
		return ErrNoInitialMessage
	}

	if err := r.delete(ctx, interaction, initial.ID); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.initial, interaction.ID)
	r.mu.Unlock()

	return nil
}

func (r *Responder) DeleteFollowup(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake) error {
	return r.delete(ctx, interaction, messageID)
}

// sendReply replies to the command message, splitting long text into several
// messages. The last message sent is returned.
func (r *Responder) sendReply(ctx context.Context, interaction *domain.Interaction,
	payload domain.MessagePayload) (*domain.Message, error) {
	chat := telegramChatID(interaction.ChannelID)
	replyTo, _ := strconv.Atoi(interaction.Token)

	var last *models.Message

	for _, chunk := range chunkText(render(payload), TelegramMessageLimit) {
		params := &bot.SendMessageParams{
			ChatID: chat,
			Text:   chunk,
		}

		if replyTo != 0 {
			params.ReplyParameters = &models.ReplyParameters{MessageID: replyTo, ChatID: chat}
		}

		msg, err := r.bot.SendMessage(ctx, params)
		if err != nil {
			log.Error().Err(err).Int64("chatID", chat).Msg("failed to send message reply")
			return nil, fmt.Errorf("telegram API error: %w", err)
		}

		last = msg
	}

	return toMessage(last, interaction.ChannelID), nil
}

func (r *Responder) edit(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake,
	payload domain.MessagePayload) (*domain.Message, error) {
	text := render(payload)
	if len([]rune(text)) > TelegramMessageLimit {
		text = string([]rune(text)[:TelegramMessageLimit])
	}

	msg, err := r.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    telegramChatID(interaction.ChannelID),
		MessageID: int(messageID),
		Text:      text,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram API error: %w", err)
	}

	return toMessage(msg, interaction.ChannelID), nil
}

func (r *Responder) delete(ctx context.Context, interaction *domain.Interaction, messageID domain.Snowflake) error {
	_, err := r.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    telegramChatID(interaction.ChannelID),
		MessageID: int(messageID),
	})
	if err != nil {
		return fmt.Errorf("telegram API error: %w", err)
	}

	return nil
}

// remember stores the initial message and forgets messages of interactions
// older than the followup window.
func (r *Responder) remember(id domain.Snowflake, msg *domain.Message) {
	if msg == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, sent := range r.initial {
		if now.Sub(sent.at) > command.FollowupWindow {
			delete(r.initial, k)
		}
	}

	r.initial[id] = sentMessage{message: msg, at: now}
}

func (r *Responder) lookup(id domain.Snowflake) (*domain.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sent, ok := r.initial[id]

	return sent.message, ok
}

// render flattens content and embeds into plain text.
func render(payload domain.MessagePayload) string {
	var sb strings.Builder

	sb.WriteString(payload.Content)

	for _, e := range payload.Embeds {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}

		if e.Title != "" {
			sb.WriteString(e.Title + "\n")
		}

		if e.Description != "" {
			sb.WriteString(e.Description + "\n")
		}

		for _, f := range e.Fields {
			sb.WriteString(f.Name + ": " + f.Value + "\n")
		}

		if e.URL != "" {
			sb.WriteString(e.URL + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func chunkText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}

func toMessage(msg *models.Message, channel domain.Snowflake) *domain.Message {
	if msg == nil {
		return nil
	}

	out := &domain.Message{
		ID:        domain.Snowflake(uint64(msg.ID)),
		ChannelID: channel,
		Content:   msg.Text,
	}

	if msg.From != nil {
		out.Author = toUser(msg.From)
	}

	return out
}
