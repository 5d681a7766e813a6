package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func modelResponse(text string, tokens int) domain.ModelResponse {
	return domain.ModelResponse{
		Response: text,
		Metadata: domain.ResponseMetadata{Model: "test-model", CompletionTokens: tokens / 2, TotalTokens: tokens},
	}
}

func ask(prompt string) *domain.Interaction {
	return slash("ask", opt("prompt", domain.OptionString, prompt))
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name       string
		prompt     string
		wantModel  string
		wantPrompt string
	}{
		{
			name:       "default model",
			prompt:     "tell me a joke",
			wantModel:  "openai/gpt-4.1",
			wantPrompt: "tell me a joke",
		},
		{
			name:       "keyword overrides model",
			prompt:     "#claude tell me a joke",
			wantModel:  "anthropic/claude-sonnet-4",
			wantPrompt: "tell me a joke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.generator.On("GenerateFromPrompt", mock.Anything, tt.wantModel, tt.wantPrompt).
				Return(modelResponse("Why did the gopher cross the road?", 30), nil).Once()

			f.dispatch(t, ask(tt.prompt))

			assert.Equal(t, []reply{{Kind: "initial", Content: "Why did the gopher cross the road?"}},
				f.responder.Replies())
			assert.Equal(t, 30, f.usage.Usage(invokerID))
			f.generator.AssertExpectations(t)
		})
	}
}

func TestAsk_PreferredModel(t *testing.T) {
	f := newFixture(t)

	f.dispatch(t, slash("settings", subgroup("model", sub("set", opt("name", domain.OptionString, "claude")))))

	f.generator.On("GenerateFromPrompt", mock.Anything, "anthropic/claude-sonnet-4", "hi").
		Return(modelResponse("hello", 2), nil).Once()

	f.dispatch(t, ask("hi"))

	assert.Equal(t, []string{"✅ From now on ask uses `anthropic/claude-sonnet-4`.", "hello"}, f.responder.Contents())
	f.generator.AssertExpectations(t)
}

func TestAsk_Attachment(t *testing.T) {
	f := newFixture(t)

	att := &domain.Attachment{ID: fileID, Filename: "notes.txt", ContentType: "text/plain"}
	i := slash("ask",
		opt("prompt", domain.OptionString, "summarize"),
		opt("file", domain.OptionAttachment, fileID),
	)
	i.Resolved = &domain.ResolvedData{Attachments: map[domain.Snowflake]*domain.Attachment{fileID: att}}

	f.fetcher.On("FetchText", mock.Anything, att).Return("buy milk", nil).Once()
	f.generator.On("GenerateFromPrompt", mock.Anything, "openai/gpt-4.1", "summarize\n\nnotes.txt:\nbuy milk").
		Return(modelResponse("milk", 4), nil).Once()

	f.dispatch(t, i)

	assert.Equal(t, []string{"milk"}, f.responder.Contents())
	f.fetcher.AssertExpectations(t)
	f.generator.AssertExpectations(t)
}

func TestAsk_DebugReplies(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("bot.debug_replies", true)

	f := newFixture(t)
	f.generator.On("GenerateFromPrompt", mock.Anything, mock.Anything, "hi").
		Return(modelResponse("hello", 10), nil).Once()

	f.dispatch(t, ask("hi"))

	assert.Equal(t, []reply{
		{Kind: "initial", Content: "hello"},
		{Kind: "followup", Content: "model: `test-model`, completion tokens: 5, total tokens: 10", Ephemeral: true},
	}, f.responder.Replies())
}

func TestAsk_BudgetExceeded(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("usage.daily_token_limit", 10)

	f := newFixture(t)
	f.usage.AddUsage(invokerID, 11)

	f.dispatch(t, ask("hi"))

	replies := f.responder.Replies()
	require.Len(t, replies, 1)
	assert.True(t, replies[0].Ephemeral)
	assert.True(t, strings.HasPrefix(replies[0].Content, "💸 You have used up your daily budget of 10 tokens."))
	f.generator.AssertNotCalled(t, "GenerateFromPrompt", mock.Anything, mock.Anything, mock.Anything)
}

func TestAsk_Cooldown(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("ask.rate_limit", 1)
	viper.Set("ask.rate_period", "1h")

	f := newFixture(t)
	f.generator.On("GenerateFromPrompt", mock.Anything, mock.Anything, "hi").
		Return(modelResponse("hello", 1), nil)

	f.dispatch(t, as(ask("hi"), ownerID))
	f.dispatch(t, as(ask("hi"), ownerID))
	f.dispatch(t, as(slash("settings", subgroup("limits", sub("status"))), ownerID))
	f.dispatch(t, as(slash("settings", subgroup("limits", sub("reset"))), ownerID))
	f.dispatch(t, as(ask("hi"), ownerID))

	contents := f.responder.Contents()
	require.Len(t, contents, 5)
	assert.Equal(t, "hello", contents[0])
	assert.True(t, strings.HasPrefix(contents[1], "⏳ Slow down! Try again in "), contents[1])
	assert.Equal(t, "⏳ You are on cooldown for ask.", contents[2])
	assert.Equal(t, "✅ Cooldown reset.", contents[3])
	assert.Equal(t, "hello", contents[4])
	f.generator.AssertNumberOfCalls(t, "GenerateFromPrompt", 2)
}

func TestAsk_GeneratorFailureFallsBack(t *testing.T) {
	f := newFixture(t)
	f.generator.On("GenerateFromPrompt", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ModelResponse{}, errors.New("upstream down")).Once()

	f.dispatch(t, ask("hi"))

	assert.Equal(t, []string{command.FallbackMessage}, f.responder.Contents())
}

func TestAsk_EmptyPrompt(t *testing.T) {
	f := newFixture(t)
	f.generator.On("GenerateFromPrompt", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ModelResponse{}, domain.ErrEmptyPrompt).Once()

	f.dispatch(t, ask("#gpt"))

	assert.Equal(t, []string{"❌ Please tell me what you want to know."}, f.responder.Contents())
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{
			name:  "short",
			text:  "hello",
			limit: 10,
			want:  []string{"hello"},
		},
		{
			name:  "empty",
			text:  "  ",
			limit: 10,
			want:  []string{"🤷 The model returned an empty response."},
		},
		{
			name:  "breaks at newline",
			text:  "aaaaaa\nbbbbbb",
			limit: 10,
			want:  []string{"aaaaaa", "bbbbbb"},
		},
		{
			name:  "hard cut without newline",
			text:  "abcdefghijkl",
			limit: 5,
			want:  []string{"abcde", "fghij", "kl"},
		},
		{
			name:  "counts runes",
			text:  "äöüäöü",
			limit: 3,
			want:  []string{"äöü", "äöü"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitMessage(tt.text, tt.limit))
		})
	}
}
