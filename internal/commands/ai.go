package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/hook"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/service"
	"github.com/spf13/viper"
)

const debugReplyTemplate = "model: `%s`, completion tokens: %d, total tokens: %d"

func (s *Set) ai() (*command.Plugin, error) {
	plugin, err := command.NewPlugin("ai", command.WithErrorHandler(s.handleError))
	if err != nil {
		return nil, err
	}

	s.prompt = command.NewParam[string]("prompt", command.StrParams{
		Description: "What do you want to know? Add a #keyword to pick a model.",
		MinLength:   command.Ptr(1),
		MaxLength:   command.Ptr(MessageLimit),
	})
	s.file = command.NewParam[*domain.Attachment]("file", command.AttachmentParams{
		Description: "A text file to add to the prompt",
	}).Optional()

	period, limit := askRateLimit()
	s.askLimiter = hook.UserLimiter(period, limit)

	s.ask, err = command.NewSlashCommand("ask", "Ask a language model", s.handleAsk,
		command.WithParams(s.prompt, s.file),
		command.WithHooks(command.HookFunc(s.checkBudget), s.askLimiter),
		command.WithConcurrencyLimiter(hook.UserConcurrency(1)),
	)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings()
	if err != nil {
		return nil, err
	}

	for _, cmd := range []command.TopLevelCommand{s.ask, settings} {
		if err := plugin.Include(cmd); err != nil {
			return nil, err
		}
	}

	return plugin, nil
}

// checkBudget stops users that spent their daily token budget. It answers
// them itself and aborts quietly.
func (s *Set) checkBudget(ctx *command.Context) (command.HookResult, error) {
	author := ctx.Author()
	if author == nil {
		return command.HookResult{}, errNoAuthor
	}

	err := s.deps.Usage.CheckLimit(author.ID)

	var budgetErr *service.BudgetExceededError
	if errors.As(err, &budgetErr) {
		if err := respondEphemeral(ctx, "💸 "+budgetErr.Error()); err != nil {
			return command.HookResult{}, err
		}

		return command.Abort("daily token budget exceeded"), nil
	}

	return command.HookResult{}, err
}

func (s *Set) handleAsk(ctx *command.Context) error {
	author := ctx.Author()
	if author == nil {
		return errNoAuthor
	}

	prompt, model := s.deps.Models.ExtractModel(s.prompt.Value(ctx))
	if model == "" {
		model = s.deps.Models.ModelFor(author.ID)
	}

	if att := s.file.Value(ctx); att != nil {
		if s.deps.Attachments == nil {
			return fmt.Errorf("attachment %s: %w", att.Filename, domain.ErrUnsupported)
		}

		content, err := s.deps.Attachments.FetchText(ctx.Context(), att)
		if err != nil {
			return fmt.Errorf("failed to fetch attachment: %w", err)
		}

		prompt = fmt.Sprintf("%s\n\n%s:\n%s", prompt, att.Filename, content)
	}

	ctx.Logger().Debug().Str("model", model).Int("length", len(prompt)).Msg("generating response")

	resp, err := s.deps.Generator.GenerateFromPrompt(ctx.Context(), model, strings.TrimSpace(prompt))
	if err != nil {
		return fmt.Errorf("failed to generate response: %w", err)
	}

	s.deps.Usage.AddUsage(author.ID, resp.Metadata.TotalTokens)

	for _, chunk := range splitMessage(resp.Response, MessageLimit) {
		if _, err := ctx.Respond(chunk); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}
	}

	if viper.GetBool("bot.debug_replies") {
		_, err := ctx.Respond(fmt.Sprintf(debugReplyTemplate,
			resp.Metadata.Model, resp.Metadata.CompletionTokens, resp.Metadata.TotalTokens), command.WithEphemeral())
		if err != nil {
			return fmt.Errorf("failed to send debug reply: %w", err)
		}
	}

	return nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring to
// break at a newline.
func splitMessage(text string, limit int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return []string{"🤷 The model returned an empty response."}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}

		chunks = append(chunks, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
	}

	return append(chunks, strings.TrimSpace(string(runes)))
}
