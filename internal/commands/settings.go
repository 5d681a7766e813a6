package commands

import (
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/hook"
)

func (s *Set) settings() (*command.SlashGroup, error) {
	group, err := command.NewSlashGroup("settings", "Your personal bot settings",
		command.WithAutodefer(command.AutodeferOff))
	if err != nil {
		return nil, err
	}

	info, err := command.NewSlashSubcommand("info", "Show your current settings", s.showInfo)
	if err != nil {
		return nil, err
	}

	usage, err := command.NewSlashSubcommand("usage", "Show how many tokens you used today", s.showUsage)
	if err != nil {
		return nil, err
	}

	for _, sub := range []*command.SlashSubcommand{info, usage} {
		if err := group.Include(sub); err != nil {
			return nil, err
		}
	}

	model, err := s.modelSubgroup()
	if err != nil {
		return nil, err
	}

	limits, err := s.limitsSubgroup()
	if err != nil {
		return nil, err
	}

	for _, sg := range []*command.SlashSubgroup{model, limits} {
		if err := group.IncludeSubgroup(sg); err != nil {
			return nil, err
		}
	}

	return group, nil
}

func (s *Set) modelSubgroup() (*command.SlashSubgroup, error) {
	sg, err := command.NewSlashSubgroup("model", "Choose the model ask uses")
	if err != nil {
		return nil, err
	}

	name := command.NewParam[string]("name", command.StrParams{
		Description:  "Keyword or identifier of the model",
		Autocomplete: s.completeModel,
	})

	set, err := command.NewSlashSubcommand("set", "Set your preferred model", func(ctx *command.Context) error {
		author := ctx.Author()
		if author == nil {
			return errNoAuthor
		}

		m, err := s.deps.Models.Prefer(author.ID, name.Value(ctx))
		if err != nil {
			return err
		}

		return respondEphemeral(ctx, fmt.Sprintf("✅ From now on ask uses `%s`.", m.Identifier))
	}, command.WithParams(name))
	if err != nil {
		return nil, err
	}

	list, err := command.NewSlashSubcommand("list", "List the available models", s.listModels)
	if err != nil {
		return nil, err
	}

	for _, sub := range []*command.SlashSubcommand{set, list} {
		if err := sg.Include(sub); err != nil {
			return nil, err
		}
	}

	return sg, nil
}

func (s *Set) limitsSubgroup() (*command.SlashSubgroup, error) {
	sg, err := command.NewSlashSubgroup("limits", "Inspect the ask cooldown")
	if err != nil {
		return nil, err
	}

	status, err := command.NewSlashSubcommand("status", "Check whether you are on cooldown",
		func(ctx *command.Context) error {
			if s.askLimiter.IsRateLimited(ctx) {
				return respondEphemeral(ctx, "⏳ You are on cooldown for ask.")
			}

			return respondEphemeral(ctx, "✅ You can use ask right now.")
		})
	if err != nil {
		return nil, err
	}

	reset, err := command.NewSlashSubcommand("reset", "Reset your ask cooldown", func(ctx *command.Context) error {
		s.ask.ResetLimiters(ctx)
		return respondEphemeral(ctx, "✅ Cooldown reset.")
	}, command.WithHooks(hook.OwnerOnly()))
	if err != nil {
		return nil, err
	}

	for _, sub := range []*command.SlashSubcommand{status, reset} {
		if err := sg.Include(sub); err != nil {
			return nil, err
		}
	}

	return sg, nil
}

func (s *Set) showInfo(ctx *command.Context) error {
	author := ctx.Author()
	if author == nil {
		return errNoAuthor
	}

	return respondEphemeral(ctx, fmt.Sprintf("Model: `%s`\nLocale: `%s`",
		s.deps.Models.ModelFor(author.ID), ctx.Locale()))
}

const usageMessage = "Tokens used today: %d."

func (s *Set) showUsage(ctx *command.Context) error {
	author := ctx.Author()
	if author == nil {
		return errNoAuthor
	}

	return respondEphemeral(ctx, fmt.Sprintf(usageMessage, s.deps.Usage.Usage(author.ID)))
}

func (s *Set) listModels(ctx *command.Context) error {
	sb := &strings.Builder{}

	sb.WriteString("You can choose the model ask uses by adding a #keyword to your prompt, " +
		"or with /settings model set. Here's a list of currently active models:\n\n")

	for _, model := range s.deps.Models.Models() {
		marker := ""
		if model.Identifier == s.deps.Models.Default() {
			marker = " (default)"
		}

		fmt.Fprintf(sb, " - Model: %s, Keyword: %s%s\n", model.Identifier, model.Keyword, marker)
	}

	sb.WriteString("\nKeep in mind that not every model can read attached files well.")

	return respondEphemeral(ctx, sb.String())
}

func (s *Set) completeModel(data *command.AutocompleteData) ([]domain.Choice, error) {
	models := s.deps.Models.Search(data.Text())

	choices := make([]domain.Choice, 0, len(models))
	for _, m := range models {
		choices = append(choices, domain.Choice{Name: fmt.Sprintf("%s (%s)", m.Keyword, m.Identifier), Value: m.Keyword})
	}

	return choices, nil
}
