package commands

import (
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

const feedbackModalID = "feedback"

func (s *Set) general() (*command.Plugin, error) {
	plugin, err := command.NewPlugin("general", command.WithErrorHandler(s.handleError))
	if err != nil {
		return nil, err
	}

	ping, err := command.NewSlashCommand("ping", "Check that the bot is alive", func(ctx *command.Context) error {
		_, err := ctx.Respond("Pong!")
		return err
	}, command.WithAutodefer(command.AutodeferOff))
	if err != nil {
		return nil, err
	}

	a := command.NewParam[int]("a", command.IntParams{Description: "First number"})
	b := command.NewParam[int]("b", command.IntParams{Description: "Second number"})

	sum, err := command.NewSlashCommand("sum", "Add two numbers", func(ctx *command.Context) error {
		_, err := ctx.Respond(fmt.Sprintf("Sum: %d", a.Value(ctx)+b.Value(ctx)))
		return err
	}, command.WithParams(a, b))
	if err != nil {
		return nil, err
	}

	color := command.NewParam[domain.Color]("color", command.ColorParams{
		Description: "A color like #5865F2 or 88 101 242",
	})

	preview, err := command.NewSlashCommand("color", "Preview a color", func(ctx *command.Context) error {
		c := color.Value(ctx)

		_, err := ctx.Respond("", command.WithEmbeds(domain.Embed{
			Title:       c.String(),
			Description: fmt.Sprintf("RGB %d, %d, %d", c.R, c.G, c.B),
			Color:       c.Int(),
		}))

		return err
	}, command.WithParams(color))
	if err != nil {
		return nil, err
	}

	emoji := command.NewParam[domain.Emoji]("emoji", command.EmojiParams{
		Description: "A unicode or custom emoji",
	})

	inspect, err := command.NewSlashCommand("emoji", "Show details about an emoji", func(ctx *command.Context) error {
		_, err := ctx.Respond(describeEmoji(emoji.Value(ctx)))
		return err
	}, command.WithParams(emoji))
	if err != nil {
		return nil, err
	}

	feedback, err := command.NewSlashCommand("feedback", "Send feedback to the bot developers",
		func(ctx *command.Context) error {
			return ctx.RespondWithModal(feedbackModal())
		}, command.WithAutodefer(command.AutodeferOff))
	if err != nil {
		return nil, err
	}

	for _, cmd := range []command.TopLevelCommand{ping, sum, preview, inspect, feedback} {
		if err := plugin.Include(cmd); err != nil {
			return nil, err
		}
	}

	return plugin, nil
}

func describeEmoji(e domain.Emoji) string {
	if e.IsCustom() {
		ext := "png"
		if e.Animated {
			ext = "gif"
		}

		return fmt.Sprintf("%s `:%s:` (ID %s)\nhttps://cdn.discordapp.com/emojis/%s.%s", e, e.Name, e.ID, e.ID, ext)
	}

	codepoints := make([]string, 0, len(e.Name))
	for _, r := range e.Name {
		codepoints = append(codepoints, fmt.Sprintf("U+%04X", r))
	}

	return fmt.Sprintf("%s `%s`", e, strings.Join(codepoints, " "))
}

func feedbackModal() domain.Modal {
	return domain.Modal{
		CustomID: feedbackModalID,
		Title:    "Feedback",
		Inputs: []domain.TextInput{
			{
				CustomID:  "subject",
				Label:     "Subject",
				Style:     domain.TextInputShort,
				Required:  true,
				MaxLength: 100,
			},
			{
				CustomID:    "body",
				Label:       "What's on your mind?",
				Style:       domain.TextInputParagraph,
				Placeholder: "Bugs, ideas, anything",
				Required:    true,
				MinLength:   10,
				MaxLength:   1000,
			},
		},
	}
}
