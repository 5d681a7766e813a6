package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/port"
	"github.com/rs/zerolog/log"
)

// AutocompleteFunc returns suggestions for the option the user is typing in.
type AutocompleteFunc func(data *AutocompleteData) ([]domain.Choice, error)

// AutocompleteData is the partial input of an autocomplete interaction.
type AutocompleteData struct {
	ctx         context.Context
	Client      *Client
	Command     Callable
	Interaction *domain.Interaction
	// Option is the schema of the focused option.
	Option *OptionSchema
	// Value is the partial value of the focused option.
	Value any
	// Options holds every option the user has filled in so far.
	Options []*domain.InteractionOption
}

func (d *AutocompleteData) Context() context.Context {
	return d.ctx
}

func (d *AutocompleteData) Author() *domain.User {
	return d.Interaction.Author()
}

// Text returns the focused value as typed.
func (d *AutocompleteData) Text() string {
	if s, ok := d.Value.(string); ok {
		return s
	}

	if d.Value == nil {
		return ""
	}

	return fmt.Sprint(d.Value)
}

// StringChoices turns values into choices whose name and value are the same.
func StringChoices(values ...string) []domain.Choice {
	choices := make([]domain.Choice, 0, len(values))
	for _, v := range values {
		choices = append(choices, domain.Choice{Name: v, Value: v})
	}

	return choices
}

// HandleAutocompleteInteraction answers an autocomplete interaction with the
// suggestions of the focused option's callback. At most 25 choices are sent.
func (c *Client) HandleAutocompleteInteraction(ctx context.Context, interaction *domain.Interaction) error {
	top, ok := c.Command(domain.CommandSlash, interaction.CommandName)
	if !ok {
		log.Warn().Str("command", interaction.CommandName).Msg("received autocomplete for unknown command")
		return nil
	}

	cmd, err := resolveCallable(top, interaction)
	if err != nil {
		return err
	}

	name := strings.Join(cmd.QualifiedName(), " ")
	options := interaction.LeafOptions()

	var focused *domain.InteractionOption
	for _, opt := range options {
		if opt.Focused {
			focused = opt
			break
		}
	}

	if focused == nil {
		return &AutocompleteError{Command: name, Reason: "no option is focused"}
	}

	schema := findSchema(cmd.Params(), focused.Name)
	if schema == nil {
		return &AutocompleteError{Command: name, Option: focused.Name, Reason: "unknown option"}
	}

	if schema.Autocomplete == nil {
		return &AutocompleteError{
			Command: name,
			Option:  focused.Name,
			Reason:  "slash option got autocomplete interaction without autocomplete callback",
		}
	}

	responder, ok := c.responder.(port.AutocompleteResponder)
	if !ok {
		return fmt.Errorf("answering autocomplete: %w", domain.ErrUnsupported)
	}

	choices, err := safeAutocomplete(schema.Autocomplete, &AutocompleteData{
		ctx:         ctx,
		Client:      c,
		Command:     cmd,
		Interaction: interaction,
		Option:      schema,
		Value:       focused.Value,
		Options:     options,
	})
	if err != nil {
		return fmt.Errorf("autocomplete for '%s' option '%s': %w", name, schema.Name, err)
	}

	if len(choices) > domain.MaxChoices {
		log.Debug().
			Str("command", name).
			Int("choices", len(choices)).
			Msg("truncating autocomplete choices")
		choices = choices[:domain.MaxChoices]
	}

	return responder.CreateAutocompleteResponse(ctx, interaction, choices)
}

func safeAutocomplete(fn AutocompleteFunc, data *AutocompleteData) (choices []domain.Choice, err error) {
	defer recoverInto(&err)
	return fn(data)
}
