package command

import (
	"context"
	"fmt"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// HandleCommandInteraction routes a command interaction to its node, decodes
// its options and runs the hook chain and callback to completion. Interactions
// for unknown commands are logged and dropped. A path that does not fit the
// tree is returned as a *CommandInvokeError.
func (c *Client) HandleCommandInteraction(ctx context.Context, interaction *domain.Interaction) error {
	if c.dedup != nil && c.dedup.observe(interaction.ID) {
		log.Debug().Str("interaction", interaction.ID.String()).Msg("dropping duplicate interaction")
		return nil
	}

	top, ok := c.Command(interaction.CommandType, interaction.CommandName)
	if !ok {
		log.Warn().
			Str("command", interaction.CommandName).
			Str("type", interaction.CommandType.String()).
			Msg("received interaction for unknown command")
		return nil
	}

	cmd, err := resolveCallable(top, interaction)
	if err != nil {
		return err
	}

	ictx := newContext(ctx, c, cmd, interaction)
	ictx.startAutodefer(cmd.ResolvedSettings().Autodefer)

	if err := ictx.decode(); err != nil {
		ictx.failed.Store(true)
		c.propagate(ictx, cmd, err)
		return nil
	}

	c.invoke(ictx, cmd)

	return nil
}

// resolveCallable walks from a top-level command to the leaf named by the
// interaction's command path.
func resolveCallable(top TopLevelCommand, interaction *domain.Interaction) (Callable, error) {
	path := interaction.CommandPath()

	switch n := top.(type) {
	case *SlashCommand:
		return n, nil
	case *ContextMenuCommand:
		return n, nil
	case *SlashGroup:
		if len(path) < 2 {
			return nil, &CommandInvokeError{Path: path, Reason: "group invoked without a subcommand"}
		}

		child, ok := n.Child(path[1])
		if !ok {
			return nil, &CommandInvokeError{Path: path, Reason: "unknown subcommand '" + path[1] + "'"}
		}

		switch ch := child.(type) {
		case *SlashSubcommand:
			return ch, nil
		case *SlashSubgroup:
			if len(path) < 3 {
				return nil, &CommandInvokeError{Path: path, Reason: "subgroup invoked without a subcommand"}
			}

			sub, ok := ch.Subcommand(path[2])
			if !ok {
				return nil, &CommandInvokeError{Path: path, Reason: "unknown subcommand '" + path[2] + "'"}
			}

			return sub, nil
		}
	}

	return nil, &CommandInvokeError{Path: path, Reason: "command is not callable"}
}

// HandleInteraction dispatches a command or autocomplete interaction.
func (c *Client) HandleInteraction(ctx context.Context, interaction *domain.Interaction) error {
	switch interaction.Type {
	case domain.InteractionCommand:
		return c.HandleCommandInteraction(ctx, interaction)
	case domain.InteractionAutocomplete:
		return c.HandleAutocompleteInteraction(ctx, interaction)
	default:
		return fmt.Errorf("interaction type %d: %w", interaction.Type, domain.ErrUnsupported)
	}
}
