package command

import (
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// ContextMenuCommand is a user or message command invoked from the platform's
// context menu on a target.
type ContextMenuCommand struct {
	base
	registration
	commandType domain.CommandType
	cb          Callback
}

// NewUserCommand defines a user context-menu command. The callback receives
// the targeted user; ctx.TargetMember returns the member if it was resolved.
func NewUserCommand(name string, cb func(ctx *Context, target *domain.User) error,
	opts ...Option) (*ContextMenuCommand, error) {
	if cb == nil {
		return nil, &DefinitionError{Node: name, Reason: "missing callback"}
	}

	return newContextMenu(name, domain.CommandUser, func(ctx *Context) error {
		return cb(ctx, ctx.targetUser)
	}, opts)
}

// NewMessageCommand defines a message context-menu command.
func NewMessageCommand(name string, cb func(ctx *Context, target *domain.Message) error,
	opts ...Option) (*ContextMenuCommand, error) {
	if cb == nil {
		return nil, &DefinitionError{Node: name, Reason: "missing callback"}
	}

	return newContextMenu(name, domain.CommandMessage, func(ctx *Context) error {
		return cb(ctx, ctx.targetMessage)
	}, opts)
}

func newContextMenu(name string, commandType domain.CommandType, cb Callback,
	opts []Option) (*ContextMenuCommand, error) {
	cfg := newConfig(opts)
	if err := cfg.check(name, topLevelFields); err != nil {
		return nil, err
	}

	if !menuNamePattern.MatchString(name) {
		return nil, &DefinitionError{Node: name, Reason: "name must be 1-32 letters, digits, spaces, '-' or '_'"}
	}

	return &ContextMenuCommand{
		base:         newBase(name, "", cfg),
		registration: registration{guilds: cfg.guilds},
		commandType:  commandType,
		cb:           cb,
	}, nil
}

func (c *ContextMenuCommand) Kind() NodeKind {
	if c.commandType == domain.CommandUser {
		return KindUserCommand
	}

	return KindMessageCommand
}

func (c *ContextMenuCommand) CommandType() domain.CommandType { return c.commandType }
func (c *ContextMenuCommand) QualifiedName() []string         { return []string{c.name} }
func (c *ContextMenuCommand) Params() []*OptionSchema         { return nil }
func (c *ContextMenuCommand) ResetLimiters(ctx *Context)      { resetLimiters(c, ctx) }
func (c *ContextMenuCommand) callback() Callback              { return c.cb }
func (c *ContextMenuCommand) parent() Node                    { return nil }
func (c *ContextMenuCommand) root() TopLevelCommand           { return c }

func (c *ContextMenuCommand) effectiveSettings() Settings {
	return c.upstreamSettings().apply(c.settings)
}

func (c *ContextMenuCommand) ResolvedSettings() ResolvedSettings {
	return c.effectiveSettings().resolve()
}
