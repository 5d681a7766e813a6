package command

import (
	"fmt"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// Plugin bundles top-level commands with shared settings, hooks, an error
// handler and a concurrency limiter.
type Plugin struct {
	scope
	name          string
	client        *Client
	defaultGuilds []domain.Snowflake
	commands      []TopLevelCommand
}

func NewPlugin(name string, opts ...Option) (*Plugin, error) {
	cfg := newConfig(opts)
	if err := cfg.check(name, pluginFields); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, &DefinitionError{Node: "plugin", Reason: "name must not be empty"}
	}

	return &Plugin{
		scope:         cfg.scope(),
		name:          name,
		defaultGuilds: cfg.guilds,
	}, nil
}

func (p *Plugin) Name() string {
	return p.name
}

func (p *Plugin) Client() *Client {
	return p.client
}

// Include attaches a top-level command to the plugin, and to the plugin's
// client if it has one.
func (p *Plugin) Include(cmd TopLevelCommand) error {
	reg := cmd.reg()
	if reg.plugin != nil || reg.client != nil {
		return fmt.Errorf("'%s': %w", cmd.Name(), ErrAlreadyAttached)
	}

	for _, other := range p.commands {
		if other.CommandType() == cmd.CommandType() && other.Name() == cmd.Name() {
			return &DefinitionError{
				Node:   cmd.Name(),
				Reason: fmt.Sprintf("plugin '%s' already has a %s command with this name", p.name, cmd.CommandType()),
			}
		}
	}

	reg.plugin = p
	p.commands = append(p.commands, cmd)

	if p.client != nil {
		p.client.register(cmd)
	}

	log.Debug().Str("plugin", p.name).Str("command", cmd.Name()).Msg("included command in plugin")

	return nil
}

// Commands returns the plugin's top-level commands in inclusion order.
func (p *Plugin) Commands() []TopLevelCommand {
	return p.commands
}
