package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/port"
	"github.com/rs/zerolog/log"
)

const (
	// AutodeferGrace is how long an invocation may run before it is deferred automatically.
	AutodeferGrace = 2 * time.Second
	// InitialResponseWindow is how long the platform waits for the initial response.
	InitialResponseWindow = 3 * time.Second
	// FollowupWindow is how long an interaction accepts followups once acknowledged.
	FollowupWindow = 15 * time.Minute
)

// LifecycleHook runs when the client starts or stops.
type LifecycleHook func(ctx context.Context, client *Client) error

// Client owns the command tree and the plugin registry and dispatches
// interactions delivered by a transport.
type Client struct {
	scope
	responder     port.InteractionResponder
	clock         Clock
	defaultGuilds []domain.Snowflake
	commands      map[domain.CommandType]map[string]TopLevelCommand
	plugins       map[string]*Plugin
	startupHooks  []LifecycleHook
	shutdownHooks []LifecycleHook
	dedup         *seenSet

	ownersMu sync.RWMutex
	ownerIDs []domain.Snowflake
}

func NewClient(responder port.InteractionResponder, opts ...Option) (*Client, error) {
	cfg := newConfig(opts)
	if err := cfg.check("client", clientFields); err != nil {
		return nil, err
	}

	if responder == nil {
		return nil, errors.New("client requires a responder")
	}

	s := cfg.scope()
	s.settings = defaultSettings().apply(cfg.settings)

	c := &Client{
		scope:         s,
		responder:     responder,
		clock:         systemClock{},
		defaultGuilds: cfg.guilds,
		ownerIDs:      cfg.ownerIDs,
		plugins:       make(map[string]*Plugin),
		commands: map[domain.CommandType]map[string]TopLevelCommand{
			domain.CommandSlash:   {},
			domain.CommandUser:    {},
			domain.CommandMessage: {},
		},
	}

	if cfg.clock != nil {
		c.clock = cfg.clock
	}

	if cfg.dedupTTL > 0 {
		c.dedup = newSeenSet(cfg.dedupTTL, c.clock)
	}

	return c, nil
}

func (c *Client) Responder() port.InteractionResponder {
	return c.responder
}

func (c *Client) Clock() Clock {
	return c.clock
}

func (c *Client) ResolvedSettings() ResolvedSettings {
	return c.settings.resolve()
}

// Include attaches a top-level command directly to the client.
func (c *Client) Include(cmd TopLevelCommand) error {
	reg := cmd.reg()
	if reg.client != nil || reg.plugin != nil {
		return fmt.Errorf("'%s': %w", cmd.Name(), ErrAlreadyAttached)
	}

	c.register(cmd)

	return nil
}

// register adds cmd to the command table, replacing a command of the same
// type and name.
func (c *Client) register(cmd TopLevelCommand) {
	table := c.commands[cmd.CommandType()]

	if existing, ok := table[cmd.Name()]; ok && existing != cmd {
		log.Warn().
			Str("command", cmd.Name()).
			Str("type", cmd.CommandType().String()).
			Msg("shadowing already registered command")
		c.unregister(existing)
	}

	cmd.reg().client = c
	table[cmd.Name()] = cmd

	log.Info().Str("command", cmd.Name()).Str("type", cmd.CommandType().String()).Msg("adding command to client")
}

func (c *Client) unregister(cmd TopLevelCommand) {
	table := c.commands[cmd.CommandType()]
	if table[cmd.Name()] == cmd {
		delete(table, cmd.Name())
	}

	reg := cmd.reg()
	reg.client = nil

	if reg.plugin != nil {
		p := reg.plugin
		p.commands = slices.DeleteFunc(p.commands, func(other TopLevelCommand) bool { return other == cmd })
		reg.plugin = nil
	}
}

// Remove detaches a top-level command from the client and its plugin.
func (c *Client) Remove(cmd TopLevelCommand) error {
	if cmd.reg().client != c {
		return fmt.Errorf("'%s' is not attached to this client", cmd.Name())
	}

	c.unregister(cmd)

	return nil
}

// AddPlugin registers a plugin and all of its commands.
func (c *Client) AddPlugin(p *Plugin) error {
	if _, ok := c.plugins[p.name]; ok {
		return fmt.Errorf("'%s': %w", p.name, ErrDuplicatePlugin)
	}

	if p.client != nil {
		return fmt.Errorf("plugin '%s': %w", p.name, ErrAlreadyAttached)
	}

	p.client = c
	c.plugins[p.name] = p

	for _, cmd := range slices.Clone(p.commands) {
		c.register(cmd)
	}

	log.Info().Str("plugin", p.name).Int("commands", len(p.commands)).Msg("added plugin to client")

	return nil
}

// RemovePlugin unregisters a plugin and detaches its commands.
func (c *Client) RemovePlugin(name string) error {
	p, ok := c.plugins[name]
	if !ok {
		return fmt.Errorf("'%s': %w", name, ErrPluginNotFound)
	}

	for _, cmd := range slices.Clone(p.commands) {
		c.unregister(cmd)
	}

	p.client = nil
	delete(c.plugins, name)

	log.Info().Str("plugin", name).Msg("removed plugin from client")

	return nil
}

func (c *Client) Plugin(name string) (*Plugin, bool) {
	p, ok := c.plugins[name]
	return p, ok
}

// Plugins returns the registered plugins sorted by name.
func (c *Client) Plugins() []*Plugin {
	plugins := make([]*Plugin, 0, len(c.plugins))
	for _, p := range c.plugins {
		plugins = append(plugins, p)
	}

	sort.Slice(plugins, func(i, j int) bool { return plugins[i].name < plugins[j].name })

	return plugins
}

// Command returns the top-level command of the given type and name.
func (c *Client) Command(commandType domain.CommandType, name string) (TopLevelCommand, bool) {
	cmd, ok := c.commands[commandType][name]
	return cmd, ok
}

// FindCommand looks up a node by its space-separated qualified name, for
// example "group subgroup nested".
func (c *Client) FindCommand(commandType domain.CommandType, qualifiedName string) (Node, bool) {
	path := strings.Fields(qualifiedName)
	if len(path) == 0 || len(path) > 3 {
		return nil, false
	}

	top, ok := c.Command(commandType, path[0])
	if !ok {
		return nil, false
	}

	var node Node = top
	for _, name := range path[1:] {
		switch n := node.(type) {
		case *SlashGroup:
			child, ok := n.Child(name)
			if !ok {
				return nil, false
			}
			node = child
		case *SlashSubgroup:
			sub, ok := n.Subcommand(name)
			if !ok {
				return nil, false
			}
			node = sub
		default:
			return nil, false
		}
	}

	return node, true
}

// WalkCommands returns every node of the given command type, top-level
// commands sorted by name and each followed by its descendants. With
// callableOnly, groups and subgroups are left out.
func (c *Client) WalkCommands(commandType domain.CommandType, callableOnly bool) []Node {
	tops := c.topLevel(commandType)

	var nodes []Node
	for _, top := range tops {
		walk(top, callableOnly, func(n Node) { nodes = append(nodes, n) })
	}

	return nodes
}

func (c *Client) topLevel(commandType domain.CommandType) []TopLevelCommand {
	table := c.commands[commandType]

	tops := make([]TopLevelCommand, 0, len(table))
	for _, cmd := range table {
		tops = append(tops, cmd)
	}

	sort.Slice(tops, func(i, j int) bool { return tops[i].Name() < tops[j].Name() })

	return tops
}

func walk(n Node, callableOnly bool, visit func(Node)) {
	switch node := n.(type) {
	case *SlashGroup:
		if !callableOnly {
			visit(node)
		}
		for _, child := range node.Children() {
			walk(child, callableOnly, visit)
		}
	case *SlashSubgroup:
		if !callableOnly {
			visit(node)
		}
		for _, sub := range node.Subcommands() {
			visit(sub)
		}
	default:
		visit(node)
	}
}

// SetOwnerIDs replaces the owner IDs, typically once the application owner is
// known at startup.
func (c *Client) SetOwnerIDs(ids ...domain.Snowflake) {
	c.ownersMu.Lock()
	c.ownerIDs = slices.Clone(ids)
	c.ownersMu.Unlock()
}

func (c *Client) OwnerIDs() []domain.Snowflake {
	c.ownersMu.RLock()
	defer c.ownersMu.RUnlock()

	return slices.Clone(c.ownerIDs)
}

func (c *Client) IsOwner(id domain.Snowflake) bool {
	c.ownersMu.RLock()
	defer c.ownersMu.RUnlock()

	return slices.Contains(c.ownerIDs, id)
}

func (c *Client) AddStartupHook(hook LifecycleHook) {
	c.startupHooks = append(c.startupHooks, hook)
}

func (c *Client) AddShutdownHook(hook LifecycleHook) {
	c.shutdownHooks = append(c.shutdownHooks, hook)
}

// Start runs the startup hooks in order and stops at the first failure.
func (c *Client) Start(ctx context.Context) error {
	for _, hook := range c.startupHooks {
		if err := hook(ctx, c); err != nil {
			return fmt.Errorf("startup hook failed: %w", err)
		}
	}

	return nil
}

// Close runs every shutdown hook and joins their errors.
func (c *Client) Close(ctx context.Context) error {
	var errs []error
	for _, hook := range c.shutdownHooks {
		if err := hook(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
