package command

import (
	"fmt"
	"slices"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// SlashCommand is a callable top-level slash command.
type SlashCommand struct {
	base
	registration
	params []*OptionSchema
	cb     Callback
}

func NewSlashCommand(name, description string, cb Callback, opts ...Option) (*SlashCommand, error) {
	cfg := newConfig(opts)
	if err := cfg.check(name, topLevelFields|fieldParams); err != nil {
		return nil, err
	}

	if cb == nil {
		return nil, &DefinitionError{Node: name, Reason: "missing callback"}
	}

	if err := validateSlashName(name, name, description); err != nil {
		return nil, err
	}

	params, err := ResolveSignature(name, cfg.params)
	if err != nil {
		return nil, err
	}

	return &SlashCommand{
		base:         newBase(name, description, cfg),
		registration: registration{guilds: cfg.guilds},
		params:       params,
		cb:           cb,
	}, nil
}

func (c *SlashCommand) Kind() NodeKind                  { return KindSlashCommand }
func (c *SlashCommand) CommandType() domain.CommandType { return domain.CommandSlash }
func (c *SlashCommand) QualifiedName() []string         { return []string{c.name} }
func (c *SlashCommand) Params() []*OptionSchema         { return c.params }
func (c *SlashCommand) ResetLimiters(ctx *Context)      { resetLimiters(c, ctx) }
func (c *SlashCommand) callback() Callback              { return c.cb }
func (c *SlashCommand) parent() Node                    { return nil }
func (c *SlashCommand) root() TopLevelCommand           { return c }

func (c *SlashCommand) effectiveSettings() Settings {
	return c.upstreamSettings().apply(c.settings)
}

func (c *SlashCommand) ResolvedSettings() ResolvedSettings {
	return c.effectiveSettings().resolve()
}

// SlashGroup is a top-level slash command without a callback that holds
// subcommands and subgroups.
type SlashGroup struct {
	base
	registration
	children map[string]Node
	order    []string
}

func NewSlashGroup(name, description string, opts ...Option) (*SlashGroup, error) {
	cfg := newConfig(opts)
	if err := cfg.check(name, topLevelFields); err != nil {
		return nil, err
	}

	if err := validateSlashName(name, name, description); err != nil {
		return nil, err
	}

	return &SlashGroup{
		base:         newBase(name, description, cfg),
		registration: registration{guilds: cfg.guilds},
		children:     make(map[string]Node),
	}, nil
}

func (g *SlashGroup) Kind() NodeKind                  { return KindSlashGroup }
func (g *SlashGroup) CommandType() domain.CommandType { return domain.CommandSlash }
func (g *SlashGroup) QualifiedName() []string         { return []string{g.name} }
func (g *SlashGroup) parent() Node                    { return nil }
func (g *SlashGroup) root() TopLevelCommand           { return g }

func (g *SlashGroup) effectiveSettings() Settings {
	return g.upstreamSettings().apply(g.settings)
}

func (g *SlashGroup) ResolvedSettings() ResolvedSettings {
	return g.effectiveSettings().resolve()
}

// Include adds a subcommand directly under the group.
func (g *SlashGroup) Include(sub *SlashSubcommand) error {
	if sub.parentNode != nil {
		return fmt.Errorf("subcommand '%s': %w", sub.name, ErrAlreadyAttached)
	}

	if err := g.addChild(sub.name, sub); err != nil {
		return err
	}

	sub.parentNode = g

	return nil
}

// IncludeSubgroup adds a subgroup under the group.
func (g *SlashGroup) IncludeSubgroup(sg *SlashSubgroup) error {
	if sg.group != nil {
		return fmt.Errorf("subgroup '%s': %w", sg.name, ErrAlreadyAttached)
	}

	if err := g.addChild(sg.name, sg); err != nil {
		return err
	}

	sg.group = g

	return nil
}

func (g *SlashGroup) addChild(name string, child Node) error {
	if _, ok := g.children[name]; ok {
		return &DefinitionError{Node: g.name, Reason: fmt.Sprintf("duplicate child '%s'", name)}
	}

	if len(g.children) >= domain.MaxOptions {
		return &DefinitionError{Node: g.name, Reason: fmt.Sprintf("at most %d children are allowed", domain.MaxOptions)}
	}

	g.children[name] = child
	g.order = append(g.order, name)

	return nil
}

// Child returns the subcommand or subgroup called name.
func (g *SlashGroup) Child(name string) (Node, bool) {
	child, ok := g.children[name]
	return child, ok
}

// Children returns subcommands and subgroups in the order they were included.
func (g *SlashGroup) Children() []Node {
	children := make([]Node, 0, len(g.order))
	for _, name := range g.order {
		children = append(children, g.children[name])
	}

	return children
}

// SlashSubgroup is nested one level under a group and holds only subcommands.
type SlashSubgroup struct {
	base
	group    *SlashGroup
	children map[string]*SlashSubcommand
	order    []string
}

func NewSlashSubgroup(name, description string, opts ...Option) (*SlashSubgroup, error) {
	cfg := newConfig(opts)
	if err := cfg.check(name, nestedFields); err != nil {
		return nil, err
	}

	if err := validateSlashName(name, name, description); err != nil {
		return nil, err
	}

	return &SlashSubgroup{
		base:     newBase(name, description, cfg),
		children: make(map[string]*SlashSubcommand),
	}, nil
}

func (sg *SlashSubgroup) Kind() NodeKind { return KindSlashSubgroup }

func (sg *SlashSubgroup) QualifiedName() []string {
	if sg.group == nil {
		return []string{sg.name}
	}

	return append(sg.group.QualifiedName(), sg.name)
}

func (sg *SlashSubgroup) parent() Node {
	if sg.group == nil {
		return nil
	}

	return sg.group
}

func (sg *SlashSubgroup) root() TopLevelCommand {
	if sg.group == nil {
		return nil
	}

	return sg.group
}

func (sg *SlashSubgroup) effectiveSettings() Settings {
	if sg.group == nil {
		return defaultSettings().apply(sg.settings)
	}

	return sg.group.effectiveSettings().apply(sg.settings)
}

func (sg *SlashSubgroup) ResolvedSettings() ResolvedSettings {
	return sg.effectiveSettings().resolve()
}

func (sg *SlashSubgroup) Include(sub *SlashSubcommand) error {
	if sub.parentNode != nil {
		return fmt.Errorf("subcommand '%s': %w", sub.name, ErrAlreadyAttached)
	}

	if _, ok := sg.children[sub.name]; ok {
		return &DefinitionError{Node: sg.name, Reason: fmt.Sprintf("duplicate subcommand '%s'", sub.name)}
	}

	if len(sg.children) >= domain.MaxOptions {
		return &DefinitionError{Node: sg.name, Reason: fmt.Sprintf("at most %d subcommands are allowed", domain.MaxOptions)}
	}

	sg.children[sub.name] = sub
	sg.order = append(sg.order, sub.name)
	sub.parentNode = sg

	return nil
}

func (sg *SlashSubgroup) Subcommand(name string) (*SlashSubcommand, bool) {
	sub, ok := sg.children[name]
	return sub, ok
}

func (sg *SlashSubgroup) Subcommands() []*SlashSubcommand {
	subs := make([]*SlashSubcommand, 0, len(sg.order))
	for _, name := range sg.order {
		subs = append(subs, sg.children[name])
	}

	return subs
}

// SlashSubcommand is a callable leaf under a group or subgroup.
type SlashSubcommand struct {
	base
	parentNode Node
	params     []*OptionSchema
	cb         Callback
}

func NewSlashSubcommand(name, description string, cb Callback, opts ...Option) (*SlashSubcommand, error) {
	cfg := newConfig(opts)
	if err := cfg.check(name, nestedFields|fieldParams); err != nil {
		return nil, err
	}

	if cb == nil {
		return nil, &DefinitionError{Node: name, Reason: "missing callback"}
	}

	if err := validateSlashName(name, name, description); err != nil {
		return nil, err
	}

	params, err := ResolveSignature(name, cfg.params)
	if err != nil {
		return nil, err
	}

	return &SlashSubcommand{
		base:   newBase(name, description, cfg),
		params: params,
		cb:     cb,
	}, nil
}

func (s *SlashSubcommand) Kind() NodeKind                  { return KindSlashSubcommand }
func (s *SlashSubcommand) CommandType() domain.CommandType { return domain.CommandSlash }
func (s *SlashSubcommand) Params() []*OptionSchema         { return s.params }
func (s *SlashSubcommand) ResetLimiters(ctx *Context)      { resetLimiters(s, ctx) }
func (s *SlashSubcommand) callback() Callback              { return s.cb }
func (s *SlashSubcommand) parent() Node                    { return s.parentNode }

func (s *SlashSubcommand) QualifiedName() []string {
	if s.parentNode == nil {
		return []string{s.name}
	}

	return append(slices.Clone(s.parentNode.QualifiedName()), s.name)
}

func (s *SlashSubcommand) root() TopLevelCommand {
	if s.parentNode == nil {
		return nil
	}

	return s.parentNode.root()
}

func (s *SlashSubcommand) effectiveSettings() Settings {
	if s.parentNode == nil {
		return defaultSettings().apply(s.settings)
	}

	return s.parentNode.effectiveSettings().apply(s.settings)
}

func (s *SlashSubcommand) ResolvedSettings() ResolvedSettings {
	return s.effectiveSettings().resolve()
}
