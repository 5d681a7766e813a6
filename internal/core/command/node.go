package command

import (
	"regexp"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

type NodeKind int

const (
	KindSlashCommand NodeKind = iota + 1
	KindSlashGroup
	KindSlashSubgroup
	KindSlashSubcommand
	KindUserCommand
	KindMessageCommand
)

func (k NodeKind) String() string {
	switch k {
	case KindSlashCommand:
		return "slash command"
	case KindSlashGroup:
		return "slash group"
	case KindSlashSubgroup:
		return "slash subgroup"
	case KindSlashSubcommand:
		return "slash subcommand"
	case KindUserCommand:
		return "user command"
	case KindMessageCommand:
		return "message command"
	default:
		return "unknown"
	}
}

// Hookable is a scope that carries pre- and post-execution hooks.
type Hookable interface {
	AddHook(hook Hook)
	AddPostHook(hook PostHook)
	Hooks() []Hook
	PostHooks() []PostHook
}

// ErrorHandling is a scope that can handle errors raised below it.
type ErrorHandling interface {
	SetErrorHandler(handler ErrorHandler)
	ErrorHandler() ErrorHandler
}

// SettingsResolvable is a scope whose effective settings depend on its ancestors.
type SettingsResolvable interface {
	ResolvedSettings() ResolvedSettings
}

// Node is any element of the command tree. The concrete types are
// *SlashCommand, *SlashGroup, *SlashSubgroup, *SlashSubcommand and
// *ContextMenuCommand.
type Node interface {
	Hookable
	ErrorHandling
	SettingsResolvable
	Kind() NodeKind
	Name() string
	Description() string
	QualifiedName() []string
	// parent returns the enclosing tree node, nil for top-level commands.
	parent() Node
	// root returns the top-level command the node belongs to, nil if detached.
	root() TopLevelCommand
	effectiveSettings() Settings
	concurrencyLimiter() ConcurrencyLimiter
}

// Callable is a node with a callback.
type Callable interface {
	Node
	CommandType() domain.CommandType
	// Params returns the option schemas in declaration order.
	Params() []*OptionSchema
	// ResetLimiters resets every limiter hook of the node for the context's bucket.
	ResetLimiters(ctx *Context)
	callback() Callback
}

// TopLevelCommand is a node registered directly with a client or plugin.
type TopLevelCommand interface {
	Node
	CommandType() domain.CommandType
	Client() *Client
	Plugin() *Plugin
	// Guilds returns the resolved guild scope; empty means global.
	Guilds() []domain.Snowflake
	Definition() domain.CommandDefinition
	reg() *registration
}

type Callback func(ctx *Context) error

// scope holds what clients, plugins and tree nodes have in common.
type scope struct {
	settings     Settings
	hooks        []Hook
	postHooks    []PostHook
	errorHandler ErrorHandler
	limiter      ConcurrencyLimiter
}

func (s *scope) AddHook(hook Hook) {
	s.hooks = append(s.hooks, hook)
}

func (s *scope) AddPostHook(hook PostHook) {
	s.postHooks = append(s.postHooks, hook)
}

func (s *scope) Hooks() []Hook {
	return s.hooks
}

func (s *scope) PostHooks() []PostHook {
	return s.postHooks
}

func (s *scope) SetErrorHandler(handler ErrorHandler) {
	s.errorHandler = handler
}

func (s *scope) ErrorHandler() ErrorHandler {
	return s.errorHandler
}

func (s *scope) SetConcurrencyLimiter(limiter ConcurrencyLimiter) {
	s.limiter = limiter
}

func (s *scope) concurrencyLimiter() ConcurrencyLimiter {
	return s.limiter
}

type base struct {
	scope
	name                     string
	description              string
	nameLocalizations        map[domain.Locale]string
	descriptionLocalizations map[domain.Locale]string
}

func newBase(name, description string, cfg *config) base {
	return base{
		scope:                    cfg.scope(),
		name:                     name,
		description:              description,
		nameLocalizations:        cfg.nameLocalizations,
		descriptionLocalizations: cfg.descriptionLocalizations,
	}
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Description() string {
	return b.description
}

// registration records where a top-level command is registered.
type registration struct {
	client *Client
	plugin *Plugin
	guilds []domain.Snowflake
}

func (a *registration) Client() *Client {
	return a.client
}

func (a *registration) Plugin() *Plugin {
	return a.plugin
}

func (a *registration) reg() *registration {
	return a
}

func (a *registration) Guilds() []domain.Snowflake {
	switch {
	case len(a.guilds) > 0:
		return a.guilds
	case a.plugin != nil && len(a.plugin.defaultGuilds) > 0:
		return a.plugin.defaultGuilds
	case a.client != nil:
		return a.client.defaultGuilds
	default:
		return nil
	}
}

// upstreamSettings returns the settings a top-level command inherits from.
func (a *registration) upstreamSettings() Settings {
	s := defaultSettings()
	if a.client != nil {
		s = a.client.settings
	}
	if a.plugin != nil {
		s = s.apply(a.plugin.settings)
	}

	return s
}

var (
	slashNamePattern = regexp.MustCompile(`^[-_\p{Ll}\p{Lo}\p{N}]{1,32}$`)
	menuNamePattern  = regexp.MustCompile(`^[-_ \p{L}\p{N}]{1,32}$`)
)

func validateSlashName(node, name, description string) error {
	if !slashNamePattern.MatchString(name) {
		return &DefinitionError{Node: node, Reason: "name must be 1-32 lowercase letters, digits, '-' or '_'"}
	}

	if l := len([]rune(description)); l < 1 || l > domain.MaxDescriptionLength {
		return &DefinitionError{Node: node, Reason: "description must be 1-100 characters"}
	}

	return nil
}

// scopeChain returns the tree nodes from the root down to n.
func scopeChain(n Node) []Node {
	var chain []Node
	for cur := n; cur != nil; cur = cur.parent() {
		chain = append([]Node{cur}, chain...)
	}

	return chain
}
