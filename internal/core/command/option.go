package command

import (
	"fmt"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

type field uint16

const (
	fieldAutodefer field = 1 << iota
	fieldScopeSettings
	fieldGuilds
	fieldHooks
	fieldErrorHandler
	fieldLimiter
	fieldParams
	fieldLocalizations
	fieldOwners
	fieldClock
	fieldDedup
)

var fieldNames = []struct {
	f    field
	name string
}{
	{fieldAutodefer, "autodefer"},
	{fieldScopeSettings, "default permissions, nsfw and dm settings"},
	{fieldGuilds, "guilds"},
	{fieldHooks, "hooks"},
	{fieldErrorHandler, "error handler"},
	{fieldLimiter, "concurrency limiter"},
	{fieldParams, "params"},
	{fieldLocalizations, "localizations"},
	{fieldOwners, "owner ids"},
	{fieldClock, "clock"},
	{fieldDedup, "deduplication"},
}

const (
	scopeFields    = fieldAutodefer | fieldScopeSettings | fieldHooks | fieldErrorHandler | fieldLimiter
	topLevelFields = scopeFields | fieldGuilds | fieldLocalizations
	nestedFields   = fieldAutodefer | fieldHooks | fieldErrorHandler | fieldLimiter | fieldLocalizations
	pluginFields   = scopeFields | fieldGuilds
	clientFields   = pluginFields | fieldOwners | fieldClock | fieldDedup
)

type config struct {
	set field

	settings                 Settings
	guilds                   []domain.Snowflake
	hooks                    []Hook
	postHooks                []PostHook
	errorHandler             ErrorHandler
	limiter                  ConcurrencyLimiter
	params                   []Param
	nameLocalizations        map[domain.Locale]string
	descriptionLocalizations map[domain.Locale]string
	ownerIDs                 []domain.Snowflake
	clock                    Clock
	dedupTTL                 time.Duration
}

// Option configures a client, plugin or command node. Each constructor
// rejects the options that do not apply to it.
type Option func(*config)

func WithAutodefer(mode AutodeferMode) Option {
	return func(c *config) {
		c.set |= fieldAutodefer
		c.settings.Autodefer = &mode
	}
}

func WithDefaultPermissions(perms domain.Permissions) Option {
	return func(c *config) {
		c.set |= fieldScopeSettings
		c.settings.DefaultPermissions = &perms
	}
}

func WithNSFW(nsfw bool) Option {
	return func(c *config) {
		c.set |= fieldScopeSettings
		c.settings.NSFW = &nsfw
	}
}

func WithDMEnabled(enabled bool) Option {
	return func(c *config) {
		c.set |= fieldScopeSettings
		c.settings.DMEnabled = &enabled
	}
}

// WithGuilds scopes a command to the given guilds. On a plugin or client it sets
// the default guilds of every command without its own scope.
func WithGuilds(ids ...domain.Snowflake) Option {
	return func(c *config) {
		c.set |= fieldGuilds
		c.guilds = append(c.guilds, ids...)
	}
}

func WithHooks(hooks ...Hook) Option {
	return func(c *config) {
		c.set |= fieldHooks
		c.hooks = append(c.hooks, hooks...)
	}
}

func WithPostHooks(hooks ...PostHook) Option {
	return func(c *config) {
		c.set |= fieldHooks
		c.postHooks = append(c.postHooks, hooks...)
	}
}

func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		c.set |= fieldErrorHandler
		c.errorHandler = handler
	}
}

func WithConcurrencyLimiter(limiter ConcurrencyLimiter) Option {
	return func(c *config) {
		c.set |= fieldLimiter
		c.limiter = limiter
	}
}

// WithParams declares the options of a slash command or subcommand, in order.
func WithParams(params ...Param) Option {
	return func(c *config) {
		c.set |= fieldParams
		c.params = append(c.params, params...)
	}
}

func WithNameLocalizations(localizations map[domain.Locale]string) Option {
	return func(c *config) {
		c.set |= fieldLocalizations
		c.nameLocalizations = localizations
	}
}

func WithDescriptionLocalizations(localizations map[domain.Locale]string) Option {
	return func(c *config) {
		c.set |= fieldLocalizations
		c.descriptionLocalizations = localizations
	}
}

func WithOwnerIDs(ids ...domain.Snowflake) Option {
	return func(c *config) {
		c.set |= fieldOwners
		c.ownerIDs = append(c.ownerIDs, ids...)
	}
}

func WithClock(clock Clock) Option {
	return func(c *config) {
		c.set |= fieldClock
		c.clock = clock
	}
}

// WithDeduplication drops command interactions whose ID was already dispatched
// within ttl.
func WithDeduplication(ttl time.Duration) Option {
	return func(c *config) {
		c.set |= fieldDedup
		c.dedupTTL = ttl
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *config) check(node string, allowed field) error {
	for _, fn := range fieldNames {
		if c.set&fn.f != 0 && allowed&fn.f == 0 {
			return &DefinitionError{Node: node, Reason: fmt.Sprintf("%s cannot be set here", fn.name)}
		}
	}

	return nil
}

func (c *config) scope() scope {
	return scope{
		settings:     c.settings,
		hooks:        c.hooks,
		postHooks:    c.postHooks,
		errorHandler: c.errorHandler,
		limiter:      c.limiter,
	}
}

// Must panics if err is non-nil. It is meant for static command definitions.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

// Ptr returns a pointer to v, for optional constraint fields.
func Ptr[T any](v T) *T {
	return &v
}
