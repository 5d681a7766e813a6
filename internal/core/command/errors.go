package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

var (
	ErrResponseAlreadyIssued  = errors.New("initial response already issued")
	ErrNoResponseIssued       = errors.New("no initial response issued")
	ErrDeleteAlreadyScheduled = errors.New("delete already scheduled for this response")
	ErrAlreadyAttached        = errors.New("command already attached")
	ErrDuplicatePlugin        = errors.New("plugin already included")
	ErrPluginNotFound         = errors.New("plugin not found")
	ErrHookAbort              = errors.New("hook aborted invocation")
)

// DefinitionError reports an invalid command, option or plugin definition.
type DefinitionError struct {
	Node   string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid definition of '%s': %s", e.Node, e.Reason)
}

// CommandInvokeError reports an interaction that does not match the shape of the command tree.
type CommandInvokeError struct {
	Path   []string
	Reason string
}

func (e *CommandInvokeError) Error() string {
	return fmt.Sprintf("failed to invoke '%s': %s", strings.Join(e.Path, " "), e.Reason)
}

type OptionDecodeError struct {
	Command string
	Option  string
	Reason  string
	Err     error
}

func (e *OptionDecodeError) Error() string {
	msg := fmt.Sprintf("failed to decode option '%s' of '%s': %s", e.Option, e.Command, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *OptionDecodeError) Unwrap() error {
	return e.Err
}

type AutocompleteError struct {
	Command string
	Option  string
	Reason  string
}

func (e *AutocompleteError) Error() string {
	return fmt.Sprintf("autocomplete for '%s' option '%s' failed: %s", e.Command, e.Option, e.Reason)
}

// PanicError wraps a value recovered from a panicking handler, hook or callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

type GuildOnlyError struct{}

func (*GuildOnlyError) Error() string { return "command can only be used in guilds" }
func (*GuildOnlyError) Unwrap() error { return ErrHookAbort }

type DMOnlyError struct{}

func (*DMOnlyError) Error() string { return "command can only be used in DMs" }
func (*DMOnlyError) Unwrap() error { return ErrHookAbort }

type NotOwnerError struct{}

func (*NotOwnerError) Error() string { return "only an owner of the application can use this command" }
func (*NotOwnerError) Unwrap() error { return ErrHookAbort }

type InvokerMissingPermissionsError struct {
	Missing domain.Permissions
}

func (e *InvokerMissingPermissionsError) Error() string {
	return fmt.Sprintf("invoker is missing permissions: %s", e.Missing)
}

func (*InvokerMissingPermissionsError) Unwrap() error { return ErrHookAbort }

type BotMissingPermissionsError struct {
	Missing domain.Permissions
}

func (e *BotMissingPermissionsError) Error() string {
	return fmt.Sprintf("bot is missing permissions: %s", e.Missing)
}

func (*BotMissingPermissionsError) Unwrap() error { return ErrHookAbort }

type UnderCooldownError struct {
	RetryAfter time.Duration
	Limit      int
	Period     time.Duration
}

func (e *UnderCooldownError) Error() string {
	return fmt.Sprintf("command is on cooldown, retry after %s", e.RetryAfter.Round(time.Millisecond))
}

func (*UnderCooldownError) Unwrap() error { return ErrHookAbort }

type MaxConcurrencyReachedError struct {
	Limit int
}

func (e *MaxConcurrencyReachedError) Error() string {
	return fmt.Sprintf("maximum concurrency of %d reached", e.Limit)
}

func (*MaxConcurrencyReachedError) Unwrap() error { return ErrHookAbort }
