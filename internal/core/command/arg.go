package command

import (
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// Param is a declared command parameter, created with NewParam.
type Param interface {
	ArgName() string
	schema() (*OptionSchema, error)
}

// Arg is a typed parameter declaration. T is the Go type the handler receives:
// string, int, int64, float64, bool, *domain.User, *domain.Member,
// *domain.Role, *domain.Channel, *domain.Attachment, domain.Mentionable,
// domain.Color or domain.Emoji. Pointers to scalars (and to the value types
// Mentionable, Color and Emoji) declare an option that is not required.
type Arg[T any] struct {
	name     string
	params   Params
	optional bool
	def      *T
}

func NewParam[T any](name string, params Params) *Arg[T] {
	return &Arg[T]{name: name, params: params}
}

// Default marks the parameter as not required and sets the value used when
// the option is absent.
func (a *Arg[T]) Default(v T) *Arg[T] {
	a.def = &v
	return a
}

// Optional marks the parameter as not required; absent values are the zero value.
func (a *Arg[T]) Optional() *Arg[T] {
	a.optional = true
	return a
}

func (a *Arg[T]) ArgName() string {
	return a.name
}

func (a *Arg[T]) schema() (*OptionSchema, error) {
	kind, nullable, err := kindOf[T]()
	if err != nil {
		return nil, &DefinitionError{Node: a.name, Reason: err.Error()}
	}

	if a.params == nil {
		return nil, &DefinitionError{Node: a.name, Reason: "missing params"}
	}

	if a.params.kind() != kind {
		return nil, &DefinitionError{
			Node:   a.name,
			Reason: fmt.Sprintf("parameter type is %s but params describe %s", kind, a.params.kind()),
		}
	}

	s, err := a.params.build(a.name)
	if err != nil {
		return nil, err
	}

	s.Required = !nullable && !a.optional && a.def == nil

	return s, nil
}

// Value returns the decoded argument, the default if the option was absent, or
// the zero value of T.
func (a *Arg[T]) Value(ctx *Context) T {
	v, _ := a.Lookup(ctx)
	return v
}

// Lookup is like Value but also reports whether the option was supplied.
func (a *Arg[T]) Lookup(ctx *Context) (T, bool) {
	raw, ok := ctx.args[a.name]
	if !ok {
		if a.def != nil {
			return *a.def, false
		}

		var zero T
		return zero, false
	}

	return convertArg[T](raw), true
}

// OptionValue returns the decoded value of the parameter called name if it
// was supplied and has type T. Scalars decode to string, int64, float64 and bool.
func OptionValue[T any](ctx *Context, name string) (T, bool) {
	raw, ok := ctx.args[name]
	if !ok {
		var zero T
		return zero, false
	}

	v, ok := raw.(T)

	return v, ok
}

func kindOf[T any]() (wireKind, bool, error) {
	var zero T

	switch any(zero).(type) {
	case string:
		return kindString, false, nil
	case *string:
		return kindString, true, nil
	case int, int64:
		return kindInteger, false, nil
	case *int, *int64:
		return kindInteger, true, nil
	case float64:
		return kindFloat, false, nil
	case *float64:
		return kindFloat, true, nil
	case bool:
		return kindBoolean, false, nil
	case *bool:
		return kindBoolean, true, nil
	case *domain.User:
		return kindUser, false, nil
	case *domain.Member:
		return kindMember, false, nil
	case *domain.Role:
		return kindRole, false, nil
	case *domain.Channel:
		return kindChannel, false, nil
	case *domain.Attachment:
		return kindAttachment, false, nil
	case domain.Mentionable:
		return kindMentionable, false, nil
	case *domain.Mentionable:
		return kindMentionable, true, nil
	case domain.Color:
		return kindColor, false, nil
	case *domain.Color:
		return kindColor, true, nil
	case domain.Emoji:
		return kindEmoji, false, nil
	case *domain.Emoji:
		return kindEmoji, true, nil
	}

	return 0, false, fmt.Errorf("unsupported parameter type %s", strings.TrimPrefix(fmt.Sprintf("%T", &zero), "*"))
}

// convertArg converts a decoded value to the declared parameter type.
func convertArg[T any](raw any) T {
	var out T

	switch p := any(&out).(type) {
	case *int:
		*p = int(raw.(int64))
	case **int:
		v := int(raw.(int64))
		*p = &v
	case **int64:
		v := raw.(int64)
		*p = &v
	case **string:
		v := raw.(string)
		*p = &v
	case **float64:
		v := raw.(float64)
		*p = &v
	case **bool:
		v := raw.(bool)
		*p = &v
	case **domain.Mentionable:
		v := raw.(domain.Mentionable)
		*p = &v
	case **domain.Color:
		v := raw.(domain.Color)
		*p = &v
	case **domain.Emoji:
		v := raw.(domain.Emoji)
		*p = &v
	default:
		out, _ = raw.(T)
	}

	return out
}
