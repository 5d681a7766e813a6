package command

import (
	"fmt"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// Params is the builder value of a declared parameter. Its concrete type fixes
// the wire type the parameter must have.
type Params interface {
	kind() wireKind
	build(argName string) (*OptionSchema, error)
}

type StrParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
	MinLength                *int
	MaxLength                *int
	Choices                  []domain.Choice
	Autocomplete             AutocompleteFunc
}

func (StrParams) kind() wireKind { return kindString }

func (p StrParams) build(argName string) (*OptionSchema, error) {
	s, err := newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindString)
	if err != nil {
		return nil, err
	}

	if p.MinLength != nil && p.MaxLength != nil && *p.MinLength > *p.MaxLength {
		return nil, &DefinitionError{Node: argName, Reason: "min_length is greater than max_length"}
	}

	s.MinLength, s.MaxLength = p.MinLength, p.MaxLength

	return s, s.setChoices(p.Choices, p.Autocomplete)
}

type IntParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
	Min                      *int64
	Max                      *int64
	Choices                  []domain.Choice
	Autocomplete             AutocompleteFunc
}

func (IntParams) kind() wireKind { return kindInteger }

func (p IntParams) build(argName string) (*OptionSchema, error) {
	s, err := newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindInteger)
	if err != nil {
		return nil, err
	}

	if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return nil, &DefinitionError{Node: argName, Reason: "min is greater than max"}
	}

	if p.Min != nil {
		s.MinValue = Ptr(float64(*p.Min))
	}
	if p.Max != nil {
		s.MaxValue = Ptr(float64(*p.Max))
	}

	return s, s.setChoices(p.Choices, p.Autocomplete)
}

type FloatParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
	Min                      *float64
	Max                      *float64
	Choices                  []domain.Choice
	Autocomplete             AutocompleteFunc
}

func (FloatParams) kind() wireKind { return kindFloat }

func (p FloatParams) build(argName string) (*OptionSchema, error) {
	s, err := newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindFloat)
	if err != nil {
		return nil, err
	}

	if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return nil, &DefinitionError{Node: argName, Reason: "min is greater than max"}
	}

	s.MinValue, s.MaxValue = p.Min, p.Max

	return s, s.setChoices(p.Choices, p.Autocomplete)
}

type BoolParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (BoolParams) kind() wireKind { return kindBoolean }

func (p BoolParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindBoolean)
}

type UserParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (UserParams) kind() wireKind { return kindUser }

func (p UserParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindUser)
}

// MemberParams declares a user option that must resolve to a guild member.
type MemberParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (MemberParams) kind() wireKind { return kindMember }

func (p MemberParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindMember)
}

type RoleParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (RoleParams) kind() wireKind { return kindRole }

func (p RoleParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindRole)
}

// MentionableParams declares a user-or-role option.
type MentionableParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (MentionableParams) kind() wireKind { return kindMentionable }

func (p MentionableParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindMentionable)
}

type AttachmentParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (AttachmentParams) kind() wireKind { return kindAttachment }

func (p AttachmentParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindAttachment)
}

// ChannelParams declares a channel option. Types restricts the option to the
// union of the given channel classes; empty accepts every channel.
type ChannelParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
	Types                    []ChannelClass
}

func (ChannelParams) kind() wireKind { return kindChannel }

func (p ChannelParams) build(argName string) (*OptionSchema, error) {
	s, err := newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindChannel)
	if err != nil {
		return nil, err
	}

	types, ok := channelTypes(p.Types)
	if !ok {
		return nil, &DefinitionError{Node: argName, Reason: "unsupported channel type"}
	}

	s.ChannelTypes = types

	return s, nil
}

// ColorParams declares a string option decoded into a domain.Color.
type ColorParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (ColorParams) kind() wireKind { return kindColor }

func (p ColorParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindColor)
}

// EmojiParams declares a string option decoded into a domain.Emoji.
type EmojiParams struct {
	Name                     string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
}

func (EmojiParams) kind() wireKind { return kindEmoji }

func (p EmojiParams) build(argName string) (*OptionSchema, error) {
	return newSchema(argName, p.Name, p.Description, p.NameLocalizations, p.DescriptionLocalizations, kindEmoji)
}

func newSchema(argName, name, description string, nameLoc, descLoc map[domain.Locale]string,
	kind wireKind) (*OptionSchema, error) {
	if name == "" {
		name = argName
	}
	if description == "" {
		description = defaultDescription
	}

	if err := validateSlashName(argName, name, description); err != nil {
		return nil, err
	}

	return &OptionSchema{
		Name:                     name,
		ArgName:                  argName,
		Description:              description,
		NameLocalizations:        nameLoc,
		DescriptionLocalizations: descLoc,
		Type:                     kind.optionType(),
		kind:                     kind,
	}, nil
}

func (o *OptionSchema) setChoices(choices []domain.Choice, autocomplete AutocompleteFunc) error {
	if len(choices) > 0 && autocomplete != nil {
		return &DefinitionError{Node: o.ArgName, Reason: "choices and autocomplete are mutually exclusive"}
	}

	if len(choices) > domain.MaxChoices {
		return &DefinitionError{Node: o.ArgName, Reason: fmt.Sprintf("at most %d choices are allowed", domain.MaxChoices)}
	}

	normalized := make([]domain.Choice, 0, len(choices))
	for _, choice := range choices {
		v, ok := normalizeScalar(o.kind, choice.Value)
		if !ok {
			return &DefinitionError{
				Node:   o.ArgName,
				Reason: fmt.Sprintf("choice %q has a %T value, expected %s", choice.Name, choice.Value, o.kind),
			}
		}

		normalized = append(normalized, domain.Choice{Name: choice.Name, Value: v})
	}

	if len(normalized) > 0 {
		o.Choices = normalized
	}
	o.Autocomplete = autocomplete

	return nil
}

// normalizeScalar converts v to the canonical Go type of a scalar wire kind:
// string, int64, float64 or bool.
func normalizeScalar(kind wireKind, v any) (any, bool) {
	switch kind {
	case kindString, kindColor, kindEmoji:
		s, ok := v.(string)
		return s, ok
	case kindInteger:
		switch n := v.(type) {
		case int64:
			return n, true
		case int:
			return int64(n), true
		case float64:
			if n != float64(int64(n)) {
				return nil, false
			}
			return int64(n), true
		}
	case kindFloat:
		switch n := v.(type) {
		case float64:
			return n, true
		case int64:
			return float64(n), true
		case int:
			return float64(n), true
		}
	case kindBoolean:
		b, ok := v.(bool)
		return b, ok
	}

	return nil, false
}
