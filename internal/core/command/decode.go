package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

var ErrMissingResolved = errors.New("missing resolved data")

// decode fills the context's arguments, or the target of a context-menu command.
func (c *Context) decode() error {
	switch c.command.CommandType() {
	case domain.CommandUser, domain.CommandMessage:
		return c.decodeTarget()
	}

	args, err := decodeOptions(strings.Join(c.command.QualifiedName(), " "), c.command.Params(),
		c.interaction.LeafOptions(), c.interaction.Resolved)
	if err != nil {
		return err
	}

	c.args = args

	return nil
}

// decodeOptions matches incoming options to schemas by name and converts
// their values. Foreign references are looked up in resolved.
func decodeOptions(command string, schemas []*OptionSchema, incoming []*domain.InteractionOption,
	resolved *domain.ResolvedData) (map[string]any, error) {
	args := make(map[string]any, len(schemas))

	for _, schema := range schemas {
		opt := findOption(incoming, schema.Name)
		if opt == nil {
			if schema.Required {
				return nil, &OptionDecodeError{Command: command, Option: schema.Name, Reason: "required option is missing"}
			}
			continue
		}

		v, err := decodeValue(schema, opt.Value, resolved)
		if err != nil {
			var de *OptionDecodeError
			if errors.As(err, &de) {
				de.Command, de.Option = command, schema.Name
			}
			return nil, err
		}

		args[schema.ArgName] = v
	}

	return args, nil
}

func findOption(options []*domain.InteractionOption, name string) *domain.InteractionOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
	}

	return nil
}

func decodeValue(schema *OptionSchema, raw any, resolved *domain.ResolvedData) (any, error) {
	switch schema.kind {
	case kindString, kindInteger, kindFloat, kindBoolean:
		v, ok := normalizeScalar(schema.kind, raw)
		if !ok {
			return nil, &OptionDecodeError{Reason: fmt.Sprintf("expected %s, got %T", schema.kind, raw)}
		}
		return v, nil
	case kindColor:
		s, ok := raw.(string)
		if !ok {
			return nil, &OptionDecodeError{Reason: fmt.Sprintf("expected string, got %T", raw)}
		}
		color, err := domain.ParseColor(s)
		if err != nil {
			return nil, &OptionDecodeError{Reason: "not a color", Err: err}
		}
		return color, nil
	case kindEmoji:
		s, ok := raw.(string)
		if !ok {
			return nil, &OptionDecodeError{Reason: fmt.Sprintf("expected string, got %T", raw)}
		}
		emoji, err := domain.ParseEmoji(s)
		if err != nil {
			return nil, &OptionDecodeError{Reason: "not an emoji", Err: err}
		}
		return emoji, nil
	}

	id, ok := snowflakeValue(raw)
	if !ok {
		return nil, &OptionDecodeError{Reason: fmt.Sprintf("expected an ID, got %T", raw)}
	}

	if resolved == nil {
		return nil, &OptionDecodeError{Reason: "interaction has no resolved data", Err: ErrMissingResolved}
	}

	var v any

	switch schema.kind {
	case kindUser:
		if u := resolveUser(resolved, id); u != nil {
			v = u
		}
	case kindMember:
		if m := resolveMember(resolved, id); m != nil {
			v = m
		}
	case kindMentionable:
		if m := resolveMember(resolved, id); m != nil {
			v = domain.Mentionable{Member: m, User: m.User}
		} else if u := resolved.Users[id]; u != nil {
			v = domain.Mentionable{User: u}
		} else if r := resolved.Roles[id]; r != nil {
			v = domain.Mentionable{Role: r}
		}
	case kindChannel:
		if ch := resolved.Channels[id]; ch != nil {
			v = ch
		}
	case kindRole:
		if r := resolved.Roles[id]; r != nil {
			v = r
		}
	case kindAttachment:
		if a := resolved.Attachments[id]; a != nil {
			v = a
		}
	}

	if v == nil {
		return nil, &OptionDecodeError{
			Reason: fmt.Sprintf("%s %s not found in resolved data", schema.kind, id),
			Err:    ErrMissingResolved,
		}
	}

	return v, nil
}

func snowflakeValue(raw any) (domain.Snowflake, bool) {
	switch id := raw.(type) {
	case domain.Snowflake:
		return id, true
	case uint64:
		return domain.Snowflake(id), true
	case string:
		s, err := domain.ParseSnowflake(id)
		return s, err == nil
	default:
		return 0, false
	}
}

func resolveUser(resolved *domain.ResolvedData, id domain.Snowflake) *domain.User {
	if u := resolved.Users[id]; u != nil {
		return u
	}

	if m := resolved.Members[id]; m != nil {
		return m.User
	}

	return nil
}

// resolveMember returns the member with its user filled in from the users table.
func resolveMember(resolved *domain.ResolvedData, id domain.Snowflake) *domain.Member {
	m := resolved.Members[id]
	if m == nil {
		return nil
	}

	if m.User == nil {
		filled := *m
		filled.User = resolved.Users[id]
		return &filled
	}

	return m
}

func (c *Context) decodeTarget() error {
	name := c.command.Name()
	resolved := c.interaction.Resolved
	id := c.interaction.TargetID

	if resolved == nil {
		return &OptionDecodeError{Command: name, Option: "target", Reason: "interaction has no resolved data",
			Err: ErrMissingResolved}
	}

	if c.command.CommandType() == domain.CommandMessage {
		msg := resolved.Messages[id]
		if msg == nil {
			return &OptionDecodeError{Command: name, Option: "target", Reason: "target message not found",
				Err: ErrMissingResolved}
		}

		c.targetMessage = msg

		return nil
	}

	user := resolveUser(resolved, id)
	if user == nil {
		return &OptionDecodeError{Command: name, Option: "target", Reason: "target user not found",
			Err: ErrMissingResolved}
	}

	c.targetUser = user
	c.targetMember = resolveMember(resolved, id)

	return nil
}
