package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

var ErrNotACommand = errors.New("message is not a command")

// UsageError is returned when a message names a group without a valid
// subcommand.
type UsageError struct {
	Path     []string
	Children []string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: /%s <%s>", strings.Join(e.Path, " "), strings.Join(e.Children, "|"))
}

// ParseCommand returns the command name of a "/name@bot args" message and
// whether the message is addressed to username (or to no bot in particular).
func ParseCommand(text, username string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}

	name, target, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	if target != "" && !strings.EqualFold(target, username) {
		return name, false
	}

	return strings.ToLower(name), true
}

// toInteraction turns a text command into a slash command interaction. The
// words after the command path fill the leaf's scalar options in declaration
// order; a trailing string option takes the rest of the message. User options
// are filled from the author of the replied-to message.
func toInteraction(update *models.Update, client *command.Client, username string,
	now time.Time) (*domain.Interaction, error) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil, ErrNotACommand
	}

	name, ok := ParseCommand(msg.Text, username)
	if !ok {
		return nil, ErrNotACommand
	}

	words := strings.Fields(msg.Text)[1:]

	interaction := &domain.Interaction{
		ID:          domain.Snowflake(uint64(update.ID)),
		Token:       strconv.Itoa(msg.ID),
		Type:        domain.InteractionCommand,
		CommandName: name,
		CommandType: domain.CommandSlash,
		User:        toUser(msg.From),
		ChannelID:   chatID(msg.Chat.ID),
		Locale:      domain.Locale(msg.From.LanguageCode),
		Resolved:    &domain.ResolvedData{Users: map[domain.Snowflake]*domain.User{}},
		// no response deadline on telegram, the windows count from receipt
		CreatedAt: now,
	}

	if msg.Chat.Type != models.ChatTypePrivate {
		interaction.GuildID = chatID(msg.Chat.ID)
	}

	top, ok := client.Command(domain.CommandSlash, name)
	if !ok {
		// unknown commands are dropped by the dispatcher
		return interaction, nil
	}

	leaf, options, rest, err := resolvePath(top, words)
	if err != nil {
		return interaction, err
	}

	options.set(leafOptions(leaf, rest, msg.ReplyToMessage, interaction.Resolved))
	interaction.Options = options.root

	return interaction, nil
}

// optionPath builds the nested subcommand options of a command path.
type optionPath struct {
	root []*domain.InteractionOption
	tail *domain.InteractionOption
}

func (p *optionPath) push(name string, t domain.OptionType) {
	opt := &domain.InteractionOption{Name: name, Type: t}

	if p.tail == nil {
		p.root = []*domain.InteractionOption{opt}
	} else {
		p.tail.Options = []*domain.InteractionOption{opt}
	}

	p.tail = opt
}

func (p *optionPath) set(options []*domain.InteractionOption) {
	if p.tail == nil {
		p.root = options
		return
	}

	p.tail.Options = options
}

func resolvePath(top command.TopLevelCommand, words []string) (command.Callable, *optionPath, []string, error) {
	path := &optionPath{}

	var node command.Node = top
	for {
		switch n := node.(type) {
		case command.Callable:
			return n, path, words, nil
		case *command.SlashGroup:
			if len(words) == 0 {
				return nil, nil, nil, usage(n.QualifiedName(), n.Children())
			}

			child, ok := n.Child(words[0])
			if !ok {
				return nil, nil, nil, usage(n.QualifiedName(), n.Children())
			}

			if child.Kind() == command.KindSlashSubgroup {
				path.push(words[0], domain.OptionSubCommandGroup)
			} else {
				path.push(words[0], domain.OptionSubCommand)
			}

			node, words = child, words[1:]
		case *command.SlashSubgroup:
			var children []command.Node
			for _, sub := range n.Subcommands() {
				children = append(children, sub)
			}

			if len(words) == 0 {
				return nil, nil, nil, usage(n.QualifiedName(), children)
			}

			sub, ok := n.Subcommand(words[0])
			if !ok {
				return nil, nil, nil, usage(n.QualifiedName(), children)
			}

			path.push(words[0], domain.OptionSubCommand)
			node, words = sub, words[1:]
		default:
			return nil, nil, nil, fmt.Errorf("node kind %s: %w", node.Kind(), domain.ErrUnsupported)
		}
	}
}

func usage(path []string, children []command.Node) *UsageError {
	names := make([]string, 0, len(children))
	for _, c := range children {
		names = append(names, c.Name())
	}

	return &UsageError{Path: path, Children: names}
}

func leafOptions(leaf command.Callable, words []string, replyTo *models.Message,
	resolved *domain.ResolvedData) []*domain.InteractionOption {
	var scalars []*command.OptionSchema
	var options []*domain.InteractionOption

	for _, schema := range leaf.Params() {
		switch schema.Type {
		case domain.OptionUser, domain.OptionMentionable:
			if replyTo == nil || replyTo.From == nil {
				continue
			}

			user := toUser(replyTo.From)
			resolved.Users[user.ID] = user
			options = append(options, &domain.InteractionOption{Name: schema.Name, Type: schema.Type, Value: user.ID})
		case domain.OptionString, domain.OptionInteger, domain.OptionFloat, domain.OptionBoolean:
			scalars = append(scalars, schema)
		}
	}

	for i, schema := range scalars {
		if len(words) == 0 {
			break
		}

		raw := words[0]
		words = words[1:]

		if i == len(scalars)-1 && schema.Type == domain.OptionString && len(words) > 0 {
			raw = strings.Join(append([]string{raw}, words...), " ")
		}

		options = append(options, &domain.InteractionOption{
			Name:  schema.Name,
			Type:  schema.Type,
			Value: scalarValue(schema.Type, raw),
		})
	}

	return options
}

// scalarValue parses raw for the option type. Unparseable input is passed on
// as a string so that decoding reports it against the option.
func scalarValue(t domain.OptionType, raw string) any {
	switch t {
	case domain.OptionInteger:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	case domain.OptionFloat:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case domain.OptionBoolean:
		switch strings.ToLower(raw) {
		case "true", "yes", "on", "1":
			return true
		case "false", "no", "off", "0":
			return false
		}
	}

	return raw
}

func toUser(u *models.User) *domain.User {
	return &domain.User{
		ID:         domain.Snowflake(uint64(u.ID)),
		Username:   u.Username,
		GlobalName: strings.TrimSpace(u.FirstName + " " + u.LastName),
		IsBot:      u.IsBot,
	}
}

// chatID maps a telegram chat ID to a snowflake, keeping the bit pattern of
// negative group IDs.
func chatID(id int64) domain.Snowflake {
	return domain.Snowflake(uint64(id))
}

func telegramChatID(id domain.Snowflake) int64 {
	return int64(uint64(id))
}
