package domain

import "errors"

var (
	ErrUnsupported = errors.New("operation not supported by transport")
	ErrEmptyPrompt = errors.New("empty prompt")
)

const (
	// MaxChoices is the platform limit for choices and autocomplete suggestions.
	MaxChoices = 25
	// MaxOptions is the platform limit for options on a single command.
	MaxOptions = 25
	// MaxNameLength is the platform limit for command and option names.
	MaxNameLength = 32
	// MaxDescriptionLength is the platform limit for command and option descriptions.
	MaxDescriptionLength = 100
)

type CommandType int

const (
	CommandSlash   CommandType = 1
	CommandUser    CommandType = 2
	CommandMessage CommandType = 3
)

func (t CommandType) String() string {
	switch t {
	case CommandSlash:
		return "slash"
	case CommandUser:
		return "user"
	case CommandMessage:
		return "message"
	default:
		return "unknown"
	}
}

type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionFloat           OptionType = 10
	OptionAttachment      OptionType = 11
)

func (t OptionType) String() string {
	switch t {
	case OptionSubCommand:
		return "subcommand"
	case OptionSubCommandGroup:
		return "subcommand group"
	case OptionString:
		return "string"
	case OptionInteger:
		return "integer"
	case OptionBoolean:
		return "boolean"
	case OptionUser:
		return "user"
	case OptionChannel:
		return "channel"
	case OptionRole:
		return "role"
	case OptionMentionable:
		return "mentionable"
	case OptionFloat:
		return "float"
	case OptionAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// IsForeign reports whether option values of this type are opaque IDs that must
// be looked up in the resolved side-table.
func (t OptionType) IsForeign() bool {
	switch t {
	case OptionUser, OptionChannel, OptionRole, OptionMentionable, OptionAttachment:
		return true
	default:
		return false
	}
}

type ChannelType int

const (
	ChannelGuildText          ChannelType = 0
	ChannelDM                 ChannelType = 1
	ChannelGuildVoice         ChannelType = 2
	ChannelGroupDM            ChannelType = 3
	ChannelGuildCategory      ChannelType = 4
	ChannelGuildNews          ChannelType = 5
	ChannelGuildNewsThread    ChannelType = 10
	ChannelGuildPublicThread  ChannelType = 11
	ChannelGuildPrivateThread ChannelType = 12
	ChannelGuildStageVoice    ChannelType = 13
	ChannelGuildForum         ChannelType = 15
	ChannelGuildMedia         ChannelType = 16
)

type Locale string

const (
	LocaleEnglishUS Locale = "en-US"
	LocaleEnglishGB Locale = "en-GB"
	LocaleGerman    Locale = "de"
	LocaleFrench    Locale = "fr"
	LocaleSpanish   Locale = "es-ES"
	LocaleJapanese  Locale = "ja"
)

type MessageFlags int

const (
	FlagSuppressEmbeds MessageFlags = 1 << 2
	FlagEphemeral      MessageFlags = 1 << 6
	FlagLoading        MessageFlags = 1 << 7
)
