package command

import (
	"slices"
	"sort"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

const defaultDescription = "No description provided."

type wireKind int

const (
	kindString wireKind = iota + 1
	kindInteger
	kindBoolean
	kindFloat
	kindUser
	kindMember
	kindChannel
	kindRole
	kindMentionable
	kindAttachment
	kindColor
	kindEmoji
)

func (k wireKind) String() string {
	switch k {
	case kindMember:
		return "member"
	case kindColor:
		return "color"
	case kindEmoji:
		return "emoji"
	default:
		return k.optionType().String()
	}
}

func (k wireKind) optionType() domain.OptionType {
	switch k {
	case kindString, kindColor, kindEmoji:
		return domain.OptionString
	case kindInteger:
		return domain.OptionInteger
	case kindBoolean:
		return domain.OptionBoolean
	case kindFloat:
		return domain.OptionFloat
	case kindUser, kindMember:
		return domain.OptionUser
	case kindChannel:
		return domain.OptionChannel
	case kindRole:
		return domain.OptionRole
	case kindMentionable:
		return domain.OptionMentionable
	case kindAttachment:
		return domain.OptionAttachment
	default:
		return 0
	}
}

// OptionSchema describes one command option: its wire type, constraints and
// how its value is decoded. Schemas are built when a command is defined.
type OptionSchema struct {
	// Name is the name the platform sees.
	Name string
	// ArgName is the parameter name the handler reads the value by.
	ArgName                  string
	Description              string
	NameLocalizations        map[domain.Locale]string
	DescriptionLocalizations map[domain.Locale]string
	Type                     domain.OptionType
	Required                 bool
	MinValue                 *float64
	MaxValue                 *float64
	MinLength                *int
	MaxLength                *int
	ChannelTypes             []domain.ChannelType
	Choices                  []domain.Choice
	Autocomplete             AutocompleteFunc

	kind wireKind
}

func (o *OptionSchema) definition() domain.OptionDefinition {
	return domain.OptionDefinition{
		Type:                     o.Type,
		Name:                     o.Name,
		Description:              o.Description,
		NameLocalizations:        o.NameLocalizations,
		DescriptionLocalizations: o.DescriptionLocalizations,
		Required:                 o.Required,
		Choices:                  o.Choices,
		Autocomplete:             o.Autocomplete != nil,
		MinValue:                 o.MinValue,
		MaxValue:                 o.MaxValue,
		MinLength:                o.MinLength,
		MaxLength:                o.MaxLength,
		ChannelTypes:             o.ChannelTypes,
	}
}

// optionDefinitions serializes schemas with required options first, keeping
// declaration order otherwise.
func optionDefinitions(schemas []*OptionSchema) []domain.OptionDefinition {
	defs := make([]domain.OptionDefinition, 0, len(schemas))
	for _, s := range schemas {
		defs = append(defs, s.definition())
	}

	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].Required && !defs[j].Required
	})

	return defs
}

// ChannelClass is a family of channels a channel option may accept.
type ChannelClass int

const (
	GuildChannel ChannelClass = iota + 1
	TextableGuildChannel
	GuildTextChannel
	GuildNewsChannel
	GuildVoiceChannel
	GuildStageChannel
	GuildCategory
	GuildThreadChannel
	GuildForumChannel
	GuildMediaChannel
	DMChannel
	GroupDMChannel
)

var channelClassTypes = map[ChannelClass][]domain.ChannelType{
	GuildChannel: {
		domain.ChannelGuildText, domain.ChannelGuildVoice, domain.ChannelGuildCategory,
		domain.ChannelGuildNews, domain.ChannelGuildNewsThread, domain.ChannelGuildPublicThread,
		domain.ChannelGuildPrivateThread, domain.ChannelGuildStageVoice, domain.ChannelGuildForum,
		domain.ChannelGuildMedia,
	},
	TextableGuildChannel: {domain.ChannelGuildText, domain.ChannelGuildNews},
	GuildTextChannel:     {domain.ChannelGuildText},
	GuildNewsChannel:     {domain.ChannelGuildNews},
	GuildVoiceChannel:    {domain.ChannelGuildVoice},
	GuildStageChannel:    {domain.ChannelGuildStageVoice},
	GuildCategory:        {domain.ChannelGuildCategory},
	GuildThreadChannel: {
		domain.ChannelGuildNewsThread, domain.ChannelGuildPublicThread, domain.ChannelGuildPrivateThread,
	},
	GuildForumChannel: {domain.ChannelGuildForum},
	GuildMediaChannel: {domain.ChannelGuildMedia},
	DMChannel:         {domain.ChannelDM},
	GroupDMChannel:    {domain.ChannelGroupDM},
}

// channelTypes returns the union of the channel type codes of classes.
func channelTypes(classes []ChannelClass) ([]domain.ChannelType, bool) {
	var types []domain.ChannelType

	for _, class := range classes {
		codes, ok := channelClassTypes[class]
		if !ok {
			return nil, false
		}

		for _, code := range codes {
			if !slices.Contains(types, code) {
				types = append(types, code)
			}
		}
	}

	slices.Sort(types)

	return types, true
}
