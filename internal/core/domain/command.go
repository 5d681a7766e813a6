package domain

// CommandDefinition is the serialized shape of a top-level command as it is
// registered with the platform.
type CommandDefinition struct {
	Type                     CommandType        `json:"type"`
	Name                     string             `json:"name"`
	Description              string             `json:"description,omitempty"`
	NameLocalizations        map[Locale]string  `json:"name_localizations,omitempty"`
	DescriptionLocalizations map[Locale]string  `json:"description_localizations,omitempty"`
	Options                  []OptionDefinition `json:"options,omitempty"`
	DefaultPermissions       *Permissions       `json:"default_member_permissions,omitempty"`
	DMEnabled                bool               `json:"dm_permission"`
	NSFW                     bool               `json:"nsfw"`
	GuildIDs                 []Snowflake        `json:"guild_ids,omitempty"`
}

type OptionDefinition struct {
	Type                     OptionType         `json:"type"`
	Name                     string             `json:"name"`
	Description              string             `json:"description"`
	NameLocalizations        map[Locale]string  `json:"name_localizations,omitempty"`
	DescriptionLocalizations map[Locale]string  `json:"description_localizations,omitempty"`
	Required                 bool               `json:"required,omitempty"`
	Choices                  []Choice           `json:"choices,omitempty"`
	Autocomplete             bool               `json:"autocomplete,omitempty"`
	MinValue                 *float64           `json:"min_value,omitempty"`
	MaxValue                 *float64           `json:"max_value,omitempty"`
	MinLength                *int               `json:"min_length,omitempty"`
	MaxLength                *int               `json:"max_length,omitempty"`
	ChannelTypes             []ChannelType      `json:"channel_types,omitempty"`
	Options                  []OptionDefinition `json:"options,omitempty"`
}
