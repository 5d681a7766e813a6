package domain

import (
	"strconv"
	"time"
)

// discordEpoch is the first millisecond of 2015, the epoch snowflake timestamps count from.
const discordEpoch = 1420070400000

type Snowflake uint64

func ParseSnowflake(s string) (Snowflake, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return Snowflake(id), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Time returns the creation instant encoded in the snowflake.
func (s Snowflake) Time() time.Time {
	return time.UnixMilli(int64(s>>22) + discordEpoch)
}

type User struct {
	ID         Snowflake
	Username   string
	GlobalName string
	IsBot      bool
}

// DisplayName returns the global name if set, otherwise the username.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}

	return u.Username
}

type Member struct {
	User        *User
	GuildID     Snowflake
	Nickname    string
	RoleIDs     []Snowflake
	Permissions Permissions
}

func (m *Member) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}

	return m.User.DisplayName()
}

type Role struct {
	ID          Snowflake
	Name        string
	Color       int
	Permissions Permissions
}

type Channel struct {
	ID          Snowflake
	Name        string
	Type        ChannelType
	Permissions Permissions
}

type Attachment struct {
	ID          Snowflake
	Filename    string
	URL         string
	ContentType string
	Size        int
}

type Message struct {
	ID        Snowflake
	ChannelID Snowflake
	Content   string
	Author    *User
}

// Mentionable is the decoded value of a mentionable option. Exactly one of the
// fields is set, except that Member and User are both set when a member resolved.
type Mentionable struct {
	User   *User
	Member *Member
	Role   *Role
}

// ResolvedData maps opaque IDs referenced by options to entity snapshots.
type ResolvedData struct {
	Users       map[Snowflake]*User
	Members     map[Snowflake]*Member
	Roles       map[Snowflake]*Role
	Channels    map[Snowflake]*Channel
	Attachments map[Snowflake]*Attachment
	Messages    map[Snowflake]*Message
}

type InteractionType int

const (
	InteractionCommand InteractionType = iota + 1
	InteractionAutocomplete
)

// InteractionOption is one option value as delivered by the platform. Foreign
// references carry a Snowflake value; scalars carry string, int64, float64 or bool.
type InteractionOption struct {
	Name    string
	Type    OptionType
	Value   any
	Focused bool
	Options []*InteractionOption
}

type Interaction struct {
	ID             Snowflake
	ApplicationID  Snowflake
	Token          string
	Type           InteractionType
	CommandID      Snowflake
	CommandName    string
	CommandType    CommandType
	TargetID       Snowflake
	Options        []*InteractionOption
	Resolved       *ResolvedData
	User           *User
	Member         *Member
	GuildID        Snowflake
	ChannelID      Snowflake
	Locale         Locale
	GuildLocale    Locale
	AppPermissions *Permissions
	CreatedAt      time.Time
}

// Author returns the invoking user, taken from the member in guilds.
func (i *Interaction) Author() *User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}

	return i.User
}

// InGuild reports whether the interaction was invoked inside a guild.
func (i *Interaction) InGuild() bool {
	return i.GuildID != 0
}

// CommandPath returns the qualified name segments of the invoked command.
func (i *Interaction) CommandPath() []string {
	path := []string{i.CommandName}
	opts := i.Options

	for len(opts) > 0 {
		first := opts[0]
		if first.Type != OptionSubCommand && first.Type != OptionSubCommandGroup {
			break
		}

		path = append(path, first.Name)
		opts = first.Options
	}

	return path
}

// LeafOptions returns the options that belong to the leaf of the command path.
func (i *Interaction) LeafOptions() []*InteractionOption {
	opts := i.Options

	for len(opts) > 0 {
		first := opts[0]
		if first.Type != OptionSubCommand && first.Type != OptionSubCommandGroup {
			break
		}

		opts = first.Options
	}

	return opts
}
