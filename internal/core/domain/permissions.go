package domain

import (
	"math/bits"
	"strings"
)

type Permissions uint64

const PermissionsNone Permissions = 0

const (
	PermissionCreateInstantInvite Permissions = 1 << iota
	PermissionKickMembers
	PermissionBanMembers
	PermissionAdministrator
	PermissionManageChannels
	PermissionManageGuild
	PermissionAddReactions
	PermissionViewAuditLog
	PermissionPrioritySpeaker
	PermissionStream
	PermissionViewChannel
	PermissionSendMessages
	PermissionSendTTSMessages
	PermissionManageMessages
	PermissionEmbedLinks
	PermissionAttachFiles
	PermissionReadMessageHistory
	PermissionMentionEveryone
	PermissionUseExternalEmojis
	PermissionViewGuildInsights
	PermissionConnect
	PermissionSpeak
	PermissionMuteMembers
	PermissionDeafenMembers
	PermissionMoveMembers
	PermissionUseVAD
	PermissionChangeNickname
	PermissionManageNicknames
	PermissionManageRoles
	PermissionManageWebhooks
	PermissionManageGuildExpressions
	PermissionUseApplicationCommands
)

const PermissionModerateMembers Permissions = 1 << 40

var permissionNames = map[Permissions]string{
	PermissionCreateInstantInvite:    "CREATE_INSTANT_INVITE",
	PermissionKickMembers:            "KICK_MEMBERS",
	PermissionBanMembers:             "BAN_MEMBERS",
	PermissionAdministrator:          "ADMINISTRATOR",
	PermissionManageChannels:         "MANAGE_CHANNELS",
	PermissionManageGuild:            "MANAGE_GUILD",
	PermissionAddReactions:           "ADD_REACTIONS",
	PermissionViewAuditLog:           "VIEW_AUDIT_LOG",
	PermissionPrioritySpeaker:        "PRIORITY_SPEAKER",
	PermissionStream:                 "STREAM",
	PermissionViewChannel:            "VIEW_CHANNEL",
	PermissionSendMessages:           "SEND_MESSAGES",
	PermissionSendTTSMessages:        "SEND_TTS_MESSAGES",
	PermissionManageMessages:         "MANAGE_MESSAGES",
	PermissionEmbedLinks:             "EMBED_LINKS",
	PermissionAttachFiles:            "ATTACH_FILES",
	PermissionReadMessageHistory:     "READ_MESSAGE_HISTORY",
	PermissionMentionEveryone:        "MENTION_EVERYONE",
	PermissionUseExternalEmojis:      "USE_EXTERNAL_EMOJIS",
	PermissionViewGuildInsights:      "VIEW_GUILD_INSIGHTS",
	PermissionConnect:                "CONNECT",
	PermissionSpeak:                  "SPEAK",
	PermissionMuteMembers:            "MUTE_MEMBERS",
	PermissionDeafenMembers:          "DEAFEN_MEMBERS",
	PermissionMoveMembers:            "MOVE_MEMBERS",
	PermissionUseVAD:                 "USE_VAD",
	PermissionChangeNickname:         "CHANGE_NICKNAME",
	PermissionManageNicknames:        "MANAGE_NICKNAMES",
	PermissionManageRoles:            "MANAGE_ROLES",
	PermissionManageWebhooks:         "MANAGE_WEBHOOKS",
	PermissionManageGuildExpressions: "MANAGE_GUILD_EXPRESSIONS",
	PermissionUseApplicationCommands: "USE_APPLICATION_COMMANDS",
	PermissionModerateMembers:        "MODERATE_MEMBERS",
}

// Has reports whether every bit of required is present. Administrator implies all.
func (p Permissions) Has(required Permissions) bool {
	if p&PermissionAdministrator != 0 {
		return true
	}

	return p&required == required
}

// Missing returns the bits of required that p lacks.
func (p Permissions) Missing(required Permissions) Permissions {
	if p&PermissionAdministrator != 0 {
		return PermissionsNone
	}

	return required &^ p
}

func (p Permissions) String() string {
	if p == PermissionsNone {
		return "NONE"
	}

	names := make([]string, 0, bits.OnesCount64(uint64(p)))

	for bit := 0; bit < 64; bit++ {
		flag := Permissions(1) << bit
		if p&flag == 0 {
			continue
		}

		if name, ok := permissionNames[flag]; ok {
			names = append(names, name)
		} else {
			names = append(names, "UNKNOWN")
		}
	}

	return strings.Join(names, "|")
}
