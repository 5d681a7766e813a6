package hook

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/spf13/viper"
)

// ChannelNotAllowedError is returned by a ChannelAllowlist for channels that
// are not on the list.
type ChannelNotAllowedError struct {
	ChannelID domain.Snowflake
}

func (e *ChannelNotAllowedError) Error() string {
	return fmt.Sprintf("channel %s is not allowed to use this command", e.ChannelID)
}

func (*ChannelNotAllowedError) Unwrap() error { return command.ErrHookAbort }

// ChannelAllowlist only lets commands run in listed channels. An empty list
// allows every channel.
type ChannelAllowlist struct {
	allowlist []domain.Snowflake
}

func NewChannelAllowlist(ids ...domain.Snowflake) *ChannelAllowlist {
	return &ChannelAllowlist{allowlist: ids}
}

// NewChannelAllowlistFromConfig reads the allowed chat IDs from
// telegram.allowed_chat_ids. Negative group chat IDs keep their bit pattern.
func NewChannelAllowlistFromConfig() (*ChannelAllowlist, error) {
	var list []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &list)
	if err != nil {
		return nil, errors.New("failed to load allowed chat IDs")
	}

	ids := make([]domain.Snowflake, 0, len(list))
	for _, id := range list {
		ids = append(ids, domain.Snowflake(uint64(id)))
	}

	return NewChannelAllowlist(ids...), nil
}

func (a *ChannelAllowlist) Check(ctx *command.Context) (command.HookResult, error) {
	if len(a.allowlist) == 0 || slices.Contains(a.allowlist, ctx.ChannelID()) {
		return pass, nil
	}

	return pass, &ChannelNotAllowedError{ChannelID: ctx.ChannelID()}
}
