package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPath(t *testing.T) {
	tests := []struct {
		name     string
		options  []*InteractionOption
		wantPath []string
		wantLeaf int
	}{
		{
			name:     "top level with options",
			options:  []*InteractionOption{{Name: "a", Type: OptionInteger, Value: int64(1)}},
			wantPath: []string{"root"},
			wantLeaf: 1,
		},
		{
			name: "subcommand",
			options: []*InteractionOption{{Name: "sub", Type: OptionSubCommand, Options: []*InteractionOption{
				{Name: "a", Type: OptionString, Value: "x"},
				{Name: "b", Type: OptionString, Value: "y"},
			}}},
			wantPath: []string{"root", "sub"},
			wantLeaf: 2,
		},
		{
			name: "subgroup",
			options: []*InteractionOption{{Name: "group", Type: OptionSubCommandGroup, Options: []*InteractionOption{
				{Name: "nested", Type: OptionSubCommand},
			}}},
			wantPath: []string{"root", "group", "nested"},
			wantLeaf: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			i := &Interaction{CommandName: "root", Options: tc.options}
			assert.Equal(t, tc.wantPath, i.CommandPath())
			assert.Len(t, i.LeafOptions(), tc.wantLeaf)
		})
	}
}

func TestInteractionAuthor(t *testing.T) {
	user := &User{ID: 1}
	memberUser := &User{ID: 2}

	assert.Equal(t, user, (&Interaction{User: user}).Author())
	assert.Equal(t, memberUser, (&Interaction{User: user, Member: &Member{User: memberUser}}).Author())
}

func TestSnowflake(t *testing.T) {
	id, err := ParseSnowflake("175928847299117063")
	require.NoError(t, err)
	assert.Equal(t, "175928847299117063", id.String())
	assert.Equal(t, time.UnixMilli(1462015105796).UTC(), id.Time().UTC())

	_, err = ParseSnowflake("nope")
	assert.Error(t, err)
}

func TestPermissions(t *testing.T) {
	tests := []struct {
		name        string
		have        Permissions
		required    Permissions
		wantHas     bool
		wantMissing Permissions
	}{
		{
			name:        "has all",
			have:        PermissionManageGuild | PermissionBanMembers,
			required:    PermissionManageGuild,
			wantHas:     true,
			wantMissing: PermissionsNone,
		},
		{
			name:        "missing one",
			have:        PermissionManageGuild,
			required:    PermissionManageGuild | PermissionBanMembers,
			wantHas:     false,
			wantMissing: PermissionBanMembers,
		},
		{
			name:        "administrator implies all",
			have:        PermissionAdministrator,
			required:    PermissionManageGuild | PermissionBanMembers,
			wantHas:     true,
			wantMissing: PermissionsNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantHas, tc.have.Has(tc.required))
			assert.Equal(t, tc.wantMissing, tc.have.Missing(tc.required))
		})
	}

	assert.Equal(t, "NONE", PermissionsNone.String())
	assert.Equal(t, "BAN_MEMBERS|MANAGE_GUILD", (PermissionManageGuild | PermissionBanMembers).String())
}
