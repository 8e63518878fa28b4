package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestPermissions(t *testing.T) {
	admin := &fakeCaller{author: "10", guild: "20", perms: discordgo.PermissionAdministrator | discordgo.PermissionSendMessages}
	member := &fakeCaller{author: "11", guild: "21", perms: discordgo.PermissionSendMessages}
	isTen := CustomPermission{Check: func(_ context.Context, c Caller) (bool, error) {
		return c.AuthorID() == "10", nil
	}}

	tests := []struct {
		name   string
		perm   Permission
		caller *fakeCaller
		want   bool
	}{
		{"user match", UserPermission{UserID: "10"}, admin, true},
		{"user mismatch", UserPermission{UserID: "10"}, member, false},
		{"guild match", GuildPermission{GuildID: "21"}, member, true},
		{"discord flag", Administrator, admin, true},
		{"discord flag missing", Administrator, member, false},
		{"custom", isTen, admin, true},
		{"and", And(SendMessages, UserPermission{UserID: "11"}), member, true},
		{"and fails", And(SendMessages, Administrator), member, false},
		{"or", Or(Administrator, GuildPermission{GuildID: "21"}), member, true},
		{"or fails", Or(Administrator, UserPermission{UserID: "10"}), member, false},
	}

	for _, tt := range tests {
		got, err := tt.perm.Evaluate(context.Background(), tt.caller)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPermissionShortCircuit(t *testing.T) {
	boom := CustomPermission{Check: func(context.Context, Caller) (bool, error) {
		return false, errors.New("boom")
	}}
	caller := &fakeCaller{author: "1"}

	if ok, err := Or(UserPermission{UserID: "1"}, boom).Evaluate(context.Background(), caller); err != nil || !ok {
		t.Errorf("or should stop at first true: %v %v", ok, err)
	}
	if ok, err := And(UserPermission{UserID: "2"}, boom).Evaluate(context.Background(), caller); err != nil || ok {
		t.Errorf("and should stop at first false: %v %v", ok, err)
	}
	if _, err := And(UserPermission{UserID: "1"}, boom).Evaluate(context.Background(), caller); err == nil {
		t.Errorf("expected error from custom permission")
	}
}

func TestPermissionStrings(t *testing.T) {
	tests := []struct {
		perm Permission
		want string
	}{
		{UserPermission{UserID: "1"}, "user:1"},
		{GuildPermission{GuildID: "2"}, "guild:2"},
		{CustomPermission{}, "custom"},
		{CustomPermission{Label: "owner"}, "owner"},
		{ManageGuild, "manage_guild"},
		{And(Administrator, UserPermission{UserID: "1"}), "administrator and user:1"},
		{And(Or(Administrator, ManageGuild), UserPermission{UserID: "1"}), "(administrator or manage_guild) and user:1"},
		{Or(Administrator, ManageGuild, KickMembers), "(administrator or manage_guild) or kick_members"},
	}

	for _, tt := range tests {
		if got := tt.perm.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPermissionBuilder(t *testing.T) {
	var b PermissionBuilder
	caller := &fakeCaller{author: "3"}

	if ok, _ := b.Evaluate(context.Background(), caller); !ok {
		t.Errorf("empty builder should allow everyone")
	}
	if err := b.Add(UserPermission{UserID: "1"}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := b.Evaluate(context.Background(), caller); ok {
		t.Errorf("user 3 should be denied")
	}
	if err := b.Add(UserPermission{UserID: "3"}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := b.Evaluate(context.Background(), caller); !ok {
		t.Errorf("any permission in the builder should grant access")
	}
}

func TestDiscordPermissionByName(t *testing.T) {
	p, ok := DiscordPermissionByName("manage_messages")
	if !ok || p != ManageMessages {
		t.Errorf("lookup = %v %v", p, ok)
	}
	if _, ok := DiscordPermissionByName("fly"); ok {
		t.Errorf("unknown name should not resolve")
	}
}

func TestCustomPermissionWithoutCheck(t *testing.T) {
	var b PermissionBuilder
	if err := b.Add(CustomPermission{Label: "broken"}); !IsKind(err, TypeError) {
		t.Errorf("Add = %v, want a type error", err)
	}

	sys, err := NewSystem("bot", "")
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	cmd := mustCommand(t)(sys.Command("x", "", noop))
	if err := cmd.Permission(Or(CustomPermission{}, UserPermission{UserID: "1"})); err != nil {
		t.Fatalf("Permission: %v", err)
	}

	if _, _, err := sys.Lookup(context.Background(), &fakeCaller{author: "2"}, "x"); !IsKind(err, InsufficientPermissionsError) {
		t.Errorf("Lookup by user 2 = %v, want insufficient permissions", err)
	}
	if _, _, err := sys.Lookup(context.Background(), &fakeCaller{author: "1"}, "x"); err != nil {
		t.Errorf("Lookup by user 1 = %v", err)
	}
}
