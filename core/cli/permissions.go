package cli

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

// Caller is the message that triggered a command: who sent it, where, and how to answer.
type Caller interface {
	AuthorID() string
	GuildID() string
	// ChannelPermissions is the discord permission bit set of the author in the channel.
	ChannelPermissions() int64
	Reply(content string) error
	ReplyEmbed(embed *discordgo.MessageEmbed) error
}

// Permission decides whether a caller may see and run a command.
type Permission interface {
	Evaluate(ctx context.Context, c Caller) (bool, error)
	String() string
}

type UserPermission struct {
	UserID string
}

func (p UserPermission) Evaluate(_ context.Context, c Caller) (bool, error) {
	return c.AuthorID() == p.UserID, nil
}

func (p UserPermission) String() string { return "user:" + p.UserID }

type GuildPermission struct {
	GuildID string
}

func (p GuildPermission) Evaluate(_ context.Context, c Caller) (bool, error) {
	return c.GuildID() == p.GuildID, nil
}

func (p GuildPermission) String() string { return "guild:" + p.GuildID }

// CustomPermission wraps an arbitrary predicate. Label is optional. Without a Check it
// never holds.
type CustomPermission struct {
	Label string
	Check func(ctx context.Context, c Caller) (bool, error)
}

func (p CustomPermission) Evaluate(ctx context.Context, c Caller) (bool, error) {
	if p.Check == nil {
		return false, nil
	}
	return p.Check(ctx, c)
}

func (p CustomPermission) String() string {
	if p.Label != "" {
		return p.Label
	}
	return "custom"
}

// DiscordPermission holds when the caller has every bit of Flag in the channel.
type DiscordPermission struct {
	Name string
	Flag int64
}

func (p DiscordPermission) Evaluate(_ context.Context, c Caller) (bool, error) {
	return c.ChannelPermissions()&p.Flag == p.Flag, nil
}

func (p DiscordPermission) String() string { return p.Name }

var (
	CreateInstantInvite = DiscordPermission{"create_instant_invite", discordgo.PermissionCreateInstantInvite}
	KickMembers         = DiscordPermission{"kick_members", discordgo.PermissionKickMembers}
	BanMembers          = DiscordPermission{"ban_members", discordgo.PermissionBanMembers}
	Administrator       = DiscordPermission{"administrator", discordgo.PermissionAdministrator}
	ManageChannels      = DiscordPermission{"manage_channels", discordgo.PermissionManageChannels}
	ManageGuild         = DiscordPermission{"manage_guild", discordgo.PermissionManageServer}
	AddReactions        = DiscordPermission{"add_reactions", discordgo.PermissionAddReactions}
	ViewAuditLog        = DiscordPermission{"view_audit_log", discordgo.PermissionViewAuditLogs}
	ReadMessages        = DiscordPermission{"read_messages", discordgo.PermissionViewChannel}
	SendMessages        = DiscordPermission{"send_messages", discordgo.PermissionSendMessages}
	SendTTSMessages     = DiscordPermission{"send_tts_messages", discordgo.PermissionSendTTSMessages}
	ManageMessages      = DiscordPermission{"manage_messages", discordgo.PermissionManageMessages}
	EmbedLinks          = DiscordPermission{"embed_links", discordgo.PermissionEmbedLinks}
	AttachFiles         = DiscordPermission{"attach_files", discordgo.PermissionAttachFiles}
	ReadMessageHistory  = DiscordPermission{"read_message_history", discordgo.PermissionReadMessageHistory}
	MentionEveryone     = DiscordPermission{"mention_everyone", discordgo.PermissionMentionEveryone}
	ExternalEmojis      = DiscordPermission{"external_emojis", discordgo.PermissionUseExternalEmojis}
	Connect             = DiscordPermission{"connect", discordgo.PermissionVoiceConnect}
	Speak               = DiscordPermission{"speak", discordgo.PermissionVoiceSpeak}
	MuteMembers         = DiscordPermission{"mute_members", discordgo.PermissionVoiceMuteMembers}
	DeafenMembers       = DiscordPermission{"deafen_members", discordgo.PermissionVoiceDeafenMembers}
	MoveMembers         = DiscordPermission{"move_members", discordgo.PermissionVoiceMoveMembers}
	UseVoiceActivation  = DiscordPermission{"use_voice_activation", discordgo.PermissionVoiceUseVAD}
	ChangeNickname      = DiscordPermission{"change_nickname", discordgo.PermissionChangeNickname}
	ManageNicknames     = DiscordPermission{"manage_nicknames", discordgo.PermissionManageNicknames}
	ManageRoles         = DiscordPermission{"manage_roles", discordgo.PermissionManageRoles}
	ManageWebhooks      = DiscordPermission{"manage_webhooks", discordgo.PermissionManageWebhooks}
)

var discordPermissions = []DiscordPermission{
	CreateInstantInvite, KickMembers, BanMembers, Administrator, ManageChannels, ManageGuild,
	AddReactions, ViewAuditLog, ReadMessages, SendMessages, SendTTSMessages, ManageMessages,
	EmbedLinks, AttachFiles, ReadMessageHistory, MentionEveryone, ExternalEmojis, Connect,
	Speak, MuteMembers, DeafenMembers, MoveMembers, UseVoiceActivation, ChangeNickname,
	ManageNicknames, ManageRoles, ManageWebhooks,
}

// DiscordPermissionByName looks up a discord permission by its snake case name.
func DiscordPermissionByName(name string) (DiscordPermission, bool) {
	found := funk.Find(discordPermissions, func(p DiscordPermission) bool {
		return p.Name == name
	})
	if found == nil {
		return DiscordPermission{}, false
	}
	return found.(DiscordPermission), true
}

type andPermission struct {
	left, right Permission
}

func (p andPermission) Evaluate(ctx context.Context, c Caller) (bool, error) {
	ok, err := p.left.Evaluate(ctx, c)
	if err != nil || !ok {
		return false, err
	}
	return p.right.Evaluate(ctx, c)
}

func (p andPermission) String() string {
	return fmt.Sprintf("%s and %s", operand(p.left), operand(p.right))
}

type orPermission struct {
	left, right Permission
}

func (p orPermission) Evaluate(ctx context.Context, c Caller) (bool, error) {
	ok, err := p.left.Evaluate(ctx, c)
	if err != nil || ok {
		return ok, err
	}
	return p.right.Evaluate(ctx, c)
}

func (p orPermission) String() string {
	return fmt.Sprintf("%s or %s", operand(p.left), operand(p.right))
}

// operand wraps composite permissions in brackets.
func operand(p Permission) string {
	switch p.(type) {
	case andPermission, orPermission:
		return "(" + p.String() + ")"
	}
	return p.String()
}

// And combines permissions left to right; evaluation stops at the first one that fails.
func And(first, second Permission, more ...Permission) Permission {
	var result Permission = andPermission{first, second}
	for _, p := range more {
		result = andPermission{result, p}
	}
	return result
}

// Or combines permissions left to right; evaluation stops at the first one that holds.
func Or(first, second Permission, more ...Permission) Permission {
	var result Permission = orPermission{first, second}
	for _, p := range more {
		result = orPermission{result, p}
	}
	return result
}

// PermissionBuilder holds the permissions of one command. Any one of them grants access,
// an empty builder grants access to everyone.
type PermissionBuilder struct {
	permissions []Permission
}

func (b *PermissionBuilder) Add(p Permission) error {
	if p == nil {
		return newError(TypeError, "permission must be a permission type")
	}
	if custom, ok := p.(CustomPermission); ok && custom.Check == nil {
		return newError(TypeError, "custom permission %s has no check", custom)
	}
	b.permissions = append(b.permissions, p)
	return nil
}

func (b *PermissionBuilder) Permissions() []Permission {
	return b.permissions
}

func (b *PermissionBuilder) Count() int {
	return len(b.permissions)
}

func (b *PermissionBuilder) Evaluate(ctx context.Context, c Caller) (bool, error) {
	if len(b.permissions) == 0 {
		return true, nil
	}
	for _, p := range b.permissions {
		ok, err := p.Evaluate(ctx, c)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
