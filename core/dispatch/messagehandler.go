package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"Discordbot/core"
	"Discordbot/core/cli"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Transport is the part of the discord session the dispatcher and handlers talk to.
// *discordgo.Session implements it.
type Transport interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	UpdateGameStatus(idle int, name string) error
}

// Container for a message, the transport to answer on and the command line it carries.
type Message struct {
	*discordgo.Message
	Transport Transport
	// Input is the content without the command prefix or hot word.
	Input string
	// Command and Args are the tokens of Input.
	Command string
	Args    []string
	IsPM    bool

	pacer     *rate.Limiter
	permsOnce sync.Once
	perms     int64
}

func (m *Message) AuthorID() string {
	if m.Author == nil {
		return ""
	}
	return m.Author.ID
}

func (m *Message) GuildID() string {
	return m.Message.GuildID
}

// ChannelPermissions is looked up once per message. Failures count as no permissions.
func (m *Message) ChannelPermissions() int64 {
	m.permsOnce.Do(func() {
		if m.IsPM {
			return
		}
		perms, err := m.Transport.UserChannelPermissions(m.AuthorID(), m.ChannelID)
		if err != nil {
			core.LogErrorF("Failed to fetch permissions of %s in %s: %s", m.AuthorID(), m.ChannelID, err)
			return
		}
		m.perms = perms
	})
	return m.perms
}

func (m *Message) Reply(content string) error {
	_, err := m.Transport.ChannelMessageSend(m.ChannelID, content)
	return err
}

func (m *Message) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := m.Transport.ChannelMessageSendEmbed(m.ChannelID, embed)
	return err
}

// Utility method to send quick reply back to the channel
func (m *Message) ReplyToChannel(format string, v ...interface{}) {
	if err := m.Reply(fmt.Sprintf(format, v...)); err != nil {
		core.LogErrorF("Failed to send message to %s: %s", m.ChannelID, err)
	}
}

// Utility method to send a reply to the author of the message
func (m *Message) ReplyToSender(format string, v ...interface{}) chan struct{} {
	sendDone := make(chan struct{}, 1)
	go func() {
		defer func() { sendDone <- struct{}{} }()
		ch, err := m.Transport.UserChannelCreate(m.AuthorID())
		if err != nil {
			core.LogError("Failed to open private channel: ", err)
			return
		}
		if _, err := m.Transport.ChannelMessageSend(ch.ID, fmt.Sprintf(format, v...)); err != nil {
			core.LogErrorF("Failed to send private message to %s: %s", m.AuthorID(), err)
		}
	}()
	return sendDone
}

// ReplyPaced sends lines one by one, spaced out by the fighter send delay.
func (m *Message) ReplyPaced(ctx context.Context, lines ...string) error {
	for _, line := range lines {
		if m.pacer != nil {
			if err := m.pacer.Wait(ctx); err != nil {
				return err
			}
		}
		if err := m.Reply(line); err != nil {
			return err
		}
	}
	return nil
}

var _ cli.Caller = (*Message)(nil)

// MessageOf recovers the message behind a command caller.
func MessageOf(c cli.Caller) (*Message, bool) {
	m, ok := c.(*Message)
	return m, ok
}

// OwnerPermission holds for the bot owners listed in the settings.
var OwnerPermission = cli.CustomPermission{
	Label: "owner",
	Check: func(_ context.Context, c cli.Caller) (bool, error) {
		return core.Settings.IsOwner(c.AuthorID()), nil
	},
}

// Interface used for message handlers
type MessageHandler interface {
	// Add this handler's commands to a freshly built command system.
	RegisterCommands(*cli.System) error
	// Wildcard handling for a command the command system does not know.
	HandleAnything(*Message) bool
	// Messages that are not addressed to the bot.
	HandleChatter(*Message) bool
	// Optional group for this command
	CommandGroup() string
	// Called when settings file are loaded
	SettingsLoaded()
}

// Each message handler can process one or more commands / message responses
type NoOpMessageHandler struct{}

func (*NoOpMessageHandler) CommandGroup() string {
	return ""
}

func (*NoOpMessageHandler) SettingsLoaded() {
}

func (*NoOpMessageHandler) RegisterCommands(*cli.System) error {
	return nil
}

func (*NoOpMessageHandler) HandleAnything(*Message) bool {
	return false
}

func (*NoOpMessageHandler) HandleChatter(*Message) bool {
	return false
}

func toName(handler MessageHandler) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", handler), "*")
}
