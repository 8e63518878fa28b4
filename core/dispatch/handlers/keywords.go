package handlers

import (
	"context"
	"fmt"
	"math/rand/v2"

	"Discordbot/core"
	"Discordbot/core/cli"
	"Discordbot/core/dispatch"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

type keywords struct {
	dispatch.NoOpMessageHandler
}

func init() {
	dispatch.Register(&keywords{})
}

func (*keywords) CommandGroup() string {
	return "Chat"
}

func (*keywords) RegisterCommands(sys *cli.System) error {
	say, err := sys.Command("say", "Make the bot say something", handleSay)
	if err != nil {
		return err
	}
	if err := say.Arguments().String("text", "what to say", cli.Range[int]{}); err != nil {
		return err
	}

	status, err := sys.Command("status", "Change the game the bot is playing", handleStatus)
	if err != nil {
		return err
	}
	if err := status.Arguments().String("text", "the new status", cli.Range[int]{}); err != nil {
		return err
	}
	return status.Permission(cli.Or(dispatch.OwnerPermission, cli.ManageGuild))
}

func handleSay(_ context.Context, caller cli.Caller, p cli.Params) error {
	return caller.Reply(p.String("text"))
}

func handleStatus(_ context.Context, caller cli.Caller, p cli.Params) error {
	m, ok := dispatch.MessageOf(caller)
	if !ok {
		return nil
	}
	if err := m.Transport.UpdateGameStatus(0, p.String("text")); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	core.LogInfoF("Status changed to %q by %s", p.String("text"), m.AuthorID())
	return nil
}

// HandleChatter answers messages that exactly match a configured trigger.
func (*keywords) HandleChatter(m *dispatch.Message) bool {
	for _, responder := range core.Settings.Responders() {
		if len(responder.Answers) == 0 || !funk.ContainsString(responder.Triggers, m.Content) {
			continue
		}
		m.ReplyToChannel("%s", responder.Answers[rand.IntN(len(responder.Answers))])
		return true
	}
	return false
}

// Welcome sends the welcome message to a new member in private.
func Welcome(t dispatch.Transport, member *discordgo.Member) {
	if member == nil || member.User == nil || member.User.Bot {
		return
	}
	ch, err := t.UserChannelCreate(member.User.ID)
	if err != nil {
		core.LogErrorF("Failed to open private channel with %s: %s", member.User.ID, err)
		return
	}
	if _, err := t.ChannelMessageSend(ch.ID, fmt.Sprintf(core.Settings.WelcomeMessage(), member.User.Username)); err != nil {
		core.LogErrorF("Failed to welcome %s: %s", member.User.ID, err)
	}
}
