package dispatch

import (
	"context"
	"testing"

	"Discordbot/core"
	"Discordbot/core/cli"
	"Discordbot/core/dispatch/dispatchtest"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
)

type echoHandler struct {
	NoOpMessageHandler
	loaded   int
	anything []string
	chatter  []string
}

func (h *echoHandler) SettingsLoaded() { h.loaded++ }

func (h *echoHandler) RegisterCommands(sys *cli.System) error {
	echo, err := sys.Command("echo", "Repeats its argument", func(_ context.Context, c cli.Caller, p cli.Params) error {
		return c.Reply(p.String("text"))
	})
	if err != nil {
		return err
	}
	return echo.Arguments().String("text", "", cli.Range[int]{})
}

func (h *echoHandler) HandleAnything(m *Message) bool {
	h.anything = append(h.anything, m.Command)
	return m.Command == "known"
}

func (h *echoHandler) HandleChatter(m *Message) bool {
	h.chatter = append(h.chatter, m.Content)
	return true
}

func setupDispatcher(t *testing.T) (*MessageDispatcher, *echoHandler) {
	t.Helper()
	core.Settings.SetForTest(func(data *core.SettingsData) {
		data.BotName = "fightbot"
		data.HotWords = []string{"Brawler"}
		data.Fighter.SendDelayMs = 0
	})
	d := &MessageDispatcher{}
	h := &echoHandler{}
	d.Register(h)
	if err := d.SettingsLoaded(); err != nil {
		t.Fatalf("SettingsLoaded: %v", err)
	}
	return d, h
}

func message(author, content string) *discordgo.Message {
	return &discordgo.Message{
		ChannelID: "chan",
		GuildID:   "guild",
		Content:   content,
		Author:    &discordgo.User{ID: author, Username: "user" + author},
	}
}

func TestActivate(t *testing.T) {
	setupDispatcher(t)

	tests := []struct {
		content string
		want    string
		ok      bool
	}{
		{"!ping", "ping", true},
		{"! ping", "ping", true},
		{"fightbot roll 2d6", "roll 2d6", true},
		{"@FightBot roll 2d6", "roll 2d6", true},
		{"brawler", "", true},
		{"<@99> ping", "ping", true},
		{"<@!99> ping", "ping", true},
		{"<@98> ping", "", false},
		{"fightbotty roll", "", false},
		{"hello there", "", false},
	}

	for _, tt := range tests {
		got, ok := Activate(tt.content, "99")
		if ok != tt.ok || got != tt.want {
			t.Errorf("Activate(%q) = %q, %v; want %q, %v", tt.content, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDispatch(t *testing.T) {
	d, h := setupDispatcher(t)
	if h.loaded != 1 {
		t.Errorf("SettingsLoaded called %d times", h.loaded)
	}
	tr := &dispatchtest.Transport{}
	ctx := context.Background()

	d.Dispatch(ctx, tr, "99", message("99", "!echo ignored"))
	d.Dispatch(ctx, tr, "99", message("1", `!echo "hello world"`))
	d.Dispatch(ctx, tr, "99", message("1", "fightbot known thing"))
	d.Dispatch(ctx, tr, "99", message("1", "!unknown"))
	d.Dispatch(ctx, tr, "99", message("1", "just chatting"))

	if diff := cmp.Diff([]string{"hello world"}, tr.Contents()); diff != "" {
		t.Errorf("replies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"known", "unknown"}, h.anything); diff != "" {
		t.Errorf("anything mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"just chatting"}, h.chatter); diff != "" {
		t.Errorf("chatter mismatch (-want +got):\n%s", diff)
	}

	embeds := tr.Embeds()
	if len(embeds) != 1 || embeds[0].Description != ":x:Command not found" {
		t.Errorf("expected one command not found embed, got %#v", embeds)
	}
}

func TestDispatchEmptyCommand(t *testing.T) {
	d, h := setupDispatcher(t)
	tr := &dispatchtest.Transport{}
	ctx := context.Background()

	for _, content := range []string{"!", "!   ", "fightbot", "brawler", "<@99>"} {
		d.Dispatch(ctx, tr, "99", message("1", content))
	}

	if len(tr.Sent) != 0 {
		t.Errorf("expected no replies, got %#v", tr.Sent)
	}
	if len(h.anything) != 0 || len(h.chatter) != 0 {
		t.Errorf("expected no handler calls, got anything %q chatter %q", h.anything, h.chatter)
	}

	d.Dispatch(ctx, tr, "99", message("1", `!echo bad"quote`))
	if embeds := tr.Embeds(); len(embeds) != 1 {
		t.Errorf("expected malformed input to be reported, got %#v", tr.Sent)
	}
}

func TestMessageCaller(t *testing.T) {
	tr := &dispatchtest.Transport{Permissions: discordgo.PermissionAdministrator}
	m := &Message{Message: message("1", "x"), Transport: tr}

	if m.AuthorID() != "1" || m.GuildID() != "guild" {
		t.Errorf("unexpected caller identity %q %q", m.AuthorID(), m.GuildID())
	}
	if m.ChannelPermissions() != discordgo.PermissionAdministrator {
		t.Errorf("unexpected permissions %d", m.ChannelPermissions())
	}

	<-m.ReplyToSender("secret %d", 42)
	want := []dispatchtest.Sent{{ChannelID: "dm-1", Content: "secret 42"}}
	if diff := cmp.Diff(want, tr.Sent); diff != "" {
		t.Errorf("dm mismatch (-want +got):\n%s", diff)
	}

	pm := &Message{Message: message("1", "x"), Transport: tr, IsPM: true}
	if pm.ChannelPermissions() != 0 {
		t.Errorf("private messages carry no channel permissions")
	}
}
