package cli

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type fakeCaller struct {
	author string
	guild  string
	perms  int64

	replies []string
	embeds  []*discordgo.MessageEmbed
}

func (f *fakeCaller) AuthorID() string          { return f.author }
func (f *fakeCaller) GuildID() string           { return f.guild }
func (f *fakeCaller) ChannelPermissions() int64 { return f.perms }

func (f *fakeCaller) Reply(content string) error {
	f.replies = append(f.replies, content)
	return nil
}

func (f *fakeCaller) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	f.embeds = append(f.embeds, embed)
	return nil
}

func noop(context.Context, Caller, Params) error { return nil }

func ptr[T any](v T) *T { return &v }

// mustCommand wraps a Command call: mustCommand(t)(sys.Command(...)).
func mustCommand(t testing.TB) func(*Command, error) *Command {
	return func(c *Command, err error) *Command {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return c
	}
}

func errorKind(err error) string {
	if k, ok := KindOf(err); ok {
		return k.String()
	}
	return "<none>"
}
