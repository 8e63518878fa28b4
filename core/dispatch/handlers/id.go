package handlers

import (
	"context"
	"fmt"
	"strings"

	"Discordbot/core/cli"
	"Discordbot/core/dispatch"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

type ident struct {
	dispatch.NoOpMessageHandler
}

func init() {
	dispatch.Register(&ident{})
}

func (*ident) CommandGroup() string {
	return "Miscellaneous"
}

func (*ident) RegisterCommands(sys *cli.System) error {
	cmd, err := sys.Command("id", "Return Discord ID for the user, or the given user", handleIdent)
	if err != nil {
		return err
	}
	return cmd.Options().UserMention(cli.Flag{Name: "user", Description: "user to identify", Word: "user"})
}

func handleIdent(_ context.Context, caller cli.Caller, p cli.Params) error {
	m, ok := dispatch.MessageOf(caller)
	if !ok {
		return caller.Reply(fmt.Sprintf("Identities:\n\tyou have id %s", caller.AuthorID()))
	}

	var identities []string
	addUser := func(user *discordgo.User) {
		identities = append(identities, fmt.Sprintf("%v has id %s", user.Username, user.ID))
	}
	if !p.IsSet("user") {
		addUser(m.Author)
	} else {
		id := p.String("user")
		mentioned := funk.Filter(m.Mentions, func(user *discordgo.User) bool { return user.ID == id }).([]*discordgo.User)
		if len(mentioned) == 0 {
			mentioned = []*discordgo.User{{ID: id, Username: "<@" + id + ">"}}
		}
		funk.ForEach(mentioned, addUser)
	}
	return m.Reply(fmt.Sprintf("Identities:\n\t%s", strings.Join(identities, "\n\t")))
}
