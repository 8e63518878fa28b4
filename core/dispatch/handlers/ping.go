package handlers

import (
	"context"

	"Discordbot/core/cli"
	"Discordbot/core/dispatch"
)

type ping struct {
	dispatch.NoOpMessageHandler
}

func init() {
	dispatch.Register(&ping{})
}

func (*ping) CommandGroup() string {
	return "Miscellaneous"
}

func (*ping) RegisterCommands(sys *cli.System) error {
	for _, c := range []struct{ name, reply string }{
		{"ping", "Pong!"},
		{"pong", "Ping!"},
	} {
		reply := c.reply
		if _, err := sys.Command(c.name, "Simple command to check that bot is alive", func(_ context.Context, caller cli.Caller, _ cli.Params) error {
			return caller.Reply(reply)
		}); err != nil {
			return err
		}
	}
	return nil
}
