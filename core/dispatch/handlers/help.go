package handlers

import (
	"context"
	"fmt"
	"strings"

	"Discordbot/core"
	"Discordbot/core/cli"
	"Discordbot/core/dispatch"
)

type help struct {
	dispatch.NoOpMessageHandler
}

func init() {
	dispatch.Register(&help{})
}

func (*help) CommandGroup() string {
	return "Help"
}

func (*help) RegisterCommands(sys *cli.System) error {
	if _, err := sys.Command("help", "List hot words and the commands you can use", handleHelp); err != nil {
		return err
	}

	usage, err := sys.Command("usage", "Show how to use a command", handleUsage)
	if err != nil {
		return err
	}
	if err := usage.Arguments().String("command", "the command, quoted when it has sub commands", cli.Range[int]{}); err != nil {
		return err
	}

	tree, err := sys.Command("tree", "Show the command tree", handleTree)
	if err != nil {
		return err
	}
	if err := tree.Tag(cli.Flag{Name: "details", Description: "include parameters and permissions", Word: "details"}); err != nil {
		return err
	}

	reload, err := sys.Command("reload", "Reload the settings file", handleReload)
	if err != nil {
		return err
	}
	return reload.Permission(cli.Or(dispatch.OwnerPermission, cli.Administrator))
}

func handleHelp(ctx context.Context, caller cli.Caller, _ cli.Params) error {
	prefix := core.Settings.CommandPrefix()
	lines := []string{
		fmt.Sprintf("Hot words to activate this bot: %s", strings.Join(core.Settings.HotWords(), ", ")),
		fmt.Sprintf("Command prefix: %s", prefix),
	}
	for _, group := range dispatch.Dispatcher.CommandGroups() {
		var names []string
		for _, cmd := range group.Commands {
			allowed, err := cmd.Permissions().Evaluate(ctx, caller)
			if err != nil {
				return err
			}
			if allowed {
				names = append(names, prefix+cmd.Name())
			}
		}
		if len(names) > 0 {
			lines = append(lines, fmt.Sprintf("**%s**: %s", group.Name, strings.Join(names, ", ")))
		}
	}
	return caller.Reply(strings.Join(lines, "\n"))
}

func handleUsage(ctx context.Context, caller cli.Caller, p cli.Params) error {
	sys := dispatch.Dispatcher.System()
	usage, err := sys.Usage(ctx, caller, p.String("command"))
	if err != nil {
		return err
	}
	return caller.Reply(codeBlock(usage))
}

func handleTree(_ context.Context, caller cli.Caller, p cli.Params) error {
	return caller.Reply(codeBlock(dispatch.Dispatcher.System().TreeString(p.Bool("details"))))
}

func handleReload(_ context.Context, caller cli.Caller, _ cli.Params) error {
	if err := core.ReloadSettings(); err != nil {
		core.LogErrorF("Failed to reload settings: %s", err)
		return caller.Reply("Failed to reload settings: " + err.Error())
	}
	if err := dispatch.SettingsLoaded(); err != nil {
		core.LogErrorF("Failed to rebuild commands: %s", err)
		return caller.Reply("Failed to rebuild commands: " + err.Error())
	}
	return caller.Reply("Settings reloaded.")
}

func codeBlock(s string) string {
	return "```\n" + s + "\n```"
}
