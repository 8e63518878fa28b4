package handlers

import (
	"context"
	"fmt"
	"strings"

	"Discordbot/core"
	"Discordbot/core/cli"
	"Discordbot/core/database"
	"Discordbot/core/dispatch"
	"github.com/thoas/go-funk"
)

type custom struct {
	dispatch.NoOpMessageHandler
}

const (
	AddCommand         = "addcmd"
	RemoveCommand      = "rmcmd"
	EditCommand        = "editcmd"
	SetHelpText        = "sethelp"
	SetLongHelpText    = "setlonghelp"
	AddToCategory      = "addtocat"
	RemoveFromCategory = "rmfromcat"
	DeleteCategory     = "delcat"
	ListCommands       = "listcmds"
)

func (*custom) CommandGroup() string {
	return "Custom Command Management"
}

func init() {
	dispatch.Register(&custom{})
}

var manageCommands = cli.Or(dispatch.OwnerPermission, cli.ManageMessages)

func (*custom) RegisterCommands(sys *cli.System) error {
	type argument struct{ name, description string }
	commands := []struct {
		name, help string
		fn         cli.Func
		args       []argument
	}{
		{AddCommand, "Add new command", addCommand,
			[]argument{{"command", "name of the new command"}, {"text", "what the command replies"}}},
		{RemoveCommand, "Remove existing command", removeCommand,
			[]argument{{"command", "command to remove"}}},
		{EditCommand, "Replace text for existing command", editCommand,
			[]argument{{"command", "command to edit"}, {"text", "the new reply"}}},
		{SetHelpText, "Set (or remove) a help string for an existing command or category", setHelpText,
			[]argument{{"command", "command or category"}}},
		{SetLongHelpText, "Set (or remove) the detailed help shown with -h for an existing command", setLongHelpText,
			[]argument{{"command", "command to describe"}}},
		{AddToCategory, "Add an existing command to a category. Category will be created if it doesn't exist", addToCategory,
			[]argument{{"category", "category name"}, {"command", "command to add"}}},
		{RemoveFromCategory, "Remove a command from a category", removeFromCategory,
			[]argument{{"category", "category name"}, {"command", "command to remove"}}},
		{DeleteCategory, "Delete an existing category. Commands in the category will not be removed", deleteCategory,
			[]argument{{"category", "category to delete"}}},
	}

	for _, c := range commands {
		cmd, err := sys.Command(c.name, c.help, c.fn)
		if err != nil {
			return err
		}
		for _, arg := range c.args {
			if err := cmd.Arguments().String(arg.name, arg.description, cli.Range[int]{}); err != nil {
				return err
			}
		}
		if err := cmd.Permission(manageCommands); err != nil {
			return err
		}
		switch c.name {
		case SetHelpText, SetLongHelpText:
			if err := cmd.Options().String(cli.Flag{Name: "text", Description: "the help text, omit to remove it", Letter: "t", Word: "text"}, cli.Range[int]{}); err != nil {
				return err
			}
		}
		if c.name == SetLongHelpText {
			if err := cmd.Tag(cli.Flag{Name: "pm", Description: "send the detailed help in a private message", Letter: "p", Word: "pm"}); err != nil {
				return err
			}
		}
	}

	list, err := sys.Command(ListCommands, "List existing custom commands and categories", listCommands)
	if err != nil {
		return err
	}
	return list.Tag(cli.Flag{Name: "here", Description: "reply in the channel instead of a private message", Word: "here"})
}

func addCommand(ctx context.Context, caller cli.Caller, p cli.Params) error {
	name := strings.ToLower(p.String("command"))
	prefix := core.Settings.CommandPrefix()
	if _, _, err := dispatch.Dispatcher.System().Lookup(ctx, caller, name); !cli.IsKind(err, cli.CommandNotFoundError) {
		return caller.Reply(fmt.Sprintf("**%s%s** is a built in command.", prefix, name))
	}
	if database.FetchCommandGroup(name) != nil {
		return caller.Reply(fmt.Sprintf("**%s%s** is a category.", prefix, name))
	}
	if !database.AddCommandAlias(name, p.String("text")) {
		return caller.Reply(fmt.Sprintf("Command **%s%s** already exists.", prefix, name))
	}
	return caller.Reply(fmt.Sprintf("Added command **%s%s**.", prefix, name))
}

func removeCommand(_ context.Context, caller cli.Caller, p cli.Params) error {
	name := strings.ToLower(p.String("command"))
	if !database.RemoveCommandAlias(name) {
		return caller.Reply(fmt.Sprintf("No such command: %s", name))
	}
	return caller.Reply(fmt.Sprintf("Removed command **%s%s**.", core.Settings.CommandPrefix(), name))
}

func editCommand(_ context.Context, caller cli.Caller, p cli.Params) error {
	name := strings.ToLower(p.String("command"))
	if !database.EditCommandAlias(name, p.String("text")) {
		return caller.Reply(fmt.Sprintf("No such command: %s", name))
	}
	return caller.Reply(fmt.Sprintf("Updated command **%s%s**.", core.Settings.CommandPrefix(), name))
}

func setHelpText(_ context.Context, caller cli.Caller, p cli.Params) error {
	name := strings.ToLower(p.String("command"))
	var text *string
	if p.IsSet("text") {
		t := p.String("text")
		text = &t
	}
	if !database.SetHelp(name, text) {
		return caller.Reply(fmt.Sprintf("No such command or category: %s", name))
	}
	if text == nil {
		return caller.Reply(fmt.Sprintf("Removed help text for **%s**.", name))
	}
	return caller.Reply(fmt.Sprintf("Set help text for **%s**.", name))
}

func setLongHelpText(_ context.Context, caller cli.Caller, p cli.Params) error {
	name := strings.ToLower(p.String("command"))
	var text *string
	if p.IsSet("text") {
		t := p.String("text")
		text = &t
	}
	if !database.SetLongHelp(name, text, p.Bool("pm")) {
		return caller.Reply(fmt.Sprintf("No such command: %s", name))
	}
	if text == nil {
		return caller.Reply(fmt.Sprintf("Removed long help for **%s**.", name))
	}
	return caller.Reply(fmt.Sprintf("Set long help for **%s**.", name))
}

func addToCategory(_ context.Context, caller cli.Caller, p cli.Params) error {
	category, name := strings.ToLower(p.String("category")), strings.ToLower(p.String("command"))
	if database.FetchCommandAlias(category) != nil {
		return caller.Reply(fmt.Sprintf("**%s** is a command, not a category.", category))
	}
	if !database.AddToCategory(category, name) {
		return caller.Reply(fmt.Sprintf("No such command: %s", name))
	}
	return caller.Reply(fmt.Sprintf("Added **%s** to category **%s**.", name, category))
}

func removeFromCategory(_ context.Context, caller cli.Caller, p cli.Params) error {
	category, name := strings.ToLower(p.String("category")), strings.ToLower(p.String("command"))
	if !database.RemoveFromCategory(category, name) {
		return caller.Reply(fmt.Sprintf("**%s** is not in category **%s**.", name, category))
	}
	return caller.Reply(fmt.Sprintf("Removed **%s** from category **%s**.", name, category))
}

func deleteCategory(_ context.Context, caller cli.Caller, p cli.Params) error {
	category := strings.ToLower(p.String("category"))
	if !database.DeleteCategory(category) {
		return caller.Reply(fmt.Sprintf("No such category: %s", category))
	}
	return caller.Reply(fmt.Sprintf("Deleted category **%s**.", category))
}

func listCommands(_ context.Context, caller cli.Caller, p cli.Params) error {
	var output []string
	prefix := core.Settings.CommandPrefix()
	if groups := database.FetchCommandGroups(); len(groups) > 0 {
		output = append(output, "**Commands by Category**:\n\t")
		groups := funk.Map(groups, func(group database.CommandGroup) string {
			cmdString := "No commands in category."
			if cmds := group.FetchCommands(); len(cmds) > 0 {
				cmdString = strings.Join(funk.Map(cmds, func(cmd database.CommandAlias) string { return cmd.Command }).([]string), ", ")
			}
			return fmt.Sprintf(" **%s%s:**\n\t%s", prefix, group.Command, cmdString)
		}).([]string)
		output = append(output, strings.Join(groups, "\n"))
	} else {
		output = append(output, "**Categories:** \n\tNone found")
	}
	if fetchedCommands := database.FetchStandaloneCommands(); len(fetchedCommands) > 0 {
		output = append(output, fmt.Sprint("\n**Uncategorised Commands:**\n\t",
			strings.Join(funk.Map(fetchedCommands, func(cmd database.CommandAlias) string {
				return cmd.Command
			}).([]string), ", ")))
	} else {
		output = append(output, "\n**Uncategorised Commands:**\n\tNone found")
	}

	outputString := strings.Join(output, "\n")
	m, ok := dispatch.MessageOf(caller)
	if p.Bool("here") || !ok {
		return caller.Reply(outputString)
	}
	<-m.ReplyToSender("%s", outputString)
	return nil
}

// HandleAnything answers custom commands and category listings.
func (*custom) HandleAnything(m *dispatch.Message) bool {
	if cmd := database.FetchCommandAlias(m.Command); cmd != nil {
		handleCommandAlias(cmd, m)
		return true
	}

	if grp := database.FetchCommandGroup(m.Command); grp != nil {
		handleCommandGroup(grp, m)
		return true
	}
	return false
}

func handleCommandGroup(grp *database.CommandGroup, m *dispatch.Message) {
	var output []string
	output = append(output, fmt.Sprint("**Category ", grp.Command, "**: "))
	if grp.Help != nil && len(*grp.Help) > 0 {
		output[0] += *grp.Help
	}
	if sortedCommands := grp.FetchCommands(); sortedCommands != nil {
		for _, command := range sortedCommands {
			var cmdline = fmt.Sprintf("\t**%s%s**", core.Settings.CommandPrefix(), command.Command)
			if command.Help != nil && len(*command.Help) > 0 {
				cmdline = fmt.Sprint(cmdline, ": ", *command.Help)
			}
			output = append(output, cmdline)
		}
	}
	m.ReplyToChannel("%s", strings.Join(output, "\n"))
}

func wantsHelp(args []string) bool {
	return funk.ContainsString(args, "-h") || funk.ContainsString(args, "--help")
}

func handleCommandAlias(cmd *database.CommandAlias, m *dispatch.Message) {
	if !wantsHelp(m.Args) {
		m.ReplyToChannel("%s", cmd.Value)
		return
	}
	if cmd.Help == nil || len(*cmd.Help) == 0 {
		m.ReplyToChannel("**%s%s**: No help available.", core.Settings.CommandPrefix(), cmd.Command)
		return
	}
	var helpMessage = fmt.Sprintf("**%s%s**: %s", core.Settings.CommandPrefix(), cmd.Command, *cmd.Help)
	if cmd.Longhelp != nil && len(*cmd.Longhelp) > 0 {
		longHelpMessage := fmt.Sprint(helpMessage, "\n\n", *cmd.Longhelp)
		if cmd.PMEnabled {
			<-m.ReplyToSender("%s", longHelpMessage)
			if m.IsPM {
				// Since it's a PM, no further messages are needed.
				return
			}
			helpMessage = fmt.Sprint(helpMessage, " (see pm for details)")
		} else {
			helpMessage = longHelpMessage
		}
	}
	m.ReplyToChannel("%s", helpMessage)
}
