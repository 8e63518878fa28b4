package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"Discordbot/core"
	"Discordbot/core/cli"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
	"golang.org/x/time/rate"
)

// This class will parse and dispatch commands to the command system.
// It filters out messages sent by the bot itself and messages that neither start with the
// command prefix nor with one of the hot words, as defined in the config file.
type MessageDispatcher struct {
	mu       sync.RWMutex
	handlers []MessageHandler
	system   *cli.System
	groups   []CommandGroup
	pacer    *rate.Limiter
}

// CommandGroup lists the top level commands a handler added, for help output.
type CommandGroup struct {
	Name     string
	Commands []*cli.Command
}

var Dispatcher = &MessageDispatcher{}

// Register is called by handlers from their init function.
func Register(handler MessageHandler) {
	Dispatcher.Register(handler)
}

func (d *MessageDispatcher) Register(handler MessageHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, handler)
	core.LogDebugF("Registered handler %s", toName(handler))
}

// SettingsLoaded rebuilds the command system after (re)loading settings.
func SettingsLoaded() error {
	return Dispatcher.SettingsLoaded()
}

func (d *MessageDispatcher) SettingsLoaded() error {
	handlers := d.Handlers()
	funk.ForEach(handlers, func(handler MessageHandler) {
		handler.SettingsLoaded()
	})

	system, err := cli.NewSystem(core.Settings.BotName(), "Commands understood by "+core.Settings.BotName())
	if err != nil {
		return err
	}
	var groups []CommandGroup
	for _, handler := range handlers {
		before := system.CommandCount()
		if err := handler.RegisterCommands(system); err != nil {
			return fmt.Errorf("%s: %w", toName(handler), err)
		}
		added := system.Commands()[before:]
		if name := handler.CommandGroup(); name != "" && len(added) > 0 {
			groups = appendGroup(groups, name, added)
		}
	}
	if core.IsLogInfo() {
		core.LogInfoF("Registered commands: %s", strings.Join(funk.Map(system.Commands(), func(c *cli.Command) string {
			return c.Name()
		}).([]string), ", "))
	}

	delay := time.Duration(core.Settings.Fighter().SendDelayMs) * time.Millisecond
	pacer := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		pacer = rate.NewLimiter(rate.Every(delay), 1)
	}

	d.mu.Lock()
	d.system = system
	d.groups = groups
	d.pacer = pacer
	d.mu.Unlock()
	return nil
}

func appendGroup(groups []CommandGroup, name string, commands []*cli.Command) []CommandGroup {
	for i := range groups {
		if groups[i].Name == name {
			groups[i].Commands = append(groups[i].Commands, commands...)
			return groups
		}
	}
	return append(groups, CommandGroup{Name: name, Commands: commands})
}

// CommandGroups returns the help groups of the current command system.
func (d *MessageDispatcher) CommandGroups() []CommandGroup {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.groups
}

func (d *MessageDispatcher) Handlers() []MessageHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]MessageHandler(nil), d.handlers...)
}

// System returns the current command system, nil before settings are loaded.
func (d *MessageDispatcher) System() *cli.System {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.system
}

func Dispatch(t Transport, selfID string, message *discordgo.Message) {
	Dispatcher.Dispatch(context.Background(), t, selfID, message)
}

// Activate returns the command line in content when the message is addressed to the bot:
// it starts with the command prefix, a mention of the bot, or a hot word.
func Activate(content, selfID string) (string, bool) {
	if prefix := core.Settings.CommandPrefix(); prefix != "" && strings.HasPrefix(content, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(content, prefix)), true
	}

	fields := strings.SplitN(strings.TrimSpace(content), " ", 2)
	first := fields[0]
	rest := ""
	if len(fields) == 2 {
		rest = strings.TrimSpace(fields[1])
	}
	if selfID != "" && (first == "<@"+selfID+">" || first == "<@!"+selfID+">") {
		return rest, true
	}

	lowered := strings.TrimLeft(strings.ToLower(first), "@")
	if funk.ContainsString(core.Settings.HotWords(), lowered) {
		return rest, true
	}
	return "", false
}

// Parse and dispatch the message.
func (d *MessageDispatcher) Dispatch(ctx context.Context, t Transport, selfID string, message *discordgo.Message) {
	// Short-circuit if author of the message is the bot itself to avoid loops
	if message.Author == nil || message.Author.ID == selfID {
		return
	}

	core.LogDebug("Got message: ", message.Content)

	d.mu.RLock()
	system, pacer, handlers := d.system, d.pacer, d.handlers
	d.mu.RUnlock()
	if system == nil {
		core.LogWarn("Message received before the command system was built")
		return
	}

	m := &Message{Message: message, Transport: t, IsPM: message.GuildID == "", pacer: pacer}

	input, ok := Activate(message.Content, selfID)
	if !ok {
		for _, handler := range handlers {
			if handler.HandleChatter(m) {
				core.LogDebugF("   => chatter handled by %s", toName(handler))
				return
			}
		}
		return
	}

	m.Input = input
	tokens, err := cli.Split(input)
	if err == nil && len(tokens) == 0 {
		core.LogDebugF("Ignoring empty command from %s", m.AuthorID())
		return
	}
	if len(tokens) > 0 {
		m.Command = strings.ToLower(tokens[0])
		m.Args = tokens[1:]
	}
	core.LogDebug("Parsed command: ", m.Command, " ", m.Args)

	err = system.Execute(ctx, m, input)
	if cli.IsKind(err, cli.CommandNotFoundError) && m.Command != "" {
		for _, handler := range handlers {
			if handler.HandleAnything(m) {
				core.LogDebugF("   => handled by %s", toName(handler))
				return
			}
		}
	}
	if err = system.HandleError(ctx, m, err); err != nil {
		core.LogErrorF("Command %q failed: %s", input, err)
	}
}
