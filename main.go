package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"Discordbot/core"
	"Discordbot/core/database"
	"Discordbot/core/dispatch"
	"Discordbot/core/dispatch/handlers"

	"github.com/bwmarrin/discordgo"
)

// Variables used for command line parameters
var (
	settingsFile string
)

func init() {
	flag.StringVar(&settingsFile, "c", "config-dev.json", "Configuration path")
	flag.Parse()
}

func main() {
	core.LoadSettings(settingsFile)
	database.InitializeDatabase()
	defer database.Close()
	if err := dispatch.SettingsLoaded(); err != nil {
		core.LogFatal("error building commands, ", err)
	}

	// Create a new Discord session using the provided bot token.
	dg, err := discordgo.New("Bot " + core.Settings.AuthToken())
	if err != nil {
		core.LogFatal("error creating Discord session,", err)
		return
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	// Register handlers
	dg.AddHandler(messageCreate)
	dg.AddHandler(messageUpdate)
	dg.AddHandler(guildMemberAdd)

	// Open a websocket connection to Discord and begin listening.
	err = dg.Open()
	if err != nil {
		core.LogFatal("error opening connection,", err)
		return
	}

	defer dg.Close()

	// Wait here until CTRL-C or other term signal is received.
	core.LogInfoF("%s is now running.  Press CTRL-C to exit.", core.Settings.BotName())
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}

// This function will be called (due to AddHandler above) every time a new
// message is created on any channel that the autenticated bot has access to.
func messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	go dispatch.Dispatch(s, s.State.User.ID, m.Message)
}

func messageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	// Embed-only updates carry no author
	if m.Author == nil {
		return
	}
	go dispatch.Dispatch(s, s.State.User.ID, m.Message)
}

func guildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	go handlers.Welcome(s, m.Member)
}
