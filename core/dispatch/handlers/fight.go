package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"Discordbot/core"
	"Discordbot/core/cli"
	"Discordbot/core/database"
	"Discordbot/core/dispatch"
	"Discordbot/core/fight"
)

type fighter struct {
	dispatch.NoOpMessageHandler
	mu      sync.RWMutex
	manager *fight.Manager
}

var fightResults = map[fight.Outcome]database.FightResult{
	fight.Victory:   database.FightWon,
	fight.Defeat:    database.FightLost,
	fight.Exhausted: database.FightExhausted,
}

func init() {
	dispatch.Register(&fighter{})
}

func (*fighter) CommandGroup() string {
	return "Games"
}

// SettingsLoaded starts a fresh fight manager, dropping any fight in progress.
func (f *fighter) SettingsLoaded() {
	cfg := core.Settings.Fighter()
	manager := fight.NewManager(fight.Config{
		Name:      core.Settings.BotName(),
		Referee:   core.Settings.Referee(),
		Health:    cfg.Health,
		Endurance: cfg.Endurance,
	}, nil)
	f.mu.Lock()
	f.manager = manager
	f.mu.Unlock()
}

func (f *fighter) fights() *fight.Manager {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.manager
}

func (f *fighter) RegisterCommands(sys *cli.System) error {
	initFight, err := sys.Command("init_fight", "Start a fight against another bot in this channel", f.handleInit)
	if err != nil {
		return err
	}
	if err := initFight.Arguments().String("opponent", "name the opponent answers to", cli.Range[int]{}); err != nil {
		return err
	}
	if err := initFight.Tag(cli.Flag{Name: "advantage", Description: "act first", Word: "advantage"}); err != nil {
		return err
	}

	move, err := sys.Command("fight", "Pass a move of the opponent to the fight in this channel", f.handleFight)
	if err != nil {
		return err
	}
	if err := move.Arguments().Raw("data", "the opponent's move as written"); err != nil {
		return err
	}

	if _, err := sys.Command("wins", "Declare this bot the winner of the fight in this channel", f.handleWins); err != nil {
		return err
	}

	record, err := sys.Command("record", "Show the fight record against an opponent", handleRecord)
	if err != nil {
		return err
	}
	return record.Arguments().String("opponent", "name of the opponent", cli.Range[int]{})
}

func channelOf(caller cli.Caller) string {
	if m, ok := dispatch.MessageOf(caller); ok {
		return m.ChannelID
	}
	return ""
}

func (f *fighter) handleInit(ctx context.Context, caller cli.Caller, p cli.Params) error {
	opponent := p.String("opponent")
	out, err := f.fights().Start(channelOf(caller), opponent, p.Bool("advantage"))
	if errors.Is(err, fight.ErrInProgress) {
		return caller.Reply("I'm already fighting here.")
	}
	if err != nil {
		return err
	}
	core.LogInfoF("Fight against %s started in %s", opponent, channelOf(caller))
	return f.report(ctx, caller, opponent, out)
}

func (f *fighter) handleFight(ctx context.Context, caller cli.Caller, p cli.Params) error {
	manager := f.fights()
	channel := channelOf(caller)
	opponent, _ := manager.Opponent(channel)
	out, err := manager.Advance(channel, p.String("data"))
	return f.stepped(ctx, caller, opponent, out, err)
}

func (f *fighter) handleWins(ctx context.Context, caller cli.Caller, _ cli.Params) error {
	manager := f.fights()
	channel := channelOf(caller)
	opponent, _ := manager.Opponent(channel)
	out, err := manager.Victory(channel)
	return f.stepped(ctx, caller, opponent, out, err)
}

func (f *fighter) stepped(ctx context.Context, caller cli.Caller, opponent string, out fight.Output, err error) error {
	switch {
	case errors.Is(err, fight.ErrNoFight), errors.Is(err, fight.ErrFinished):
		core.LogDebugF("Ignoring fight message in %s: %s", channelOf(caller), err)
		return nil
	case err != nil:
		return err
	}
	return f.report(ctx, caller, opponent, out)
}

func (f *fighter) report(ctx context.Context, caller cli.Caller, opponent string, out fight.Output) error {
	if result, ok := fightResults[out.Outcome]; ok {
		core.LogInfoF("Fight against %s ended: %s", opponent, out.Outcome)
		database.RecordFight(strings.ToLower(opponent), result, time.Now().Unix())
	}
	if m, ok := dispatch.MessageOf(caller); ok {
		return m.ReplyPaced(ctx, out.Lines()...)
	}
	for _, line := range out.Lines() {
		if err := caller.Reply(line); err != nil {
			return err
		}
	}
	return nil
}

func handleRecord(_ context.Context, caller cli.Caller, p cli.Params) error {
	opponent := strings.ToLower(p.String("opponent"))
	record := database.FetchFightRecord(opponent)
	if record == nil {
		return caller.Reply(fmt.Sprintf("No fights against %s yet.", opponent))
	}
	return caller.Reply(fmt.Sprintf("Against %s: %d wins, %d losses, %d exhaustions",
		opponent, record.Wins, record.Losses, record.Exhaustions))
}
