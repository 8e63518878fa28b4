package handlers

import (
	"context"
	"sync"

	"Discordbot/core"
	"Discordbot/core/cli"
	"Discordbot/core/dice"
	"Discordbot/core/dispatch"
)

type diceRoller struct {
	dispatch.NoOpMessageHandler
	mu     sync.RWMutex
	roller *dice.Roller
}

func init() {
	dispatch.Register(&diceRoller{})
}

func (*diceRoller) CommandGroup() string {
	return "Games"
}

func (d *diceRoller) SettingsLoaded() {
	cfg := core.Settings.Dice()
	d.mu.Lock()
	d.roller = dice.NewRoller(cfg.MaxCount, cfg.MaxSides)
	d.mu.Unlock()
}

func (d *diceRoller) RegisterCommands(sys *cli.System) error {
	roll, err := sys.Command("roll", "Roll dice, e.g. 3d6", d.handleRoll)
	if err != nil {
		return err
	}
	return roll.Arguments().String("dice", "dice to roll as <count>d<sides>", cli.Range[int]{})
}

func (d *diceRoller) handleRoll(_ context.Context, caller cli.Caller, p cli.Params) error {
	d.mu.RLock()
	roller := d.roller
	d.mu.RUnlock()
	return caller.Reply(roller.Roll(p.String("dice")))
}
