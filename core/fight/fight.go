package fight

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// chance out of 100 of blocking an attack without defending
	luckyBlock = 5

	hitDamage     = 10
	blockedDamage = 3
)

var ErrFinished = errors.New("the fight is over")

type Config struct {
	// Name is how this fighter is addressed by its opponent and the referee.
	Name      string
	Referee   string
	Health    int
	Endurance int
	// Rand drives the lucky block roll; the global source is used when nil.
	Rand *rand.Rand
}

type Fight struct {
	cfg       Config
	opponent  string
	advantage bool
	strategy  Strategy

	state     State
	health    int
	endurance int
	defending bool
}

// New prepares a fight against opponent. With advantage this fighter acts first.
func New(cfg Config, opponent string, advantage bool, strategy Strategy) *Fight {
	if strategy == nil {
		strategy = DefaultStrategy{Rand: cfg.Rand}
	}
	return &Fight{
		cfg:       cfg,
		opponent:  opponent,
		advantage: advantage,
		strategy:  strategy,
		state:     AwaitingOpponentAction{},
		health:    cfg.Health,
		endurance: cfg.Endurance,
	}
}

func (f *Fight) State() State { return f.state }

func (f *Fight) Opponent() string { return f.opponent }

func (f *Fight) Status() Status {
	return Status{
		Name:      f.cfg.Name,
		Opponent:  f.opponent,
		Health:    f.health,
		Endurance: f.endurance,
		Defending: f.defending,
	}
}

func (f *Fight) Finished() bool {
	_, ok := f.state.(Finished)
	return ok
}

// Start opens the fight. A fighter with the advantage acts right away.
func (f *Fight) Start() Output {
	var out Output
	if f.advantage {
		f.act(&out)
		f.state = AwaitingOpponentReaction{}
		f.checkEnd(&out)
	}
	return out
}

// Advance feeds the next message addressed to this fighter into the fight.
func (f *Fight) Advance(input string) (Output, error) {
	var out Output
	switch f.state.(type) {
	case AwaitingOwnAction:
		f.act(&out)
		f.state = AwaitingOpponentReaction{}
	case AwaitingOpponentReaction:
		f.readReaction(&out, input)
		f.state = AwaitingOpponentAction{}
	case AwaitingOpponentAction:
		f.readAction(&out, input)
		f.state = AwaitingOwnAction{}
	case Finished:
		return out, ErrFinished
	}
	f.checkEnd(&out)
	return out, nil
}

// Victory is called when the referee declares this fighter the winner.
func (f *Fight) Victory() (Output, error) {
	var out Output
	if f.Finished() {
		return out, ErrFinished
	}
	out.say(f.strategy.OnVictory(f.Status())...)
	f.finish(&out, Victory)
	return out, nil
}

func (f *Fight) act(out *Output) {
	out.say(f.strategy.PreAction(f.Status())...)
	action := f.strategy.Action(f.Status())
	f.defending = action == Defend
	f.endurance--
	f.sendOpponent(out, action.String())
}

func (f *Fight) readReaction(out *Output, reaction string) {
	if confirmation := strings.TrimSpace(f.strategy.ReadReaction(f.Status(), reaction)); confirmation != "" {
		out.say("_responds_: " + confirmation)
	}
	out.say(fmt.Sprintf(":anatomical_heart: : %d, :lungs: : %d", f.health, f.endurance))
	f.sendReferee(out, "bow "+f.opponent)
}

func (f *Fight) readAction(out *Output, action string) {
	reaction := fmt.Sprintf("_reacts_: %s holds its ground", f.cfg.Name)
	if strings.Contains(action, "attack") {
		if f.defending || f.intN(100) >= 100-luckyBlock {
			f.health -= blockedDamage
			reaction = fmt.Sprintf("_reacts_: %s blocks the attack", f.cfg.Name)
		} else {
			f.health -= hitDamage
			reaction = fmt.Sprintf("_reacts_: %s is hit by the attack", f.cfg.Name)
		}
	}
	out.say(f.strategy.ProcessOpponentAction(f.Status(), action))
	f.sendOpponent(out, reaction)
}

// checkEnd finishes the fight once health or endurance run out.
func (f *Fight) checkEnd(out *Output) {
	if f.health <= 0 {
		out.say(f.strategy.OnLoss(f.Status())...)
		f.sendReferee(out, "yield health "+f.opponent)
		f.finish(out, Defeat)
		return
	}
	if f.endurance <= 0 {
		out.say(f.strategy.OnTimeout(f.Status())...)
		f.sendReferee(out, "yield exhausted "+f.opponent)
		f.finish(out, Exhausted)
	}
}

func (f *Fight) finish(out *Output, outcome Outcome) {
	f.state = Finished{Outcome: outcome}
	out.Outcome = outcome
	f.defending = false
}

func (f *Fight) sendOpponent(out *Output, data string) {
	text := fmt.Sprintf("%s fight %s", f.opponent, data)
	out.Messages = append(out.Messages, Message{Opponent, text})
}

func (f *Fight) sendReferee(out *Output, data string) {
	out.Messages = append(out.Messages, Message{Referee, f.cfg.Referee + " " + data})
}

func (f *Fight) intN(n int) int {
	if f.cfg.Rand != nil {
		return f.cfg.Rand.IntN(n)
	}
	return rand.IntN(n)
}
