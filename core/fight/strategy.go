package fight

import (
	"math/rand/v2"
	"strings"
)

// Status is what a strategy gets to see of its fighter.
type Status struct {
	Name      string
	Opponent  string
	Health    int
	Endurance int
	Defending bool
}

// Strategy decides what a fighter says and does. Empty strings and nil slices mean
// nothing is said.
type Strategy interface {
	// PreAction is announced before this fighter acts.
	PreAction(s Status) []string
	Action(s Status) Action
	// ReadReaction answers the opponent's reaction to this fighter's action.
	ReadReaction(s Status, reaction string) string
	// ProcessOpponentAction comments on what the opponent did.
	ProcessOpponentAction(s Status, action string) string
	OnVictory(s Status) []string
	OnLoss(s Status) []string
	OnTimeout(s Status) []string
}

// DefaultStrategy attacks or defends at random.
type DefaultStrategy struct {
	Rand *rand.Rand
}

func (d DefaultStrategy) PreAction(Status) []string { return nil }

func (d DefaultStrategy) Action(Status) Action {
	if d.Rand != nil {
		return Action(d.Rand.IntN(2))
	}
	return Action(rand.IntN(2))
}

func (d DefaultStrategy) ReadReaction(s Status, reaction string) string {
	if strings.Contains(reaction, s.Opponent+" blocks") {
		return s.Name + " staggers back"
	}
	return ""
}

func (d DefaultStrategy) ProcessOpponentAction(_ Status, action string) string {
	switch {
	case strings.Contains(action, "defend"):
		return "_searches your defence_"
	case strings.Contains(action, "attack"):
		return "_attempts to counter_"
	}
	return ""
}

func (d DefaultStrategy) OnVictory(s Status) []string {
	return []string{"Victory is mine", "void sacrifice " + s.Opponent}
}

func (d DefaultStrategy) OnLoss(Status) []string { return []string{"I have failed"} }

func (d DefaultStrategy) OnTimeout(Status) []string { return []string{"I can't go on"} }
