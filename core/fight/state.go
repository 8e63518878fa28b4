// Package fight runs a turn based fight between this bot and another bot in a channel,
// refereed by a third bot.
package fight

type State interface {
	isFightState()
}

// AwaitingOwnAction: the next message received makes this fighter act.
type AwaitingOwnAction struct{}

func (AwaitingOwnAction) isFightState() {}

// AwaitingOpponentReaction: this fighter acted and waits for the opponent to react.
type AwaitingOpponentReaction struct{}

func (AwaitingOpponentReaction) isFightState() {}

// AwaitingOpponentAction: the opponent acts next and this fighter reacts.
type AwaitingOpponentAction struct{}

func (AwaitingOpponentAction) isFightState() {}

type Finished struct {
	Outcome Outcome
}

func (Finished) isFightState() {}

type Outcome int

const (
	Ongoing Outcome = iota
	Victory
	Defeat
	Exhausted
)

var outcomeStrings = map[Outcome]string{
	Ongoing:   "ongoing",
	Victory:   "victory",
	Defeat:    "defeat",
	Exhausted: "exhausted",
}

func (o Outcome) String() string {
	return outcomeStrings[o]
}

type Action int

const (
	Attack Action = iota
	Defend
)

var actionStrings = map[Action]string{
	Attack: ":crossed_swords: attack :crossed_swords:",
	Defend: ":shield: defend :shield:",
}

func (a Action) String() string {
	return actionStrings[a]
}

type Recipient int

const (
	Channel Recipient = iota
	Opponent
	Referee
)

// Message is one line to post in the fight channel. Opponent and referee messages
// are already addressed ("fightbot fight ...", "refbot bow ...").
type Message struct {
	To   Recipient
	Text string
}

// Output is everything a step of the fight wants said, in order.
type Output struct {
	Messages []Message
	Outcome  Outcome
}

func (o *Output) say(lines ...string) {
	for _, line := range lines {
		if line != "" {
			o.Messages = append(o.Messages, Message{Channel, line})
		}
	}
}

// Lines returns the text of every message in order.
func (o Output) Lines() []string {
	lines := make([]string, 0, len(o.Messages))
	for _, m := range o.Messages {
		lines = append(lines, m.Text)
	}
	return lines
}
