// Package dice parses NdM expressions and rolls them.
package dice

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

const (
	MalformedReply = "Buddy, that's not how dice work."
	OneSidedReply  = "Learning to count on your own is an opportuinty for growth."
	NoneReply      = "None. You get none. Don't be an ass."

	// rolls are listed individually below this count
	listLimit = 100
)

var ErrMalformed = errors.New("malformed dice expression")

// Dice is a parsed NdM expression.
type Dice struct {
	Count int
	Sides int
}

func (d Dice) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// Parse reads "3d6" (case insensitive). Zero and negative numbers parse fine,
// Roller.Roll decides what to do with them.
func Parse(expr string) (Dice, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(expr)), "d")
	if len(parts) != 2 {
		return Dice{}, ErrMalformed
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil {
		return Dice{}, ErrMalformed
	}
	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Dice{}, ErrMalformed
	}
	return Dice{Count: count, Sides: sides}, nil
}

type Roller struct {
	MaxCount int
	MaxSides int
	// Rand is used when set, the global source otherwise.
	Rand *rand.Rand
}

func NewRoller(maxCount, maxSides int) *Roller {
	return &Roller{MaxCount: maxCount, MaxSides: maxSides}
}

func (r *Roller) intN(n int) int {
	if r.Rand != nil {
		return r.Rand.IntN(n)
	}
	return rand.IntN(n)
}

// Throw rolls d and returns every die, each in 1..Sides.
func (r *Roller) Throw(d Dice) []int {
	results := make([]int, d.Count)
	for i := range results {
		results[i] = r.intN(d.Sides) + 1
	}
	return results
}

// Roll answers a roll request the way it is shown in chat.
func (r *Roller) Roll(expr string) string {
	d, err := Parse(expr)
	if err != nil {
		return MalformedReply
	}
	switch {
	case d.Sides == 1:
		return OneSidedReply
	case d.Count < 1 || d.Sides < 1:
		return NoneReply
	case d.Count > r.MaxCount || d.Sides > r.MaxSides:
		return fmt.Sprintf("I can't do that yet. Current max is %dd%d. Dynamic limits may come eventually.", r.MaxCount, r.MaxSides)
	}

	results := r.Throw(d)
	sum := 0
	for _, v := range results {
		sum += v
	}
	if d.Count >= listLimit {
		return fmt.Sprintf("You rolled %d. (Not showing individual rolls. %d is too high.)", sum, d.Count)
	}
	rolls := make([]string, len(results))
	for i, v := range results {
		rolls[i] = strconv.Itoa(v)
	}
	return fmt.Sprintf("You rolled %d. (%s)", sum, strings.Join(rolls, ", "))
}
