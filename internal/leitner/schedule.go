package leitner

import (
	"fmt"
	"math"
	"time"
)

// Forever is the interval of a box whose questions never become eligible
// on their own.
const Forever = time.Duration(math.MaxInt64)

// Tier is the index of a box within the manager.
type Tier int

const (
	TierMissed Tier = iota
	TierUnasked
	TierAnsweredOnce
	TierAnsweredTwice
	TierKnown
)

// NumTiers is the number of boxes a Manager owns.
const NumTiers = 5

// BoxSpec describes one box of the fixed layout.
type BoxSpec struct {
	Name     string
	Interval time.Duration
}

// Layout is the box layout indexed by Tier.
var Layout = [NumTiers]BoxSpec{
	TierMissed:        {Name: "Missed Questions", Interval: 60 * time.Second},
	TierUnasked:       {Name: "Unasked Questions", Interval: 0},
	TierAnsweredOnce:  {Name: "Correctly Answered Once", Interval: 180 * time.Second},
	TierAnsweredTwice: {Name: "Correctly Answered Twice", Interval: 360 * time.Second},
	TierKnown:         {Name: "Known Questions", Interval: Forever},
}

// ScanOrder is the order in which boxes are searched for the next question.
// Missed material comes before new material, and new material before the
// correctly answered tiers. Known Questions is never scanned.
var ScanOrder = []Tier{TierMissed, TierUnasked, TierAnsweredOnce, TierAnsweredTwice}

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return Layout[t].Name
}

// Valid reports whether t indexes a box.
func (t Tier) Valid() bool {
	return t >= 0 && t < NumTiers
}

// NextTier returns the tier a question moves to after an answer.
//
// A wrong answer always demotes to Missed Questions. A correct answer
// promotes one tier, capped at Known Questions, except that a missed
// question restarts at Correctly Answered Once.
func NextTier(from Tier, correct bool) Tier {
	if !correct {
		return TierMissed
	}
	if from == TierMissed {
		return TierAnsweredOnce
	}
	return min(from+1, TierKnown)
}
