package domain

// Color identifies one of the four resource/stock colors.
type Color string

const (
	Blue   Color = "Blue"
	Orange Color = "Orange"
	Yellow Color = "Yellow"
	Purple Color = "Purple"
)

// ColorHidden is the marker substituted for an opponent's card color in
// player-scoped views. It is never a legal card color.
const ColorHidden Color = "hidden"

// Colors returns the fixed color set in canonical order.
func Colors() []Color {
	return []Color{Blue, Orange, Yellow, Purple}
}

// ValidColor reports whether c is one of the four playable colors.
func ValidColor(c Color) bool {
	switch c {
	case Blue, Orange, Yellow, Purple:
		return true
	}
	return false
}

// ResourceCard is a single colored resource card. A card lives in exactly one
// place at a time: a draw pile, a discard pile, or one player's hand.
type ResourceCard struct {
	ID    string
	Color Color
}

// GoalRequirement is the collection condition printed on a goal card. Either
// Require is non-empty ("at least N of color" per entry) or Avoid is set
// ("none of color"), never both.
type GoalRequirement struct {
	Require map[Color]int
	Avoid   Color
}

// MetBy reports whether a hand satisfies the requirement.
func (r GoalRequirement) MetBy(hand []ResourceCard) bool {
	counts := CountColors(hand)
	if r.Avoid != "" {
		return counts[r.Avoid] == 0
	}
	for color, need := range r.Require {
		if counts[color] < need {
			return false
		}
	}
	return true
}

// CountColors tallies cards per color.
func CountColors(cards []ResourceCard) map[Color]int {
	counts := make(map[Color]int, len(Colors()))
	for _, c := range cards {
		counts[c.Color]++
	}
	return counts
}

// GoalCard is a private objective card: a market effect applied on reveal, a
// hand requirement, and a reward granted when the requirement is met. Text
// fields are opaque display strings; the parsed facets are authoritative.
type GoalCard struct {
	ID          string
	Text        string
	StockText   string
	Effect      map[Color]int
	Requirement GoalRequirement
	Reward      Reward
	Revealed    bool
}

// Reward is the closed set of goal card reward kinds. Adding a kind requires
// updating every dispatch site (the compiler flags missing marker methods,
// the engines' type switches return errors for unhandled kinds).
type Reward interface {
	isReward()
	// NeedsChoice reports whether executing the reward requires
	// player-supplied input (a target, a card, a placement, ...).
	NeedsChoice() bool
}

// RewardGainCash pays the owner a fixed amount.
type RewardGainCash struct {
	Amount int
}

// RewardSellBonus adds a per-card bonus to everything the owner sells this
// round.
type RewardSellBonus struct {
	Amount int
}

// RewardInspectHand privately shows the owner a chosen player's hand.
type RewardInspectHand struct{}

// RewardStealCash transfers up to Amount from a chosen player.
type RewardStealCash struct {
	Amount int
}

// RewardPeekPlace shows the owner the top card of the draw pile, then places
// it on top or bottom at the owner's choice.
type RewardPeekPlace struct{}

// RewardSwapDeck exchanges one card from the owner's hand with the top card
// of the draw pile.
type RewardSwapDeck struct{}

// RewardRearrangeTop shows the owner the top Count cards and lets them set a
// new order.
type RewardRearrangeTop struct {
	Count int
}

// RewardAdjustPrice moves one stock price by +1 or -1 at the owner's choice.
type RewardAdjustPrice struct{}

// RewardBuyStock lets the owner buy one card of a chosen color from the draw
// pile at the market price minus Discount. When LowestOnly is set the color
// must be among the lowest-priced.
type RewardBuyStock struct {
	Discount   int
	LowestOnly bool
}

// RewardGainCheapest grants a free card of a chosen lowest-priced color.
type RewardGainCheapest struct{}

// RewardTakeGive takes a random card from a chosen player and gives them one
// of the owner's choosing in return.
type RewardTakeGive struct{}

func (RewardGainCash) isReward()     {}
func (RewardSellBonus) isReward()    {}
func (RewardInspectHand) isReward()  {}
func (RewardStealCash) isReward()    {}
func (RewardPeekPlace) isReward()    {}
func (RewardSwapDeck) isReward()     {}
func (RewardRearrangeTop) isReward() {}
func (RewardAdjustPrice) isReward()  {}
func (RewardBuyStock) isReward()     {}
func (RewardGainCheapest) isReward() {}
func (RewardTakeGive) isReward()     {}

func (RewardGainCash) NeedsChoice() bool     { return false }
func (RewardSellBonus) NeedsChoice() bool    { return false }
func (RewardInspectHand) NeedsChoice() bool  { return true }
func (RewardStealCash) NeedsChoice() bool    { return true }
func (RewardPeekPlace) NeedsChoice() bool    { return true }
func (RewardSwapDeck) NeedsChoice() bool     { return true }
func (RewardRearrangeTop) NeedsChoice() bool { return true }
func (RewardAdjustPrice) NeedsChoice() bool  { return true }
func (RewardBuyStock) NeedsChoice() bool     { return true }
func (RewardGainCheapest) NeedsChoice() bool { return true }
func (RewardTakeGive) NeedsChoice() bool     { return true }

// Placement is where a peeked card goes back into the draw pile.
type Placement string

const (
	PlaceTop    Placement = "top"
	PlaceBottom Placement = "bottom"
)

// RewardChoice carries the player-supplied parameters for a pending reward.
// Only the fields relevant to the reward kind are read; Decline forfeits any
// pending reward outright.
type RewardChoice struct {
	Decline   bool
	Target    string
	Color     Color
	Delta     int
	CardID    string
	Placement Placement
	Order     []string
}
