package domain

import "sort"

// Phase represents one stage of a round. The empty value means the game has
// not started yet.
type Phase string

const (
	// PhaseAuction is the open-outcry bidding stage.
	PhaseAuction Phase = "auction"
	// PhaseTrading is the free-form simultaneous trading stage.
	PhaseTrading Phase = "trading"
	// PhaseGoals is the sequential goal-reveal stage.
	PhaseGoals Phase = "goals"
	// PhaseSell is the simultaneous sell stage.
	PhaseSell Phase = "sell"
	// PhaseEnded indicates the game has concluded.
	PhaseEnded Phase = "ended"
)

// PhaseOrder is the fixed sequence of phases within a round.
var PhaseOrder = []Phase{PhaseAuction, PhaseTrading, PhaseGoals, PhaseSell}

// Player holds the state for one participant.
type Player struct {
	ID          string
	DisplayName string
	Seat        int // 0-based seat index into Game.Order
	Cash        int
	Hand        []ResourceCard
	Goals       []*GoalCard
	// SellBonus is the per-card bonus applied to this round's sells, reset
	// to zero once spent.
	SellBonus int
}

// CardByID returns the hand card with the given id.
func (p *Player) CardByID(id string) (ResourceCard, bool) {
	for _, card := range p.Hand {
		if card.ID == id {
			return card, true
		}
	}
	return ResourceCard{}, false
}

// HasCards reports whether every id is present in the hand.
func (p *Player) HasCards(ids []string) bool {
	for _, id := range ids {
		if _, ok := p.CardByID(id); !ok {
			return false
		}
	}
	return true
}

// RemoveCard removes the hand card with the given id and returns it.
func (p *Player) RemoveCard(id string) (ResourceCard, bool) {
	for i, card := range p.Hand {
		if card.ID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return card, true
		}
	}
	return ResourceCard{}, false
}

// GoalByID returns the player's goal card with the given id.
func (p *Player) GoalByID(id string) (*GoalCard, bool) {
	for _, goal := range p.Goals {
		if goal.ID == id {
			return goal, true
		}
	}
	return nil, false
}

// UnrevealedGoals counts goal cards not yet revealed.
func (p *Player) UnrevealedGoals() int {
	n := 0
	for _, goal := range p.Goals {
		if !goal.Revealed {
			n++
		}
	}
	return n
}

// Rules carries the fixed numeric configuration a game was set up with.
type Rules struct {
	StartingCash    int
	HandSize        int
	TotalRounds     int
	StartPrice      int
	PriceFloor      int
	PriceCeiling    int // NoCeiling disables the upper bound
	CardsPerColor   int
	AuctionOverdraw int // cards auctioned = players + AuctionOverdraw
	GoalsPerPlayer  int
}

// DefaultRules are the table rules of the physical game.
func DefaultRules() Rules {
	return Rules{
		StartingCash:    10,
		HandSize:        3,
		TotalRounds:     5,
		StartPrice:      4,
		PriceFloor:      0,
		PriceCeiling:    NoCeiling,
		CardsPerColor:   12,
		AuctionOverdraw: 2,
		GoalsPerPlayer:  4,
	}
}

// ActionRecord is one entry in the append-only action history.
type ActionRecord struct {
	Kind   string
	Player string
	Round  int
	Phase  Phase
}

// Game is the single mutable aggregate for one table. Engines receive it
// explicitly; nothing reaches it through ambient state.
type Game struct {
	Rules Rules

	Phase      Phase
	Round      int
	DealerSeat int
	Order      []string // player ids in seat order
	Players    map[string]*Player
	Prices     Prices
	Resources  *Deck
	PhaseState PhaseState
	History    []ActionRecord
}

// PhaseState is the working state of the current phase. Exactly one variant
// exists while its phase is current; the slot is nil between phases.
type PhaseState interface {
	isPhaseState()
}

// AuctionState tracks the bidding sub-phase.
type AuctionState struct {
	Queue      []ResourceCard
	Index      int
	HighBid    int
	HighBidder string
	LastRaiser string
	Active     []string // ids still bidding on the current card
	Turn       string   // id whose turn it is to bid or pass
}

func (*AuctionState) isPhaseState() {}

// Current returns the card under the hammer, nil when the queue is spent.
func (a *AuctionState) Current() *ResourceCard {
	if a.Index >= len(a.Queue) {
		return nil
	}
	return &a.Queue[a.Index]
}

// IsActive reports whether the player has not passed on the current card.
func (a *AuctionState) IsActive(playerID string) bool {
	for _, id := range a.Active {
		if id == playerID {
			return true
		}
	}
	return false
}

// OfferStatus is the lifecycle state of a trade offer.
type OfferStatus string

const (
	OfferActive    OfferStatus = "active"
	OfferAccepted  OfferStatus = "accepted"
	OfferCancelled OfferStatus = "cancelled"
)

// TradeOffer is a standing proposal: concrete cards and cash offered against
// color-counted cards and cash requested.
type TradeOffer struct {
	ID            string
	From          string
	OfferCardIDs  []string
	OfferCash     int
	RequestColors map[Color]int
	RequestCash   int
	Status        OfferStatus
}

// TradingState tracks the trading sub-phase.
type TradingState struct {
	Offers []*TradeOffer
	Ended  bool
}

func (*TradingState) isPhaseState() {}

// OfferByID returns the offer with the given id.
func (t *TradingState) OfferByID(id string) (*TradeOffer, bool) {
	for _, offer := range t.Offers {
		if offer.ID == id {
			return offer, true
		}
	}
	return nil, false
}

// PendingReward marks a reward waiting for its owner's choice. While set, the
// goal phase cannot advance.
type PendingReward struct {
	PlayerID string
	GoalID   string
}

// GoalState tracks the goal-resolution sub-phase.
type GoalState struct {
	Order   []string // reveal order for this round
	Index   int      // position of the player whose turn it is
	Pending *PendingReward
}

func (*GoalState) isPhaseState() {}

// Turn returns the id of the player due to reveal, or "" when all have gone.
func (g *GoalState) Turn() string {
	if g.Index >= len(g.Order) {
		return ""
	}
	return g.Order[g.Index]
}

// SellState tracks the simultaneous sell sub-phase.
type SellState struct {
	Selected  map[string][]string // player id -> selected card ids
	Committed map[string]bool
	Resolved  bool
}

func (*SellState) isPhaseState() {}

// NextSeat returns the seat after s, wrapping around the table.
func (g *Game) NextSeat(s int) int {
	return (s + 1) % len(g.Order)
}

// PlayerAtSeat returns the player seated at s.
func (g *Game) PlayerAtSeat(s int) *Player {
	return g.Players[g.Order[s]]
}

// TurnOrderFrom returns all player ids starting at the given seat, clockwise.
func (g *Game) TurnOrderFrom(seat int) []string {
	order := make([]string, 0, len(g.Order))
	for i := 0; i < len(g.Order); i++ {
		order = append(order, g.Order[(seat+i)%len(g.Order)])
	}
	return order
}

// Wealth is a player's cash plus portfolio value at current prices.
func (g *Game) Wealth(p *Player) int {
	return p.Cash + PortfolioValue(p.Hand, g.Prices)
}

// Standing is one row of the final ranking.
type Standing struct {
	PlayerID    string
	DisplayName string
	Cash        int
	Portfolio   int
	Wealth      int
	Rank        int
}

// Standings ranks all players by wealth, richest first. Ties share a rank and
// break by seat order for display stability.
func (g *Game) Standings() []Standing {
	out := make([]Standing, 0, len(g.Order))
	for _, id := range g.Order {
		p := g.Players[id]
		portfolio := PortfolioValue(p.Hand, g.Prices)
		out = append(out, Standing{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Cash:        p.Cash,
			Portfolio:   portfolio,
			Wealth:      p.Cash + portfolio,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Wealth > out[j].Wealth })
	for i := range out {
		if i > 0 && out[i].Wealth == out[i-1].Wealth {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
