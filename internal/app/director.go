package app

import "stockpile/internal/domain"

// Director owns the phase sequence and round loop. After every applied
// action the facade asks it to advance; it tears down completed sub-phases,
// moves the phase or round pointer, and initializes the next engine.
type Director struct {
	bus     *Bus
	auction *AuctionEngine
	trading *TradingEngine
	goals   *GoalEngine
	sell    *SellEngine
}

// NewDirector wires the director to its four sub-engines.
func NewDirector(bus *Bus, auction *AuctionEngine, trading *TradingEngine, goals *GoalEngine, sell *SellEngine) *Director {
	return &Director{bus: bus, auction: auction, trading: trading, goals: goals, sell: sell}
}

// StartRound opens a round at the auction phase.
func (d *Director) StartRound(g *domain.Game) {
	d.transition(g, domain.PhaseAuction)
	d.auction.Begin(g)
	// A short deck can finish the auction before any bid arrives.
	d.Advance(g)
}

// Advance drives phase and round transitions for as long as the current
// sub-phase reports completion. Trading never completes implicitly, so the
// loop always terminates.
func (d *Director) Advance(g *domain.Game) {
	for {
		switch g.Phase {
		case domain.PhaseAuction:
			if !d.auction.Complete(g) {
				return
			}
			d.transition(g, domain.PhaseTrading)
			d.trading.Begin(g)
		case domain.PhaseTrading:
			if !d.trading.Complete(g) {
				return
			}
			d.transition(g, domain.PhaseGoals)
			d.goals.Begin(g)
		case domain.PhaseGoals:
			if !d.goals.Complete(g) {
				return
			}
			d.transition(g, domain.PhaseSell)
			d.sell.Begin(g)
		case domain.PhaseSell:
			if !d.sell.Complete(g) {
				return
			}
			d.finishRound(g)
			if g.Phase == domain.PhaseEnded {
				return
			}
		default:
			return
		}
	}
}

// finishRound either rotates the dealer into the next round or ends the
// game with final standings.
func (d *Director) finishRound(g *domain.Game) {
	g.PhaseState = nil
	if g.Round < g.Rules.TotalRounds {
		g.Round++
		g.DealerSeat = g.NextSeat(g.DealerSeat)
		d.transition(g, domain.PhaseAuction)
		d.auction.Begin(g)
		return
	}

	g.Round = g.Rules.TotalRounds + 1
	from := g.Phase
	g.Phase = domain.PhaseEnded
	d.bus.Publish(Event{Kind: EventPhaseChanged, Payload: PhaseChangedPayload{From: from, To: domain.PhaseEnded, Round: g.Rules.TotalRounds}})
	d.bus.Publish(Event{Kind: EventGameEnded, Payload: GameEndedPayload{Standings: g.Standings()}})
}

// transition clears the outgoing sub-phase state and announces the change.
func (d *Director) transition(g *domain.Game, to domain.Phase) {
	from := g.Phase
	g.PhaseState = nil
	g.Phase = to
	d.bus.Publish(Event{Kind: EventPhaseChanged, Payload: PhaseChangedPayload{From: from, To: to, Round: g.Round}})
}
