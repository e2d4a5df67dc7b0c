package app

import "stockpile/internal/domain"

// SellEngine runs the simultaneous sell sub-phase. Selections stay hidden
// until every player has committed; only then do all sells execute, valued at
// the same prices, so nothing a reward granted mid-round can be exploited by
// reordering.
type SellEngine struct {
	bus *Bus
}

// NewSellEngine returns an engine publishing to bus.
func NewSellEngine(bus *Bus) *SellEngine {
	return &SellEngine{bus: bus}
}

// Begin opens the sell window for every player.
func (e *SellEngine) Begin(g *domain.Game) {
	g.PhaseState = &domain.SellState{
		Selected:  make(map[string][]string),
		Committed: make(map[string]bool),
	}
	e.bus.Publish(Event{Kind: EventSellStarted})
}

// Select replaces the player's selection. Only the count is broadcast; the
// cards themselves surface in the reveal.
func (e *SellEngine) Select(g *domain.Game, playerID string, cardIDs []string) error {
	st := g.PhaseState.(*domain.SellState)
	st.Selected[playerID] = append([]string{}, cardIDs...)
	e.bus.Publish(Event{Kind: EventCardsSelected, Payload: CardsSelectedPayload{Player: playerID, Count: len(cardIDs)}})
	return nil
}

// Commit locks the player's selection. The last commit triggers the joint
// resolution.
func (e *SellEngine) Commit(g *domain.Game, playerID string) error {
	st := g.PhaseState.(*domain.SellState)
	st.Committed[playerID] = true
	e.bus.Publish(Event{Kind: EventPlayerCommitted, Payload: PlayerCommittedPayload{Player: playerID}})

	for _, id := range g.Order {
		if !st.Committed[id] {
			return nil
		}
	}
	e.bus.Publish(Event{Kind: EventAllCommitted})
	e.resolve(g, st)
	return nil
}

// Complete reports whether the joint resolution has run.
func (e *SellEngine) Complete(g *domain.Game) bool {
	st, ok := g.PhaseState.(*domain.SellState)
	return ok && st.Resolved
}

// resolve executes every committed sell at once: each card earns its market
// price plus the seller's bonus, moves to the discard pile, and the bonus
// resets.
func (e *SellEngine) resolve(g *domain.Game, st *domain.SellState) {
	results := make([]SellResult, 0, len(g.Order))
	for _, id := range g.Order {
		p := g.Players[id]
		sold := make([]domain.ResourceCard, 0, len(st.Selected[id]))
		earnings := 0
		for _, cardID := range st.Selected[id] {
			card, ok := p.RemoveCard(cardID)
			if !ok {
				continue
			}
			sold = append(sold, card)
			earnings += g.Prices[card.Color] + p.SellBonus
		}
		g.Resources.DiscardCards(sold...)
		p.SellBonus = 0
		results = append(results, SellResult{Player: id, Cards: sold, Earnings: earnings})
		if earnings > 0 {
			p.Cash += earnings
			e.bus.Publish(Event{Kind: EventCashChanged, Payload: CashChangedPayload{Player: id, Delta: earnings, Cash: p.Cash}})
		}
	}
	st.Resolved = true
	e.bus.Publish(Event{Kind: EventSellsRevealed, Payload: SellsRevealedPayload{Results: results}})
	e.bus.Publish(Event{Kind: EventSellComplete})
}
