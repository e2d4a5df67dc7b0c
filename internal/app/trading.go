package app

import (
	"fmt"

	"github.com/google/uuid"

	"stockpile/internal/domain"
)

// TradingEngine runs the free-form simultaneous trading sub-phase. Offers are
// never matched automatically; any other player may take one.
type TradingEngine struct {
	bus *Bus
}

// NewTradingEngine returns an engine publishing to bus.
func NewTradingEngine(bus *Bus) *TradingEngine {
	return &TradingEngine{bus: bus}
}

// Begin opens the trading floor.
func (e *TradingEngine) Begin(g *domain.Game) {
	g.PhaseState = &domain.TradingState{}
}

// Propose appends an active offer. Holdings were checked by validation.
func (e *TradingEngine) Propose(g *domain.Game, playerID string, offerCardIDs []string, offerCash int, requestColors map[domain.Color]int, requestCash int) error {
	st := g.PhaseState.(*domain.TradingState)
	p := g.Players[playerID]

	offer := &domain.TradeOffer{
		ID:            uuid.NewString(),
		From:          playerID,
		OfferCardIDs:  append([]string{}, offerCardIDs...),
		OfferCash:     offerCash,
		RequestColors: requestColors,
		RequestCash:   requestCash,
		Status:        domain.OfferActive,
	}
	st.Offers = append(st.Offers, offer)

	offered := make([]domain.ResourceCard, 0, len(offerCardIDs))
	for _, id := range offerCardIDs {
		card, _ := p.CardByID(id)
		offered = append(offered, card)
	}
	e.bus.Publish(Event{Kind: EventTradeProposed, Payload: TradeProposedPayload{
		OfferID:       offer.ID,
		From:          playerID,
		OfferCards:    offered,
		OfferCash:     offerCash,
		RequestColors: requestColors,
		RequestCash:   requestCash,
	}})
	return nil
}

// Accept atomically executes both legs of an offer, then auto-cancels any
// other active offer either participant can no longer fulfil, so the same
// cards or cash cannot be promised twice.
func (e *TradingEngine) Accept(g *domain.Game, playerID, offerID string) error {
	st := g.PhaseState.(*domain.TradingState)
	offer, ok := st.OfferByID(offerID)
	if !ok {
		return fmt.Errorf("accepted offer %s vanished", offerID)
	}
	proposer := g.Players[offer.From]
	acceptor := g.Players[playerID]

	// Proposer leg: named cards and cash to the acceptor.
	for _, id := range offer.OfferCardIDs {
		card, ok := proposer.RemoveCard(id)
		if !ok {
			return fmt.Errorf("offered card %s missing from %s's hand", id, offer.From)
		}
		acceptor.Hand = append(acceptor.Hand, card)
	}
	// Acceptor leg: requested colors are satisfied with the first matching
	// cards in hand order.
	for _, color := range domain.Colors() {
		for n := offer.RequestColors[color]; n > 0; n-- {
			moved := false
			for _, card := range acceptor.Hand {
				if card.Color == color {
					taken, _ := acceptor.RemoveCard(card.ID)
					proposer.Hand = append(proposer.Hand, taken)
					moved = true
					break
				}
			}
			if !moved {
				return fmt.Errorf("accepted offer %s needs a %s card the acceptor no longer holds", offerID, color)
			}
		}
	}
	e.moveCash(g, offer.From, playerID, offer.OfferCash)
	e.moveCash(g, playerID, offer.From, offer.RequestCash)

	offer.Status = domain.OfferAccepted
	e.bus.Publish(Event{Kind: EventTradeAccepted, Payload: TradeAcceptedPayload{OfferID: offerID, By: playerID}})
	e.bus.Publish(Event{Kind: EventTradeCompleted, Payload: TradeCompletedPayload{OfferID: offerID, From: offer.From, To: playerID}})

	e.cancelUnfulfillable(g, st, offer.From)
	e.cancelUnfulfillable(g, st, playerID)
	return nil
}

// Cancel withdraws the player's own active offer.
func (e *TradingEngine) Cancel(g *domain.Game, playerID, offerID string) error {
	st := g.PhaseState.(*domain.TradingState)
	offer, ok := st.OfferByID(offerID)
	if !ok {
		return fmt.Errorf("cancelled offer %s vanished", offerID)
	}
	offer.Status = domain.OfferCancelled
	e.bus.Publish(Event{Kind: EventTradeCancelled, Payload: TradeCancelledPayload{OfferID: offerID, By: playerID}})
	return nil
}

// End closes the trading floor. Remaining active offers lapse.
func (e *TradingEngine) End(g *domain.Game) {
	st := g.PhaseState.(*domain.TradingState)
	st.Ended = true
}

// Complete reports whether the end-trading signal has arrived.
func (e *TradingEngine) Complete(g *domain.Game) bool {
	st, ok := g.PhaseState.(*domain.TradingState)
	return ok && st.Ended
}

func (e *TradingEngine) moveCash(g *domain.Game, fromID, toID string, amount int) {
	if amount == 0 {
		return
	}
	from := g.Players[fromID]
	to := g.Players[toID]
	from.Cash -= amount
	to.Cash += amount
	e.bus.Publish(Event{Kind: EventCashChanged, Payload: CashChangedPayload{Player: fromID, Delta: -amount, Cash: from.Cash}})
	e.bus.Publish(Event{Kind: EventCashChanged, Payload: CashChangedPayload{Player: toID, Delta: amount, Cash: to.Cash}})
}

// cancelUnfulfillable lapses the participant's other active offers that their
// post-trade holdings can no longer back.
func (e *TradingEngine) cancelUnfulfillable(g *domain.Game, st *domain.TradingState, playerID string) {
	p := g.Players[playerID]
	for _, offer := range st.Offers {
		if offer.From != playerID || offer.Status != domain.OfferActive {
			continue
		}
		if p.HasCards(offer.OfferCardIDs) && p.Cash >= offer.OfferCash {
			continue
		}
		offer.Status = domain.OfferCancelled
		e.bus.Publish(Event{Kind: EventTradeCancelled, Payload: TradeCancelledPayload{OfferID: offer.ID, By: playerID, Auto: true}})
	}
}
