package app

import (
	"fmt"

	"stockpile/internal/domain"
)

// AuctionEngine runs the open-outcry bidding sub-phase: one card at a time,
// poker-style raise or fold, until the revealed queue is exhausted.
type AuctionEngine struct {
	bus *Bus
}

// NewAuctionEngine returns an engine publishing to bus.
func NewAuctionEngine(bus *Bus) *AuctionEngine {
	return &AuctionEngine{bus: bus}
}

// Begin draws players+overdraw cards into the auction queue and opens bidding
// on the first card. A short draw pile degrades to a smaller queue.
func (e *AuctionEngine) Begin(g *domain.Game) {
	want := len(g.Order) + g.Rules.AuctionOverdraw
	cards, short := g.Resources.DrawCards(want)
	e.bus.Publish(Event{Kind: EventCardsDrawn, Payload: CardsDrawnPayload{Count: len(cards), Short: short}})

	g.PhaseState = &domain.AuctionState{Queue: cards}
	e.bus.Publish(Event{Kind: EventAuctionStarted, Payload: AuctionStartedPayload{Round: g.Round, Cards: len(cards)}})
	e.openCard(g)
}

// openCard resets per-card bidding state for the current queue position. The
// opening seat advances by one card so the same player does not always lead.
func (e *AuctionEngine) openCard(g *domain.Game) {
	st := g.PhaseState.(*domain.AuctionState)
	card := st.Current()
	if card == nil {
		return
	}

	firstSeat := g.NextSeat(g.DealerSeat + st.Index)
	st.Active = g.TurnOrderFrom(firstSeat)
	st.Turn = st.Active[0]
	st.HighBid = 0
	st.HighBidder = ""
	st.LastRaiser = ""

	e.bus.Publish(Event{Kind: EventAuctionCardUp, Payload: AuctionCardUpPayload{
		Card:      *card,
		Index:     st.Index,
		Remaining: len(st.Queue) - st.Index - 1,
		FirstTurn: st.Turn,
	}})
}

// Bid records a raise and rotates the turn. Affordability and raise size are
// already guaranteed by validation.
func (e *AuctionEngine) Bid(g *domain.Game, playerID string, amount int) error {
	st := g.PhaseState.(*domain.AuctionState)
	if st.Current() == nil {
		return fmt.Errorf("bid with no card under auction")
	}

	st.HighBid = amount
	st.HighBidder = playerID
	st.LastRaiser = playerID
	st.Turn = e.nextActive(st, playerID)

	e.bus.Publish(Event{Kind: EventBidPlaced, Payload: BidPlacedPayload{Player: playerID, Amount: amount, NextTurn: st.Turn}})
	if len(st.Active) == 1 {
		// Sole remaining bidder: nobody is left to outbid them.
		e.settleCard(g, playerID, amount)
	}
	return nil
}

// Pass folds the player out of the current card. Closure: one bidder left
// against a live bid wins at that bid, zero left discards the card unsold,
// and a rotation that returns to the last raiser with a live bid closes in
// the raiser's favor. With no bid on the table the last remaining player
// still gets their turn; a card nobody bids on is discarded, never gifted.
func (e *AuctionEngine) Pass(g *domain.Game, playerID string) error {
	st := g.PhaseState.(*domain.AuctionState)
	if st.Current() == nil {
		return fmt.Errorf("pass with no card under auction")
	}

	next := st.Turn
	if st.Turn == playerID {
		next = e.nextActive(st, playerID)
	}
	e.removeActive(st, playerID)
	e.bus.Publish(Event{Kind: EventPlayerPassed, Payload: PlayerPassedPayload{Player: playerID, NextTurn: next}})

	if len(st.Active) == 0 {
		e.settleCard(g, "", 0)
		return nil
	}
	if len(st.Active) == 1 && st.HighBid > 0 {
		e.settleCard(g, st.Active[0], st.HighBid)
		return nil
	}

	st.Turn = next
	if st.Turn == st.LastRaiser && st.HighBid > 0 {
		e.settleCard(g, st.LastRaiser, st.HighBid)
	}
	return nil
}

// settleCard awards or discards the current card and moves to the next one.
func (e *AuctionEngine) settleCard(g *domain.Game, winnerID string, price int) {
	st := g.PhaseState.(*domain.AuctionState)
	card := *st.Current()

	if winnerID == "" {
		g.Resources.DiscardCards(card)
		e.bus.Publish(Event{Kind: EventCardUnsold, Payload: CardUnsoldPayload{Card: card}})
	} else {
		winner := g.Players[winnerID]
		winner.Hand = append(winner.Hand, card)
		e.bus.Publish(Event{Kind: EventCardWon, Payload: CardWonPayload{Player: winnerID, Card: card, Amount: price}})
		if price > 0 {
			winner.Cash -= price
			e.bus.Publish(Event{Kind: EventCashChanged, Payload: CashChangedPayload{Player: winnerID, Delta: -price, Cash: winner.Cash}})
		}
	}

	st.Index++
	if st.Index >= len(st.Queue) {
		e.bus.Publish(Event{Kind: EventAuctionComplete})
		return
	}
	e.openCard(g)
}

// Complete reports whether the card queue is exhausted.
func (e *AuctionEngine) Complete(g *domain.Game) bool {
	st, ok := g.PhaseState.(*domain.AuctionState)
	return ok && st.Index >= len(st.Queue)
}

// nextActive returns the active bidder clockwise after the given player,
// following global seat order.
func (e *AuctionEngine) nextActive(st *domain.AuctionState, after string) string {
	idx := -1
	for i, id := range st.Active {
		if id == after {
			idx = i
			break
		}
	}
	if idx == -1 || len(st.Active) == 0 {
		return ""
	}
	return st.Active[(idx+1)%len(st.Active)]
}

func (e *AuctionEngine) removeActive(st *domain.AuctionState, playerID string) {
	for i, id := range st.Active {
		if id == playerID {
			st.Active = append(st.Active[:i], st.Active[i+1:]...)
			return
		}
	}
}
