package app

import (
	"reflect"
	"testing"

	"stockpile/internal/domain"
)

// viewService wraps a prepared aggregate in a facade for read access.
func viewService(g *domain.Game) *Service {
	return &Service{game: g}
}

func TestViewHidesOpponentHandColors(t *testing.T) {
	g := newTestGame("a", "b")
	g.Players["a"].Hand = newCards(domain.Blue, domain.Orange)
	g.Players["b"].Hand = newCards(domain.Purple)

	view, err := viewService(g).ViewFor("a")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	if len(view.You.Hand) != 2 {
		t.Fatalf("own hand = %d cards, want 2", len(view.You.Hand))
	}
	for _, card := range view.You.Hand {
		if card.ID == "" || card.Color == domain.ColorHidden {
			t.Fatalf("own card %+v should be fully visible", card)
		}
	}

	if len(view.Others) != 1 {
		t.Fatalf("others = %d, want 1", len(view.Others))
	}
	other := view.Others[0]
	if len(other.Hand) != 1 {
		t.Fatalf("opponent hand count = %d, want 1", len(other.Hand))
	}
	for _, card := range other.Hand {
		if card.Color != domain.ColorHidden || card.ID != "" {
			t.Fatalf("opponent card %+v leaked", card)
		}
	}
	if other.Cash != 10 {
		t.Fatalf("opponent cash = %d, want 10 (cash is public)", other.Cash)
	}
}

func TestViewRedactsUnrevealedGoals(t *testing.T) {
	g := newTestGame("a", "b")
	hidden := newGoal(metAlways(), domain.RewardGainCash{Amount: 1}, map[domain.Color]int{domain.Blue: 1})
	shown := newGoal(metAlways(), domain.RewardGainCash{Amount: 2}, map[domain.Color]int{domain.Orange: 1})
	shown.Revealed = true
	g.Players["b"].Goals = []*domain.GoalCard{hidden, shown}

	view, err := viewService(g).ViewFor("a")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	goals := view.Others[0].Goals
	if len(goals) != 2 {
		t.Fatalf("opponent goals = %d, want 2", len(goals))
	}
	if goals[0].ID != "" || goals[0].Effect != nil || goals[0].Revealed {
		t.Fatalf("unrevealed goal leaked: %+v", goals[0])
	}
	if goals[1].ID != shown.ID || !goals[1].Revealed || goals[1].Effect == nil {
		t.Fatalf("revealed goal missing content: %+v", goals[1])
	}

	// The owner always sees their own goals in full.
	own, err := viewService(g).ViewFor("b")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if own.You.Goals[0].ID != hidden.ID {
		t.Fatal("owner should see their unrevealed goal")
	}
}

func TestViewAuctionTable(t *testing.T) {
	g := newTestGame("a", "b")
	g.Phase = domain.PhaseAuction
	g.PhaseState = &domain.AuctionState{
		Queue:      newCards(domain.Blue, domain.Orange, domain.Yellow),
		Index:      1,
		HighBid:    3,
		HighBidder: "b",
		Active:     []string{"a", "b"},
		Turn:       "a",
	}

	view, err := viewService(g).ViewFor("a")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	table := view.Table.Auction
	if table == nil {
		t.Fatal("no auction table view")
	}
	if table.Card.Color != domain.Orange || table.Remaining != 1 {
		t.Fatalf("auction table = %+v", table)
	}
	if table.HighBid != 3 || table.HighBidder != "b" || table.Turn != "a" {
		t.Fatalf("bidding state = %+v", table)
	}
}

func TestViewTradingTableShowsActiveOffersByColor(t *testing.T) {
	g := newTestGame("a", "b")
	a := g.Players["a"]
	a.Hand = newCards(domain.Blue)
	g.Phase = domain.PhaseTrading
	g.PhaseState = &domain.TradingState{Offers: []*domain.TradeOffer{
		{ID: "o1", From: "a", OfferCardIDs: []string{a.Hand[0].ID}, RequestCash: 2, Status: domain.OfferActive},
		{ID: "o2", From: "a", OfferCash: 1, RequestCash: 1, Status: domain.OfferCancelled},
	}}

	view, err := viewService(g).ViewFor("b")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	if len(view.Table.Offers) != 1 {
		t.Fatalf("offers = %d, want only the active one", len(view.Table.Offers))
	}
	offer := view.Table.Offers[0]
	if offer.ID != "o1" || len(offer.OfferCards) != 1 {
		t.Fatalf("offer view = %+v", offer)
	}
	if offer.OfferCards[0].Color != domain.Blue || offer.OfferCards[0].ID != "" {
		t.Fatalf("offered card should show color only: %+v", offer.OfferCards[0])
	}
}

func TestViewGoalAndSellTables(t *testing.T) {
	g := newTestGame("a", "b")
	g.Phase = domain.PhaseGoals
	g.PhaseState = &domain.GoalState{
		Order:   []string{"b", "a"},
		Pending: &domain.PendingReward{PlayerID: "b", GoalID: "g1"},
	}

	view, err := viewService(g).ViewFor("a")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Table.GoalTurn != "b" {
		t.Fatalf("goal turn = %s, want b", view.Table.GoalTurn)
	}
	if view.Table.Pending == nil || view.Table.Pending.Player != "b" {
		t.Fatalf("pending view = %+v", view.Table.Pending)
	}

	g.Phase = domain.PhaseSell
	g.PhaseState = &domain.SellState{
		Selected:  map[string][]string{"b": {"x", "y"}},
		Committed: map[string]bool{"b": true},
	}
	view, err = viewService(g).ViewFor("a")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if !view.Table.Committed["b"] || view.Table.Committed["a"] {
		t.Fatalf("committed view = %+v", view.Table.Committed)
	}
}

func TestViewUnknownPlayerRejected(t *testing.T) {
	g := newTestGame("a", "b")
	if _, err := viewService(g).ViewFor("zz"); !IsRejection(err) {
		t.Fatalf("unknown player = %v, want rejection", err)
	}
}

func TestViewIsReadOnly(t *testing.T) {
	g := newTestGame("a", "b")
	g.Players["a"].Hand = newCards(domain.Blue, domain.Orange)
	g.Players["b"].Hand = newCards(domain.Purple)
	s := viewService(g)

	first, err := s.ViewFor("a")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	second, err := s.ViewFor("a")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("back-to-back views differ")
	}
}
