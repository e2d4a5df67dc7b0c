package integration

import (
	"math/rand"
	"testing"

	"stockpile/internal/app"
	"stockpile/internal/bot"
	"stockpile/internal/cards"
	"stockpile/internal/domain"
)

// Harness drives a full game through the engine facade with baseline bot
// strategies in every seat. It stands in for the Nakama match loop: it ticks
// agents, fires the end-trading countdown and records every emitted event.
type Harness struct {
	Service *app.Service
	Agents  []*bot.Agent
	Events  []app.Event
}

// NewHarness sets up a seeded game with the given number of players.
func NewHarness(t *testing.T, seed int64, players int) *Harness {
	t.Helper()

	svc := app.NewService(rand.New(rand.NewSource(seed)))
	h := &Harness{Service: svc}
	svc.Bus().SubscribeAll(func(ev app.Event) {
		h.Events = append(h.Events, ev)
	})

	seats := make([]app.Seat, 0, players)
	for i := 0; i < players; i++ {
		id := bot.BotID(i)
		seats = append(seats, app.Seat{PlayerID: id, DisplayName: bot.BotDisplayName(i)})
		h.Agents = append(h.Agents, &bot.Agent{
			UserID:      id,
			DisplayName: bot.BotDisplayName(i),
			Strategy:    bot.NewBaseline(),
		})
	}

	if err := svc.Setup(seats, cards.DefaultCatalog(), domain.DefaultRules()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return h
}

// Tick gives every agent one decision. It returns the number of actions that
// were dispatched.
func (h *Harness) Tick(t *testing.T) int {
	t.Helper()

	acted := 0
	for _, agent := range h.Agents {
		view, err := h.Service.ViewFor(agent.UserID)
		if err != nil {
			t.Fatalf("ViewFor(%s) failed: %v", agent.UserID, err)
		}
		act, err := agent.Act(view)
		if err != nil {
			t.Fatalf("Agent %s failed to decide: %v", agent.UserID, err)
		}
		if act == nil {
			continue
		}
		if err := h.Service.Dispatch(act); err != nil && !app.IsRejection(err) {
			t.Fatalf("Agent %s action %s failed: %v", agent.UserID, act.Kind(), err)
		}
		acted++
	}

	// No agent trades, so the host countdown is the only way out of the
	// trading phase. Fire it as soon as the phase is reached.
	if h.Service.State().Phase == domain.PhaseTrading {
		if err := h.Service.Dispatch(app.EndTrading{Player: h.Agents[0].UserID}); err != nil && !app.IsRejection(err) {
			t.Fatalf("EndTrading failed: %v", err)
		}
		acted++
	}
	return acted
}

// RunToEnd ticks until the game ends or the tick budget runs out, checking
// card conservation after every tick.
func (h *Harness) RunToEnd(t *testing.T, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if h.Service.State().Phase == domain.PhaseEnded {
			return
		}
		if h.Tick(t) == 0 {
			t.Fatalf("No agent could act in phase %s (round %d) after %d ticks", h.Service.State().Phase, h.Service.State().Round, i)
		}
		h.AssertCardConservation(t)
	}
	t.Fatalf("Game did not end within %d ticks (stuck in phase %s, round %d)", maxTicks, h.Service.State().Phase, h.Service.State().Round)
}

// AssertCardConservation checks that actions only move resource cards between
// zones: every color's total across hands, the draw pile, the discard pile
// and any unresolved auction cards must equal the deck composition.
func (h *Harness) AssertCardConservation(t *testing.T) {
	t.Helper()

	g := h.Service.State()
	counts := make(map[domain.Color]int, len(domain.Colors()))
	for _, p := range g.Players {
		for _, card := range p.Hand {
			counts[card.Color]++
		}
	}
	for _, card := range g.Resources.Draw {
		counts[card.Color]++
	}
	for _, card := range g.Resources.Discard {
		counts[card.Color]++
	}
	if st, ok := g.PhaseState.(*domain.AuctionState); ok {
		for _, card := range st.Queue[st.Index:] {
			counts[card.Color]++
		}
	}

	for _, color := range domain.Colors() {
		if counts[color] != g.Rules.CardsPerColor {
			t.Fatalf("%s cards across all zones = %d, want %d (phase %s, round %d)",
				color, counts[color], g.Rules.CardsPerColor, g.Phase, g.Round)
		}
	}
}

// KindCounts tallies recorded events by kind.
func (h *Harness) KindCounts() map[app.EventKind]int {
	counts := make(map[app.EventKind]int)
	for _, ev := range h.Events {
		counts[ev.Kind]++
	}
	return counts
}
