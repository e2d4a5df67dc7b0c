package app

import (
	"fmt"

	"stockpile/internal/domain"
)

// newTestGame builds a bare game aggregate with the given players seated in
// order, default rules and starting prices.
func newTestGame(ids ...string) *domain.Game {
	g := &domain.Game{
		Rules:     domain.DefaultRules(),
		Round:     1,
		Order:     ids,
		Players:   make(map[string]*domain.Player, len(ids)),
		Prices:    domain.InitialPrices(4),
		Resources: &domain.Deck{},
	}
	for i, id := range ids {
		g.Players[id] = &domain.Player{ID: id, DisplayName: id, Seat: i, Cash: 10}
	}
	return g
}

var cardSeq int

// newCard mints a resource card with a unique id.
func newCard(color domain.Color) domain.ResourceCard {
	cardSeq++
	return domain.ResourceCard{ID: fmt.Sprintf("card-%d", cardSeq), Color: color}
}

func newCards(colors ...domain.Color) []domain.ResourceCard {
	out := make([]domain.ResourceCard, 0, len(colors))
	for _, c := range colors {
		out = append(out, newCard(c))
	}
	return out
}

// recorder captures every event published on a bus, in order.
type recorder struct {
	events []Event
}

func record(bus *Bus) *recorder {
	r := &recorder{}
	bus.SubscribeAll(func(ev Event) {
		r.events = append(r.events, ev)
	})
	return r
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind EventKind) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func (r *recorder) reset() { r.events = nil }
