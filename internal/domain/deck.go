package domain

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrEmptyDraw is returned when an operation needs a card from an empty
	// draw pile.
	ErrEmptyDraw = errors.New("draw pile is empty")
)

// Deck is an ordered draw pile (front = top) plus a discard pile.
type Deck struct {
	Draw    []ResourceCard
	Discard []ResourceCard
}

// Shuffle permutes the draw pile in place. Callers control determinism
// through the rng they pass in (same seed, same input, same order).
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Draw), func(i, j int) {
		d.Draw[i], d.Draw[j] = d.Draw[j], d.Draw[i]
	})
}

// DrawCards removes and returns up to n cards from the top. When fewer than n
// remain it returns all of them and reports the shortage through short; the
// caller proceeds with what it got.
func (d *Deck) DrawCards(n int) (cards []ResourceCard, short bool) {
	if n > len(d.Draw) {
		n = len(d.Draw)
		short = true
	}
	cards = append(cards, d.Draw[:n]...)
	d.Draw = d.Draw[n:]
	return cards, short
}

// DiscardCards appends cards to the discard pile, order preserved.
func (d *Deck) DiscardCards(cards ...ResourceCard) {
	d.Discard = append(d.Discard, cards...)
}

// PeekTop returns up to n cards from the top without mutating the pile.
func (d *Deck) PeekTop(n int) []ResourceCard {
	if n > len(d.Draw) {
		n = len(d.Draw)
	}
	return append([]ResourceCard{}, d.Draw[:n]...)
}

// PlaceOnTop inserts a single card at the top of the draw pile.
func (d *Deck) PlaceOnTop(card ResourceCard) {
	d.Draw = append([]ResourceCard{card}, d.Draw...)
}

// PlaceOnBottom inserts a single card at the bottom of the draw pile.
func (d *Deck) PlaceOnBottom(card ResourceCard) {
	d.Draw = append(d.Draw, card)
}

// RearrangeTop replaces the order of exactly the top count cards with the
// given id order. It fails, leaving the pile untouched, if the order does not
// name each of those count cards exactly once; a silent partial reorder would
// corrupt the pile.
func (d *Deck) RearrangeTop(count int, order []string) error {
	if count > len(d.Draw) {
		return fmt.Errorf("rearrange window %d exceeds draw pile size %d", count, len(d.Draw))
	}
	n := count
	if len(order) != n {
		return fmt.Errorf("rearrange order has %d ids, the window holds %d cards", len(order), n)
	}
	byID := make(map[string]ResourceCard, n)
	for _, card := range d.Draw[:n] {
		byID[card.ID] = card
	}
	rearranged := make([]ResourceCard, 0, n)
	seen := make(map[string]bool, n)
	for _, id := range order {
		card, ok := byID[id]
		if !ok || seen[id] {
			return fmt.Errorf("card %s is not among the top %d cards", id, n)
		}
		seen[id] = true
		rearranged = append(rearranged, card)
	}
	copy(d.Draw[:n], rearranged)
	return nil
}

// SwapWithTop atomically exchanges a card for the top card of the draw pile.
func (d *Deck) SwapWithTop(card ResourceCard) (ResourceCard, error) {
	if len(d.Draw) == 0 {
		return ResourceCard{}, ErrEmptyDraw
	}
	top := d.Draw[0]
	d.Draw[0] = card
	return top, nil
}

// TakeFirstOfColor removes and returns the topmost draw-pile card of the
// given color. ok is false when the pile holds none.
func (d *Deck) TakeFirstOfColor(color Color) (ResourceCard, bool) {
	for i, card := range d.Draw {
		if card.Color == color {
			d.Draw = append(d.Draw[:i], d.Draw[i+1:]...)
			return card, true
		}
	}
	return ResourceCard{}, false
}

// ReshuffleDiscardIntoDraw moves the whole discard pile into the draw pile
// and shuffles it.
func (d *Deck) ReshuffleDiscardIntoDraw(rng *rand.Rand) {
	d.Draw = append(d.Draw, d.Discard...)
	d.Discard = nil
	d.Shuffle(rng)
}

// Size returns the number of cards in the draw pile.
func (d *Deck) Size() int { return len(d.Draw) }
