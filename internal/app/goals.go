package app

import (
	"fmt"
	"math/rand"

	"stockpile/internal/domain"
)

// GoalEngine runs the sequential goal-reveal sub-phase, including the
// interactive reward sub-protocol. A reward that needs player input records a
// pending marker and the phase waits for an execute-reward action; there is
// no execution-level suspension.
type GoalEngine struct {
	bus *Bus
	rng *rand.Rand
}

// NewGoalEngine returns an engine publishing to bus. rng backs the rewards
// that move a random card.
func NewGoalEngine(bus *Bus, rng *rand.Rand) *GoalEngine {
	return &GoalEngine{bus: bus, rng: rng}
}

// Begin sets the reveal order for the round, starting at the seat after the
// dealer, and skips players with nothing left to reveal.
func (e *GoalEngine) Begin(g *domain.Game) {
	st := &domain.GoalState{Order: g.TurnOrderFrom(g.NextSeat(g.DealerSeat))}
	g.PhaseState = st
	e.bus.Publish(Event{Kind: EventGoalsStarted, Payload: GoalsStartedPayload{Order: st.Order}})
	e.skipExhausted(g, st)
	if st.Index >= len(st.Order) {
		e.bus.Publish(Event{Kind: EventGoalsComplete})
	}
}

// Reveal flips the goal card, applies its market effect immediately (deltas
// are never batched across players), checks the requirement, and either
// starts the reward or ends the player's turn.
func (e *GoalEngine) Reveal(g *domain.Game, playerID, goalID string) error {
	st := g.PhaseState.(*domain.GoalState)
	p := g.Players[playerID]
	goal, ok := p.GoalByID(goalID)
	if !ok {
		return fmt.Errorf("revealed goal %s vanished from %s", goalID, playerID)
	}

	goal.Revealed = true
	e.bus.Publish(Event{Kind: EventGoalRevealed, Payload: GoalRevealedPayload{Player: playerID, Goal: goalView(goal, true)}})
	e.applyMarketEffect(g, goal.Effect)

	met := goal.Requirement.MetBy(p.Hand)
	e.bus.Publish(Event{Kind: EventGoalChecked, Payload: GoalCheckedPayload{Player: playerID, GoalID: goalID, Met: met}})
	if !met {
		e.finishTurn(g, st)
		return nil
	}

	e.bus.Publish(Event{Kind: EventRewardAvailable, Payload: RewardAvailablePayload{
		Player:      playerID,
		GoalID:      goalID,
		NeedsChoice: goal.Reward.NeedsChoice(),
	}})
	if !goal.Reward.NeedsChoice() {
		if err := e.executeReward(g, p, goal, domain.RewardChoice{}); err != nil {
			return err
		}
		e.finishTurn(g, st)
		return nil
	}

	st.Pending = &domain.PendingReward{PlayerID: playerID, GoalID: goalID}
	e.sendRewardPreview(g, p, goal)
	return nil
}

// ExecuteReward resolves the pending reward with the supplied choice. A
// malformed choice is a rejection; the reward stays pending for a retry.
// Declining forfeits the reward.
func (e *GoalEngine) ExecuteReward(g *domain.Game, playerID string, choice domain.RewardChoice) error {
	st := g.PhaseState.(*domain.GoalState)
	p := g.Players[playerID]
	goal, ok := p.GoalByID(st.Pending.GoalID)
	if !ok {
		return fmt.Errorf("pending goal %s vanished from %s", st.Pending.GoalID, playerID)
	}

	if choice.Decline {
		st.Pending = nil
		e.bus.Publish(Event{Kind: EventRewardExecuted, Payload: RewardExecutedPayload{Player: playerID, GoalID: goal.ID, Declined: true}})
		e.finishTurn(g, st)
		return nil
	}

	if err := e.executeReward(g, p, goal, choice); err != nil {
		return err
	}
	st.Pending = nil
	e.finishTurn(g, st)
	return nil
}

// Complete reports whether every player has had their turn with no reward
// pending.
func (e *GoalEngine) Complete(g *domain.Game) bool {
	st, ok := g.PhaseState.(*domain.GoalState)
	return ok && st.Pending == nil && st.Index >= len(st.Order)
}

func (e *GoalEngine) applyMarketEffect(g *domain.Game, effect map[domain.Color]int) {
	updated := domain.ApplyDeltas(g.Prices, effect, g.Rules.PriceFloor, g.Rules.PriceCeiling)
	diff := domain.DiffPrices(g.Prices, updated)
	g.Prices = updated
	if len(diff) > 0 {
		e.bus.Publish(Event{Kind: EventMarketUpdated, Payload: MarketUpdatedPayload{Changes: diff, Prices: updated}})
	}
}

func (e *GoalEngine) finishTurn(g *domain.Game, st *domain.GoalState) {
	e.bus.Publish(Event{Kind: EventPlayerGoalDone, Payload: PlayerGoalDonePayload{Player: st.Turn()}})
	st.Index++
	e.skipExhausted(g, st)
	if st.Index >= len(st.Order) {
		e.bus.Publish(Event{Kind: EventGoalsComplete})
	}
}

// skipExhausted advances past players holding no unrevealed goal cards.
func (e *GoalEngine) skipExhausted(g *domain.Game, st *domain.GoalState) {
	for st.Index < len(st.Order) {
		p := g.Players[st.Order[st.Index]]
		if p.UnrevealedGoals() > 0 {
			return
		}
		e.bus.Publish(Event{Kind: EventPlayerGoalDone, Payload: PlayerGoalDonePayload{Player: p.ID}})
		st.Index++
	}
}

// sendRewardPreview delivers the private information a choice-requiring
// reward depends on (peeked cards) to the owner before they choose.
func (e *GoalEngine) sendRewardPreview(g *domain.Game, p *domain.Player, goal *domain.GoalCard) {
	switch r := goal.Reward.(type) {
	case domain.RewardPeekPlace:
		e.bus.Publish(Event{
			Kind:       EventPeekResult,
			Payload:    PeekResultPayload{Player: p.ID, Cards: g.Resources.PeekTop(1)},
			Recipients: []string{p.ID},
		})
	case domain.RewardRearrangeTop:
		e.bus.Publish(Event{
			Kind:       EventPeekResult,
			Payload:    PeekResultPayload{Player: p.ID, Cards: g.Resources.PeekTop(r.Count)},
			Recipients: []string{p.ID},
		})
	}
}

// executeReward applies one reward kind. The type switch is exhaustive over
// the closed reward set; a kind it does not know is a fatal protocol error.
func (e *GoalEngine) executeReward(g *domain.Game, p *domain.Player, goal *domain.GoalCard, choice domain.RewardChoice) error {
	switch r := goal.Reward.(type) {
	case domain.RewardGainCash:
		e.changeCash(g, p, r.Amount)

	case domain.RewardSellBonus:
		p.SellBonus += r.Amount

	case domain.RewardInspectHand:
		target, err := e.targetPlayer(g, p, choice.Target)
		if err != nil {
			return err
		}
		e.bus.Publish(Event{
			Kind:       EventHandInspected,
			Payload:    HandInspectedPayload{Player: p.ID, Target: target.ID, Cards: append([]domain.ResourceCard{}, target.Hand...)},
			Recipients: []string{p.ID},
		})

	case domain.RewardStealCash:
		target, err := e.targetPlayer(g, p, choice.Target)
		if err != nil {
			return err
		}
		amount := r.Amount
		if target.Cash < amount {
			amount = target.Cash
		}
		e.changeCash(g, target, -amount)
		e.changeCash(g, p, amount)

	case domain.RewardPeekPlace:
		switch choice.Placement {
		case domain.PlaceTop:
			// Already on top.
		case domain.PlaceBottom:
			if cards, _ := g.Resources.DrawCards(1); len(cards) == 1 {
				g.Resources.PlaceOnBottom(cards[0])
			}
		default:
			return Reject("placement must be top or bottom")
		}

	case domain.RewardSwapDeck:
		card, ok := p.CardByID(choice.CardID)
		if !ok {
			return Reject("card %s is not in your hand", choice.CardID)
		}
		fromDeck, err := g.Resources.SwapWithTop(card)
		if err != nil {
			return Reject("the draw pile is empty")
		}
		p.RemoveCard(card.ID)
		p.Hand = append(p.Hand, fromDeck)

	case domain.RewardRearrangeTop:
		window := r.Count
		if size := g.Resources.Size(); window > size {
			window = size
		}
		if err := g.Resources.RearrangeTop(window, choice.Order); err != nil {
			return Reject("%v", err)
		}

	case domain.RewardAdjustPrice:
		if !domain.ValidColor(choice.Color) {
			return Reject("%s is not a color", choice.Color)
		}
		if choice.Delta != 1 && choice.Delta != -1 {
			return Reject("price adjustment must be +1 or -1")
		}
		e.applyMarketEffect(g, map[domain.Color]int{choice.Color: choice.Delta})

	case domain.RewardBuyStock:
		if !domain.ValidColor(choice.Color) {
			return Reject("%s is not a color", choice.Color)
		}
		if r.LowestOnly && !colorIn(domain.LowestPricedColors(g.Prices), choice.Color) {
			return Reject("%s is not among the lowest-priced colors", choice.Color)
		}
		cost := g.Prices[choice.Color] - r.Discount
		if cost < 0 {
			cost = 0
		}
		if p.Cash < cost {
			return Reject("buying %s costs $%d, you have $%d", choice.Color, cost, p.Cash)
		}
		// No card of the color left degrades to a no-op; cash only moves
		// when a card does.
		if card, ok := g.Resources.TakeFirstOfColor(choice.Color); ok {
			p.Hand = append(p.Hand, card)
			e.changeCash(g, p, -cost)
		}

	case domain.RewardGainCheapest:
		if !domain.ValidColor(choice.Color) {
			return Reject("%s is not a color", choice.Color)
		}
		if !colorIn(domain.LowestPricedColors(g.Prices), choice.Color) {
			return Reject("%s is not among the lowest-priced colors", choice.Color)
		}
		if card, ok := g.Resources.TakeFirstOfColor(choice.Color); ok {
			p.Hand = append(p.Hand, card)
		}

	case domain.RewardTakeGive:
		target, err := e.targetPlayer(g, p, choice.Target)
		if err != nil {
			return err
		}
		given, ok := p.CardByID(choice.CardID)
		if !ok {
			return Reject("card %s is not in your hand", choice.CardID)
		}
		if len(target.Hand) == 0 {
			return Reject("%s has no cards to take", target.ID)
		}
		taken := target.Hand[e.rng.Intn(len(target.Hand))]
		target.RemoveCard(taken.ID)
		p.RemoveCard(given.ID)
		p.Hand = append(p.Hand, taken)
		target.Hand = append(target.Hand, given)

	default:
		return fmt.Errorf("unhandled reward kind %T", goal.Reward)
	}

	e.bus.Publish(Event{Kind: EventRewardExecuted, Payload: RewardExecutedPayload{Player: p.ID, GoalID: goal.ID}})
	return nil
}

func (e *GoalEngine) targetPlayer(g *domain.Game, p *domain.Player, targetID string) (*domain.Player, error) {
	if targetID == "" || targetID == p.ID {
		return nil, Reject("this reward needs another player as its target")
	}
	target, ok := g.Players[targetID]
	if !ok {
		return nil, Reject("unknown player %s", targetID)
	}
	return target, nil
}

func (e *GoalEngine) changeCash(g *domain.Game, p *domain.Player, delta int) {
	if delta == 0 {
		return
	}
	p.Cash += delta
	e.bus.Publish(Event{Kind: EventCashChanged, Payload: CashChangedPayload{Player: p.ID, Delta: delta, Cash: p.Cash}})
}

func colorIn(colors []domain.Color, c domain.Color) bool {
	for _, color := range colors {
		if color == c {
			return true
		}
	}
	return false
}
