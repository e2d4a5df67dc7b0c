package app

import (
	"fmt"
	"math/rand"
	"testing"

	"stockpile/internal/domain"
)

var goalSeq int

// newGoal mints a goal card with a unique id.
func newGoal(req domain.GoalRequirement, reward domain.Reward, effect map[domain.Color]int) *domain.GoalCard {
	goalSeq++
	return &domain.GoalCard{
		ID:          fmt.Sprintf("goal-%d", goalSeq),
		Effect:      effect,
		Requirement: req,
		Reward:      reward,
	}
}

// goalFixture builds a three-player game in the goal phase. Goals are dealt by
// the test before calling Begin. Dealer sits at seat 0, so the reveal order is
// b, c, a.
func goalFixture(t *testing.T) (*domain.Game, *GoalEngine, *recorder) {
	t.Helper()
	g := newTestGame("a", "b", "c")
	g.Phase = domain.PhaseGoals

	bus := NewBus()
	r := record(bus)
	e := NewGoalEngine(bus, rand.New(rand.NewSource(1)))
	return g, e, r
}

func metAlways() domain.GoalRequirement { return domain.GoalRequirement{} }

func TestGoalBeginSkipsPlayersWithoutGoals(t *testing.T) {
	g, e, r := goalFixture(t)
	g.Players["c"].Goals = []*domain.GoalCard{newGoal(metAlways(), domain.RewardGainCash{Amount: 1}, nil)}

	e.Begin(g)

	st := g.PhaseState.(*domain.GoalState)
	if st.Turn() != "c" {
		t.Fatalf("turn = %s, want c", st.Turn())
	}
	// b sat between the dealer and c with nothing to reveal.
	if r.count(EventPlayerGoalDone) != 1 {
		t.Fatalf("goal-done events = %d, want 1", r.count(EventPlayerGoalDone))
	}
}

func TestGoalBeginWithNoGoalsCompletes(t *testing.T) {
	g, e, r := goalFixture(t)
	e.Begin(g)
	if !e.Complete(g) {
		t.Fatal("phase with nothing to reveal should be complete")
	}
	if r.count(EventGoalsComplete) != 1 {
		t.Fatalf("goals-complete events = %d, want 1", r.count(EventGoalsComplete))
	}
}

func TestGoalRevealAppliesMarketEffectImmediately(t *testing.T) {
	g, e, r := goalFixture(t)
	goal := newGoal(
		domain.GoalRequirement{Require: map[domain.Color]int{domain.Orange: 1}},
		domain.RewardGainCash{Amount: 5},
		map[domain.Color]int{domain.Blue: 2, domain.Purple: -1},
	)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	if g.Prices[domain.Blue] != 6 || g.Prices[domain.Purple] != 3 {
		t.Fatalf("prices = %v after effect", g.Prices)
	}
	if r.count(EventMarketUpdated) != 1 {
		t.Fatalf("market-updated events = %d, want 1", r.count(EventMarketUpdated))
	}
	// Requirement unmet: no reward, cash untouched, turn over.
	ev, _ := r.last(EventGoalChecked)
	if ev.Payload.(GoalCheckedPayload).Met {
		t.Fatal("requirement should not be met by an empty hand")
	}
	if g.Players["b"].Cash != 10 {
		t.Fatalf("cash = %d, want 10", g.Players["b"].Cash)
	}
	if r.count(EventRewardAvailable) != 0 {
		t.Fatal("unmet goal should not offer a reward")
	}
}

func TestGoalSyncRewardExecutesInline(t *testing.T) {
	g, e, r := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardGainCash{Amount: 3}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	if g.Players["b"].Cash != 13 {
		t.Fatalf("cash = %d, want 13", g.Players["b"].Cash)
	}
	st := g.PhaseState.(*domain.GoalState)
	if st.Pending != nil {
		t.Fatal("cash reward should not pend")
	}
	if r.count(EventRewardExecuted) != 1 {
		t.Fatalf("reward-executed events = %d, want 1", r.count(EventRewardExecuted))
	}
	if !e.Complete(g) {
		t.Fatal("single reveal should finish the phase")
	}
}

func TestGoalChoiceRewardPendsUntilExecuted(t *testing.T) {
	g, e, r := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardStealCash{Amount: 2}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	st := g.PhaseState.(*domain.GoalState)
	if st.Pending == nil || st.Pending.PlayerID != "b" {
		t.Fatalf("pending = %+v, want b's reward", st.Pending)
	}
	if st.Turn() != "b" {
		t.Fatal("turn must not advance past a pending reward")
	}
	ev, _ := r.last(EventRewardAvailable)
	if !ev.Payload.(RewardAvailablePayload).NeedsChoice {
		t.Fatal("steal-cash should need a choice")
	}

	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Decline: true}); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if st.Pending != nil {
		t.Fatal("decline should clear the pending reward")
	}
	done, _ := r.last(EventRewardExecuted)
	if !done.Payload.(RewardExecutedPayload).Declined {
		t.Fatal("decline was not reported")
	}
	if g.Players["b"].Cash != 10 || g.Players["a"].Cash != 10 {
		t.Fatal("declined reward must not move cash")
	}
}

func TestGoalStealCashCapsAtTargetCash(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardStealCash{Amount: 5}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	g.Players["c"].Cash = 2
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Target: "c"}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if g.Players["c"].Cash != 0 {
		t.Fatalf("target cash = %d, want 0", g.Players["c"].Cash)
	}
	if g.Players["b"].Cash != 12 {
		t.Fatalf("thief cash = %d, want 12", g.Players["b"].Cash)
	}
}

func TestGoalStealCashNeedsAnotherPlayer(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardStealCash{Amount: 2}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	err := e.ExecuteReward(g, "b", domain.RewardChoice{Target: "b"})
	if !IsRejection(err) {
		t.Fatalf("self-target = %v, want rejection", err)
	}
	st := g.PhaseState.(*domain.GoalState)
	if st.Pending == nil {
		t.Fatal("a rejected choice must leave the reward pending")
	}
}

func TestGoalAdjustPriceValidatesChoice(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardAdjustPrice{}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Color: domain.Blue, Delta: 2}); !IsRejection(err) {
		t.Fatalf("delta 2 = %v, want rejection", err)
	}
	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Color: "Green", Delta: 1}); !IsRejection(err) {
		t.Fatalf("bad color = %v, want rejection", err)
	}

	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Color: domain.Blue, Delta: -1}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if g.Prices[domain.Blue] != 3 {
		t.Fatalf("Blue price = %d, want 3", g.Prices[domain.Blue])
	}
}

func TestGoalBuyLowestStock(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardBuyStock{Discount: 1, LowestOnly: true}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	g.Prices[domain.Blue] = 2
	g.Resources.Draw = newCards(domain.Orange, domain.Blue)
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	// Orange is not among the lowest-priced colors.
	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Color: domain.Orange}); !IsRejection(err) {
		t.Fatalf("non-lowest color = %v, want rejection", err)
	}

	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Color: domain.Blue}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	b := g.Players["b"]
	if len(b.Hand) != 1 || b.Hand[0].Color != domain.Blue {
		t.Fatalf("hand = %v, want one Blue card", b.Hand)
	}
	if b.Cash != 9 { // price 2 minus discount 1
		t.Fatalf("cash = %d, want 9", b.Cash)
	}
}

func TestGoalBuyStockNoCardIsFreeNoOp(t *testing.T) {
	g, e, r := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardBuyStock{Discount: 1, LowestOnly: false}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	g.Resources.Draw = newCards(domain.Orange) // no Blue to buy
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Color: domain.Blue}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	b := g.Players["b"]
	if len(b.Hand) != 0 || b.Cash != 10 {
		t.Fatalf("no card should mean no purchase: hand=%d cash=%d", len(b.Hand), b.Cash)
	}
	if r.count(EventRewardExecuted) != 1 {
		t.Fatal("the reward is still spent")
	}
}

func TestGoalSwapDeckEmptyDrawRejects(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardSwapDeck{}, nil)
	b := g.Players["b"]
	b.Goals = []*domain.GoalCard{goal}
	b.Hand = newCards(domain.Purple)
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	err := e.ExecuteReward(g, "b", domain.RewardChoice{CardID: b.Hand[0].ID})
	if !IsRejection(err) {
		t.Fatalf("swap against empty draw = %v, want rejection", err)
	}
	if len(b.Hand) != 1 {
		t.Fatal("a failed swap must not touch the hand")
	}
}

func TestGoalSwapDeckExchangesWithTop(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardSwapDeck{}, nil)
	b := g.Players["b"]
	b.Goals = []*domain.GoalCard{goal}
	b.Hand = newCards(domain.Purple)
	g.Resources.Draw = newCards(domain.Blue)
	given := b.Hand[0].ID
	top := g.Resources.Draw[0].ID
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if err := e.ExecuteReward(g, "b", domain.RewardChoice{CardID: given}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if len(b.Hand) != 1 || b.Hand[0].ID != top {
		t.Fatalf("hand = %v, want the former top card", b.Hand)
	}
	if g.Resources.Draw[0].ID != given {
		t.Fatalf("draw top = %s, want the given card", g.Resources.Draw[0].ID)
	}
}

func TestGoalRearrangeTopBadOrderStaysPending(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardRearrangeTop{Count: 2}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	g.Resources.Draw = newCards(domain.Blue, domain.Orange, domain.Yellow)
	first, second := g.Resources.Draw[0].ID, g.Resources.Draw[1].ID
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	err := e.ExecuteReward(g, "b", domain.RewardChoice{Order: []string{"nope", first}})
	if !IsRejection(err) {
		t.Fatalf("foreign id = %v, want rejection", err)
	}
	st := g.PhaseState.(*domain.GoalState)
	if st.Pending == nil {
		t.Fatal("a rejected order must leave the reward pending")
	}

	// An order covering less than the peeked window is a mismatch, not a
	// partial reorder.
	err = e.ExecuteReward(g, "b", domain.RewardChoice{Order: []string{first}})
	if !IsRejection(err) {
		t.Fatalf("short order = %v, want rejection", err)
	}
	if g.Resources.Draw[0].ID != first || st.Pending == nil {
		t.Fatal("a short order must change nothing and stay pending")
	}

	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Order: []string{second, first}}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if g.Resources.Draw[0].ID != second || g.Resources.Draw[1].ID != first {
		t.Fatalf("draw order = %v, want the chosen order", g.Resources.Draw)
	}
}

func TestGoalTakeGiveSwapsCards(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardTakeGive{}, nil)
	b, c := g.Players["b"], g.Players["c"]
	b.Goals = []*domain.GoalCard{goal}
	b.Hand = newCards(domain.Purple)
	c.Hand = newCards(domain.Blue)
	given, taken := b.Hand[0].ID, c.Hand[0].ID
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if err := e.ExecuteReward(g, "b", domain.RewardChoice{Target: "c", CardID: given}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if _, ok := b.CardByID(taken); !ok {
		t.Fatal("owner did not receive the taken card")
	}
	if _, ok := c.CardByID(given); !ok {
		t.Fatal("target did not receive the given card")
	}
}

func TestGoalSellBonusAccrues(t *testing.T) {
	g, e, _ := goalFixture(t)
	goal := newGoal(metAlways(), domain.RewardSellBonus{Amount: 2}, nil)
	g.Players["b"].Goals = []*domain.GoalCard{goal}
	e.Begin(g)

	if err := e.Reveal(g, "b", goal.ID); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if g.Players["b"].SellBonus != 2 {
		t.Fatalf("sell bonus = %d, want 2", g.Players["b"].SellBonus)
	}
}

func TestGoalPhaseWalksTheWholeOrder(t *testing.T) {
	g, e, r := goalFixture(t)
	goals := map[string]*domain.GoalCard{}
	for _, id := range []string{"a", "b", "c"} {
		goals[id] = newGoal(metAlways(), domain.RewardGainCash{Amount: 1}, nil)
		g.Players[id].Goals = []*domain.GoalCard{goals[id]}
	}
	e.Begin(g)

	for _, id := range []string{"b", "c", "a"} {
		st := g.PhaseState.(*domain.GoalState)
		if st.Turn() != id {
			t.Fatalf("turn = %s, want %s", st.Turn(), id)
		}
		if err := e.Reveal(g, id, goals[id].ID); err != nil {
			t.Fatalf("reveal failed: %v", err)
		}
	}

	if !e.Complete(g) {
		t.Fatal("phase should be complete after the full rotation")
	}
	if r.count(EventGoalsComplete) != 1 {
		t.Fatalf("goals-complete events = %d, want 1", r.count(EventGoalsComplete))
	}
}
