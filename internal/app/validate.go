package app

import (
	"errors"
	"fmt"

	"stockpile/internal/domain"
)

// Rejection is a validation failure: the action was refused before any
// mutation, with a human-readable reason. The caller may retry with a
// corrected action.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// Reject builds a Rejection with a formatted reason.
func Reject(format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err is a validation rejection rather than a
// protocol or internal error.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

// Validate gates every inbound action against current state. It never
// mutates. Unknown action kinds pass trivially; the dispatcher rejects them
// as unrecognized.
func Validate(g *domain.Game, act Action) error {
	switch a := act.(type) {
	case PlaceBid:
		return validateBid(g, a)
	case Pass:
		return validatePass(g, a)
	case ProposeTrade:
		return validatePropose(g, a)
	case AcceptTrade:
		return validateAccept(g, a)
	case CancelTrade:
		return validateCancel(g, a)
	case EndTrading:
		return validateEndTrading(g, a)
	case RevealGoal:
		return validateReveal(g, a)
	case ExecuteReward:
		return validateExecuteReward(g, a)
	case SelectSell:
		return validateSelectSell(g, a)
	case CommitSell:
		return validateCommitSell(g, a)
	}
	return nil
}

func auctionState(g *domain.Game) (*domain.AuctionState, error) {
	if g.Phase != domain.PhaseAuction {
		return nil, Reject("not in the auction phase")
	}
	st, ok := g.PhaseState.(*domain.AuctionState)
	if !ok {
		return nil, fmt.Errorf("auction phase has no auction state")
	}
	return st, nil
}

func tradingState(g *domain.Game) (*domain.TradingState, error) {
	if g.Phase != domain.PhaseTrading {
		return nil, Reject("not in the trading phase")
	}
	st, ok := g.PhaseState.(*domain.TradingState)
	if !ok {
		return nil, fmt.Errorf("trading phase has no trading state")
	}
	return st, nil
}

func goalState(g *domain.Game) (*domain.GoalState, error) {
	if g.Phase != domain.PhaseGoals {
		return nil, Reject("not in the goal resolution phase")
	}
	st, ok := g.PhaseState.(*domain.GoalState)
	if !ok {
		return nil, fmt.Errorf("goal phase has no goal state")
	}
	return st, nil
}

func sellState(g *domain.Game) (*domain.SellState, error) {
	if g.Phase != domain.PhaseSell {
		return nil, Reject("not in the sell phase")
	}
	st, ok := g.PhaseState.(*domain.SellState)
	if !ok {
		return nil, fmt.Errorf("sell phase has no sell state")
	}
	return st, nil
}

func validateBid(g *domain.Game, a PlaceBid) error {
	st, err := auctionState(g)
	if err != nil {
		return err
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return Reject("unknown player %s", a.Player)
	}
	if !st.IsActive(a.Player) {
		return Reject("%s has already passed on this card", a.Player)
	}
	if a.Amount <= st.HighBid {
		return Reject("bid of $%d does not beat the current bid of $%d", a.Amount, st.HighBid)
	}
	if p.Cash < a.Amount {
		return Reject("bid of $%d exceeds available cash of $%d", a.Amount, p.Cash)
	}
	return nil
}

func validatePass(g *domain.Game, a Pass) error {
	st, err := auctionState(g)
	if err != nil {
		return err
	}
	if _, ok := g.Players[a.Player]; !ok {
		return Reject("unknown player %s", a.Player)
	}
	if !st.IsActive(a.Player) {
		return Reject("%s has already passed on this card", a.Player)
	}
	if st.HighBidder == a.Player {
		return Reject("the high bidder cannot withdraw")
	}
	return nil
}

func validatePropose(g *domain.Game, a ProposeTrade) error {
	if _, err := tradingState(g); err != nil {
		return err
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return Reject("unknown player %s", a.Player)
	}
	if len(a.OfferCardIDs) == 0 && a.OfferCash <= 0 {
		return Reject("an offer must include cards or cash")
	}
	if len(a.RequestColors) == 0 && a.RequestCash <= 0 {
		return Reject("a request must include cards or cash")
	}
	if a.OfferCash < 0 || a.RequestCash < 0 {
		return Reject("cash amounts cannot be negative")
	}
	for color, n := range a.RequestColors {
		if !domain.ValidColor(color) {
			return Reject("%s is not a color", color)
		}
		if n <= 0 {
			return Reject("requested count for %s must be positive", color)
		}
	}
	if !p.HasCards(a.OfferCardIDs) {
		return Reject("offer includes cards %s does not hold", a.Player)
	}
	if p.Cash < a.OfferCash {
		return Reject("offer of $%d exceeds available cash of $%d", a.OfferCash, p.Cash)
	}
	return nil
}

func validateAccept(g *domain.Game, a AcceptTrade) error {
	st, err := tradingState(g)
	if err != nil {
		return err
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return Reject("unknown player %s", a.Player)
	}
	offer, ok := st.OfferByID(a.OfferID)
	if !ok {
		return Reject("offer %s does not exist", a.OfferID)
	}
	if offer.Status != domain.OfferActive {
		return Reject("offer %s is no longer active", a.OfferID)
	}
	if offer.From == a.Player {
		return Reject("cannot accept your own offer")
	}
	counts := domain.CountColors(p.Hand)
	for color, need := range offer.RequestColors {
		if counts[color] < need {
			return Reject("offer requests %d %s, %s holds %d", need, color, a.Player, counts[color])
		}
	}
	if p.Cash < offer.RequestCash {
		return Reject("offer requests $%d, %s has $%d", offer.RequestCash, a.Player, p.Cash)
	}
	return nil
}

func validateCancel(g *domain.Game, a CancelTrade) error {
	st, err := tradingState(g)
	if err != nil {
		return err
	}
	offer, ok := st.OfferByID(a.OfferID)
	if !ok {
		return Reject("offer %s does not exist", a.OfferID)
	}
	if offer.Status != domain.OfferActive {
		return Reject("offer %s is no longer active", a.OfferID)
	}
	if offer.From != a.Player {
		return Reject("offer %s does not belong to %s", a.OfferID, a.Player)
	}
	return nil
}

func validateEndTrading(g *domain.Game, a EndTrading) error {
	_, err := tradingState(g)
	return err
}

func validateReveal(g *domain.Game, a RevealGoal) error {
	st, err := goalState(g)
	if err != nil {
		return err
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return Reject("unknown player %s", a.Player)
	}
	if st.Pending != nil {
		return Reject("a reward is still pending")
	}
	if st.Turn() != a.Player {
		return Reject("it is not %s's turn to reveal", a.Player)
	}
	goal, ok := p.GoalByID(a.GoalID)
	if !ok {
		return Reject("goal card %s does not belong to %s", a.GoalID, a.Player)
	}
	if goal.Revealed {
		return Reject("goal card %s is already revealed", a.GoalID)
	}
	return nil
}

func validateExecuteReward(g *domain.Game, a ExecuteReward) error {
	st, err := goalState(g)
	if err != nil {
		return err
	}
	if st.Pending == nil {
		return Reject("no reward is pending")
	}
	if st.Pending.PlayerID != a.Player {
		return Reject("the pending reward does not belong to %s", a.Player)
	}
	return nil
}

func validateSelectSell(g *domain.Game, a SelectSell) error {
	st, err := sellState(g)
	if err != nil {
		return err
	}
	p, ok := g.Players[a.Player]
	if !ok {
		return Reject("unknown player %s", a.Player)
	}
	if st.Committed[a.Player] {
		return Reject("%s has already committed their sells", a.Player)
	}
	seen := make(map[string]bool, len(a.CardIDs))
	for _, id := range a.CardIDs {
		if seen[id] {
			return Reject("card %s selected twice", id)
		}
		seen[id] = true
		if _, ok := p.CardByID(id); !ok {
			return Reject("card %s is not in %s's hand", id, a.Player)
		}
	}
	return nil
}

func validateCommitSell(g *domain.Game, a CommitSell) error {
	st, err := sellState(g)
	if err != nil {
		return err
	}
	if _, ok := g.Players[a.Player]; !ok {
		return Reject("unknown player %s", a.Player)
	}
	if st.Committed[a.Player] {
		return Reject("%s has already committed their sells", a.Player)
	}
	return nil
}
