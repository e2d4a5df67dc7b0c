package bot

import (
	"stockpile/internal/app"
	"stockpile/internal/domain"
)

// Baseline is the naive built-in strategy used to fill empty seats: it opens
// bidding at $1 and otherwise passes, never trades, reveals goals in hand
// order, declines interactive rewards, and sells its whole hand. Every move
// it makes is legal; none of them are clever.
type Baseline struct {
	selectedRound int
}

// NewBaseline returns a fresh baseline strategy.
func NewBaseline() *Baseline {
	return &Baseline{}
}

// Decide implements Brain.
func (b *Baseline) Decide(view *app.PlayerView) (app.Action, error) {
	me := view.You.ID
	switch view.Phase {
	case domain.PhaseAuction:
		auction := view.Table.Auction
		if auction == nil || auction.Turn != me {
			return nil, nil
		}
		if auction.HighBid == 0 && view.You.Cash >= 1 {
			return app.PlaceBid{Player: me, Amount: 1}, nil
		}
		return app.Pass{Player: me}, nil

	case domain.PhaseTrading:
		// Waits out the trading countdown.
		return nil, nil

	case domain.PhaseGoals:
		if pending := view.Table.Pending; pending != nil {
			if pending.Player != me {
				return nil, nil
			}
			return app.ExecuteReward{Player: me, Choice: domain.RewardChoice{Decline: true}}, nil
		}
		if view.Table.GoalTurn != me {
			return nil, nil
		}
		for _, goal := range view.You.Goals {
			if !goal.Revealed {
				return app.RevealGoal{Player: me, GoalID: goal.ID}, nil
			}
		}
		return nil, nil

	case domain.PhaseSell:
		if view.Table.Committed[me] {
			return nil, nil
		}
		if b.selectedRound != view.Round && len(view.You.Hand) > 0 {
			b.selectedRound = view.Round
			ids := make([]string, 0, len(view.You.Hand))
			for _, card := range view.You.Hand {
				ids = append(ids, card.ID)
			}
			return app.SelectSell{Player: me, CardIDs: ids}, nil
		}
		return app.CommitSell{Player: me}, nil
	}
	return nil, nil
}
