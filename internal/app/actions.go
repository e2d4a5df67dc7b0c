package app

import "stockpile/internal/domain"

// Action kind names, as they appear on the wire and in rejection events.
const (
	KindPlaceBid      = "place_bid"
	KindPass          = "pass"
	KindProposeTrade  = "propose_trade"
	KindAcceptTrade   = "accept_trade"
	KindCancelTrade   = "cancel_trade"
	KindEndTrading    = "end_trading"
	KindRevealGoal    = "reveal_goal"
	KindExecuteReward = "execute_reward"
	KindSelectSell    = "select_cards_to_sell"
	KindCommitSell    = "commit_sell"
)

// Action is the closed set of inbound player actions. Dispatch sites type
// switch over every concrete kind; an unhandled kind is a hard error, never a
// silent default.
type Action interface {
	Actor() string
	Kind() string
	isAction()
}

// PlaceBid raises the current auction bid.
type PlaceBid struct {
	Player string
	Amount int
}

// Pass removes the player from bidding on the current auction card.
type Pass struct {
	Player string
}

// ProposeTrade posts a standing offer: concrete cards plus cash against
// color-counted cards plus cash.
type ProposeTrade struct {
	Player        string
	OfferCardIDs  []string
	OfferCash     int
	RequestColors map[domain.Color]int
	RequestCash   int
}

// AcceptTrade accepts another player's active offer.
type AcceptTrade struct {
	Player  string
	OfferID string
}

// CancelTrade withdraws the player's own active offer.
type CancelTrade struct {
	Player  string
	OfferID string
}

// EndTrading signals the end of the trading phase. Countdown timers live in
// the hosting layer and arrive through this same action.
type EndTrading struct {
	Player string
}

// RevealGoal reveals one of the player's goal cards on their turn.
type RevealGoal struct {
	Player string
	GoalID string
}

// ExecuteReward supplies the choice for the player's pending reward.
type ExecuteReward struct {
	Player string
	Choice domain.RewardChoice
}

// SelectSell replaces the player's current sell selection.
type SelectSell struct {
	Player  string
	CardIDs []string
}

// CommitSell locks in the player's sell selection.
type CommitSell struct {
	Player string
}

func (a PlaceBid) Actor() string      { return a.Player }
func (a Pass) Actor() string          { return a.Player }
func (a ProposeTrade) Actor() string  { return a.Player }
func (a AcceptTrade) Actor() string   { return a.Player }
func (a CancelTrade) Actor() string   { return a.Player }
func (a EndTrading) Actor() string    { return a.Player }
func (a RevealGoal) Actor() string    { return a.Player }
func (a ExecuteReward) Actor() string { return a.Player }
func (a SelectSell) Actor() string    { return a.Player }
func (a CommitSell) Actor() string    { return a.Player }

func (PlaceBid) Kind() string      { return KindPlaceBid }
func (Pass) Kind() string          { return KindPass }
func (ProposeTrade) Kind() string  { return KindProposeTrade }
func (AcceptTrade) Kind() string   { return KindAcceptTrade }
func (CancelTrade) Kind() string   { return KindCancelTrade }
func (EndTrading) Kind() string    { return KindEndTrading }
func (RevealGoal) Kind() string    { return KindRevealGoal }
func (ExecuteReward) Kind() string { return KindExecuteReward }
func (SelectSell) Kind() string    { return KindSelectSell }
func (CommitSell) Kind() string    { return KindCommitSell }

func (PlaceBid) isAction()      {}
func (Pass) isAction()          {}
func (ProposeTrade) isAction()  {}
func (AcceptTrade) isAction()   {}
func (CancelTrade) isAction()   {}
func (EndTrading) isAction()    {}
func (RevealGoal) isAction()    {}
func (ExecuteReward) isAction() {}
func (SelectSell) isAction()    {}
func (CommitSell) isAction()    {}
