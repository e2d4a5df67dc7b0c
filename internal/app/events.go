package app

import "stockpile/internal/domain"

// EventKind identifies emitted engine events.
type EventKind string

const (
	// Lifecycle
	EventGameInitialized EventKind = "game_initialized"
	EventGameStarted     EventKind = "game_started"
	EventGameEnded       EventKind = "game_ended"
	EventPhaseChanged    EventKind = "phase_changed"

	// Auction
	EventAuctionStarted  EventKind = "auction_started"
	EventAuctionCardUp   EventKind = "auction_card_up"
	EventBidPlaced       EventKind = "bid_placed"
	EventPlayerPassed    EventKind = "player_passed"
	EventCardWon         EventKind = "card_won"
	EventCardUnsold      EventKind = "card_unsold"
	EventAuctionComplete EventKind = "auction_complete"

	// Trading
	EventTradeProposed  EventKind = "trade_proposed"
	EventTradeAccepted  EventKind = "trade_accepted"
	EventTradeCancelled EventKind = "trade_cancelled"
	EventTradeCompleted EventKind = "trade_completed"

	// Goal resolution
	EventGoalsStarted    EventKind = "goal_resolution_started"
	EventGoalRevealed    EventKind = "goal_revealed"
	EventMarketUpdated   EventKind = "market_updated"
	EventGoalChecked     EventKind = "goal_checked"
	EventRewardAvailable EventKind = "reward_available"
	EventRewardExecuted  EventKind = "reward_executed"
	EventPlayerGoalDone  EventKind = "player_goal_complete"
	EventGoalsComplete   EventKind = "goal_resolution_complete"

	// Sell
	EventSellStarted     EventKind = "sell_started"
	EventCardsSelected   EventKind = "cards_selected"
	EventPlayerCommitted EventKind = "player_committed"
	EventAllCommitted    EventKind = "all_committed"
	EventSellsRevealed   EventKind = "sells_revealed"
	EventSellComplete    EventKind = "sell_complete"

	// Cross-cutting
	EventCashChanged    EventKind = "player_cash_changed"
	EventDeckShuffled   EventKind = "deck_shuffled"
	EventCardsDrawn     EventKind = "cards_drawn"
	EventActionRejected EventKind = "action_rejected"

	// Private (always targeted via Recipients)
	EventHandDealt     EventKind = "hand_dealt"
	EventGoalsDealt    EventKind = "goals_dealt"
	EventPeekResult    EventKind = "peek_result"
	EventHandInspected EventKind = "hand_inspected"
)

// Event is an engine event with optional targeted recipients. An empty
// Recipients list means broadcast.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string
}

type PhaseChangedPayload struct {
	From  domain.Phase
	To    domain.Phase
	Round int
}

type GameEndedPayload struct {
	Standings []domain.Standing
}

type AuctionStartedPayload struct {
	Round int
	Cards int
}

type AuctionCardUpPayload struct {
	Card      domain.ResourceCard
	Index     int
	Remaining int
	FirstTurn string
}

type BidPlacedPayload struct {
	Player   string
	Amount   int
	NextTurn string
}

type PlayerPassedPayload struct {
	Player   string
	NextTurn string
}

type CardWonPayload struct {
	Player string
	Card   domain.ResourceCard
	Amount int
}

type CardUnsoldPayload struct {
	Card domain.ResourceCard
}

type TradeProposedPayload struct {
	OfferID       string
	From          string
	OfferCards    []domain.ResourceCard
	OfferCash     int
	RequestColors map[domain.Color]int
	RequestCash   int
}

type TradeAcceptedPayload struct {
	OfferID string
	By      string
}

type TradeCancelledPayload struct {
	OfferID string
	By      string
	Auto    bool
}

type TradeCompletedPayload struct {
	OfferID string
	From    string
	To      string
}

type GoalsStartedPayload struct {
	Order []string
}

type GoalRevealedPayload struct {
	Player string
	Goal   GoalView
}

type MarketUpdatedPayload struct {
	Changes map[domain.Color]int // colors whose price moved, new values
	Prices  domain.Prices
}

type GoalCheckedPayload struct {
	Player string
	GoalID string
	Met    bool
}

type RewardAvailablePayload struct {
	Player      string
	GoalID      string
	NeedsChoice bool
}

type RewardExecutedPayload struct {
	Player   string
	GoalID   string
	Declined bool
}

type PlayerGoalDonePayload struct {
	Player string
}

type CardsSelectedPayload struct {
	Player string
	Count  int
}

type PlayerCommittedPayload struct {
	Player string
}

type SellResult struct {
	Player   string
	Cards    []domain.ResourceCard
	Earnings int
}

type SellsRevealedPayload struct {
	Results []SellResult
}

type CashChangedPayload struct {
	Player string
	Delta  int
	Cash   int
}

type DeckShuffledPayload struct {
	Cards int
}

type CardsDrawnPayload struct {
	Count int
	Short bool
}

type ActionRejectedPayload struct {
	Player string
	Kind   string
	Reason string
}

type HandDealtPayload struct {
	Player string
	Cards  []domain.ResourceCard
}

type GoalsDealtPayload struct {
	Player string
	Goals  []GoalView
}

type PeekResultPayload struct {
	Player string
	Cards  []domain.ResourceCard
}

type HandInspectedPayload struct {
	Player string
	Target string
	Cards  []domain.ResourceCard
}
