package app

import "stockpile/internal/domain"

// PlayerView is the player-scoped projection of game state: the one
// sanctioned shape for exposing state to an AI or remote client. Other
// players' hand colors are replaced by a hidden marker (counts preserved)
// and their unrevealed goal cards are redacted.
type PlayerView struct {
	Phase  domain.Phase         `json:"phase"`
	Round  int                  `json:"round"`
	Prices map[domain.Color]int `json:"prices"`
	You    SelfView             `json:"you"`
	Others []OpponentView       `json:"others"`
	Deck   DeckView             `json:"deck"`
	Table  TableView            `json:"table"`
}

// SelfView is the requesting player's own unredacted state.
type SelfView struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Seat        int        `json:"seat"`
	Cash        int        `json:"cash"`
	Hand        []CardView `json:"hand"`
	Goals       []GoalView `json:"goals"`
	SellBonus   int        `json:"sell_bonus"`
}

// OpponentView redacts another player's private holdings.
type OpponentView struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Seat        int        `json:"seat"`
	Cash        int        `json:"cash"`
	Hand        []CardView `json:"hand"` // colors hidden, count preserved
	Goals       []GoalView `json:"goals"`
}

type CardView struct {
	ID    string       `json:"id,omitempty"`
	Color domain.Color `json:"color"`
}

// GoalView redacts goal card content until the card is revealed (except for
// the owner, who always sees their own).
type GoalView struct {
	ID        string               `json:"id,omitempty"`
	Revealed  bool                 `json:"revealed"`
	Text      string               `json:"text,omitempty"`
	StockText string               `json:"stock_text,omitempty"`
	Effect    map[domain.Color]int `json:"effect,omitempty"`
}

type DeckView struct {
	DrawCount    int `json:"draw_count"`
	DiscardCount int `json:"discard_count"`
}

// TableView carries the public slice of the current phase's working state.
type TableView struct {
	DealerSeat int                `json:"dealer_seat"`
	Auction    *AuctionTableView  `json:"auction,omitempty"`
	Offers     []OfferView        `json:"offers,omitempty"`
	GoalTurn   string             `json:"goal_turn,omitempty"`
	Pending    *PendingRewardView `json:"pending_reward,omitempty"`
	Committed  map[string]bool    `json:"committed,omitempty"`
}

type AuctionTableView struct {
	Card       domain.ResourceCard `json:"card"`
	Remaining  int                 `json:"remaining"`
	HighBid    int                 `json:"high_bid"`
	HighBidder string              `json:"high_bidder,omitempty"`
	Active     []string            `json:"active"`
	Turn       string              `json:"turn"`
}

type OfferView struct {
	ID            string               `json:"id"`
	From          string               `json:"from"`
	OfferCards    []CardView           `json:"offer_cards"`
	OfferCash     int                  `json:"offer_cash"`
	RequestColors map[domain.Color]int `json:"request_colors"`
	RequestCash   int                  `json:"request_cash"`
}

type PendingRewardView struct {
	Player string `json:"player"`
	GoalID string `json:"goal_id"`
}

// ViewFor builds the filtered view for one player. It reads state without
// mutating, so back-to-back calls yield equal results.
func (s *Service) ViewFor(playerID string) (*PlayerView, error) {
	if s.game == nil {
		return nil, ErrNotSetUp
	}
	g := s.game
	me, ok := g.Players[playerID]
	if !ok {
		return nil, Reject("unknown player %s", playerID)
	}

	view := &PlayerView{
		Phase:  g.Phase,
		Round:  g.Round,
		Prices: map[domain.Color]int(g.Prices),
		You: SelfView{
			ID:          me.ID,
			DisplayName: me.DisplayName,
			Seat:        me.Seat,
			Cash:        me.Cash,
			Hand:        ownCards(me.Hand),
			Goals:       goalViews(me.Goals, true),
			SellBonus:   me.SellBonus,
		},
		Deck: DeckView{
			DrawCount:    len(g.Resources.Draw),
			DiscardCount: len(g.Resources.Discard),
		},
		Table: TableView{DealerSeat: g.DealerSeat},
	}

	for _, id := range g.Order {
		if id == playerID {
			continue
		}
		other := g.Players[id]
		view.Others = append(view.Others, OpponentView{
			ID:          other.ID,
			DisplayName: other.DisplayName,
			Seat:        other.Seat,
			Cash:        other.Cash,
			Hand:        hiddenCards(other.Hand),
			Goals:       goalViews(other.Goals, false),
		})
	}

	switch st := g.PhaseState.(type) {
	case *domain.AuctionState:
		if card := st.Current(); card != nil {
			view.Table.Auction = &AuctionTableView{
				Card:       *card,
				Remaining:  len(st.Queue) - st.Index - 1,
				HighBid:    st.HighBid,
				HighBidder: st.HighBidder,
				Active:     append([]string{}, st.Active...),
				Turn:       st.Turn,
			}
		}
	case *domain.TradingState:
		for _, offer := range st.Offers {
			if offer.Status != domain.OfferActive {
				continue
			}
			view.Table.Offers = append(view.Table.Offers, offerView(g, offer))
		}
	case *domain.GoalState:
		view.Table.GoalTurn = st.Turn()
		if st.Pending != nil {
			view.Table.Pending = &PendingRewardView{Player: st.Pending.PlayerID, GoalID: st.Pending.GoalID}
		}
	case *domain.SellState:
		committed := make(map[string]bool, len(g.Order))
		for _, id := range g.Order {
			committed[id] = st.Committed[id]
		}
		view.Table.Committed = committed
	}

	return view, nil
}

func ownCards(hand []domain.ResourceCard) []CardView {
	out := make([]CardView, 0, len(hand))
	for _, card := range hand {
		out = append(out, CardView{ID: card.ID, Color: card.Color})
	}
	return out
}

// hiddenCards preserves the count but masks identity and color.
func hiddenCards(hand []domain.ResourceCard) []CardView {
	out := make([]CardView, 0, len(hand))
	for range hand {
		out = append(out, CardView{Color: domain.ColorHidden})
	}
	return out
}

func goalViews(goals []*domain.GoalCard, owner bool) []GoalView {
	out := make([]GoalView, 0, len(goals))
	for _, goal := range goals {
		out = append(out, goalView(goal, owner || goal.Revealed))
	}
	return out
}

// goalView redacts the card's content unless withContent is set; the
// revealed flag is always visible.
func goalView(goal *domain.GoalCard, withContent bool) GoalView {
	if !withContent {
		return GoalView{Revealed: goal.Revealed}
	}
	return GoalView{
		ID:        goal.ID,
		Revealed:  goal.Revealed,
		Text:      goal.Text,
		StockText: goal.StockText,
		Effect:    goal.Effect,
	}
}

// offerView shows offered cards by color; the concrete ids matter only to
// the engine.
func offerView(g *domain.Game, offer *domain.TradeOffer) OfferView {
	proposer := g.Players[offer.From]
	cards := make([]CardView, 0, len(offer.OfferCardIDs))
	for _, id := range offer.OfferCardIDs {
		if card, ok := proposer.CardByID(id); ok {
			cards = append(cards, CardView{Color: card.Color})
		}
	}
	return OfferView{
		ID:            offer.ID,
		From:          offer.From,
		OfferCards:    cards,
		OfferCash:     offer.OfferCash,
		RequestColors: offer.RequestColors,
		RequestCash:   offer.RequestCash,
	}
}
