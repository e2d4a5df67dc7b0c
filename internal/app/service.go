package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"stockpile/internal/domain"
)

// Service is the engine facade: setup, action dispatch and read access for
// one table. It processes one action at a time to completion; a concurrent
// host must serialize calls into it.
type Service struct {
	rng *rand.Rand
	bus *Bus

	auction  *AuctionEngine
	trading  *TradingEngine
	goals    *GoalEngine
	sell     *SellEngine
	director *Director

	game    *domain.Game
	started bool
}

var (
	ErrNotSetUp       = errors.New("game has not been set up")
	ErrAlreadySetUp   = errors.New("game is already set up")
	ErrNotStarted     = errors.New("game has not started")
	ErrAlreadyStarted = errors.New("game has already started")
	ErrTooFewPlayers  = errors.New("not enough players")
	ErrGameOver       = errors.New("game is over")
)

// Seat describes one player joining at setup.
type Seat struct {
	PlayerID    string
	DisplayName string
}

// NewService constructs a facade with the provided rng or a time-seeded
// default. Subscribers registered on the returned bus see every event.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	bus := NewBus()
	s := &Service{
		rng:     rng,
		bus:     bus,
		auction: NewAuctionEngine(bus),
		trading: NewTradingEngine(bus),
		sell:    NewSellEngine(bus),
	}
	s.goals = NewGoalEngine(bus, rng)
	s.director = NewDirector(bus, s.auction, s.trading, s.goals, s.sell)
	return s
}

// Bus exposes the notification bus for subscribers.
func (s *Service) Bus() *Bus { return s.bus }

// Setup builds the initial game state: the resource deck, shuffled and dealt,
// goal cards dealt from the catalog, starting cash and prices. Calling it
// twice is a programmer error.
func (s *Service) Setup(seats []Seat, catalog []*domain.GoalCard, rules domain.Rules) error {
	if s.game != nil {
		return ErrAlreadySetUp
	}
	if len(seats) < 2 {
		return ErrTooFewPlayers
	}
	if len(catalog) < len(seats)*rules.GoalsPerPlayer {
		return fmt.Errorf("catalog has %d goal cards, need %d", len(catalog), len(seats)*rules.GoalsPerPlayer)
	}

	deck := &domain.Deck{}
	for _, color := range domain.Colors() {
		for i := 0; i < rules.CardsPerColor; i++ {
			deck.Draw = append(deck.Draw, domain.ResourceCard{ID: uuid.NewString(), Color: color})
		}
	}
	deck.Shuffle(s.rng)

	g := &domain.Game{
		Rules:     rules,
		Round:     0,
		Order:     make([]string, 0, len(seats)),
		Players:   make(map[string]*domain.Player, len(seats)),
		Prices:    domain.InitialPrices(rules.StartPrice),
		Resources: deck,
	}

	goalIdx := 0
	shuffledGoals := append([]*domain.GoalCard{}, catalog...)
	s.rng.Shuffle(len(shuffledGoals), func(i, j int) {
		shuffledGoals[i], shuffledGoals[j] = shuffledGoals[j], shuffledGoals[i]
	})

	for seat, spec := range seats {
		hand, short := deck.DrawCards(rules.HandSize)
		if short {
			return fmt.Errorf("deck too small to deal %d cards each", rules.HandSize)
		}
		p := &domain.Player{
			ID:          spec.PlayerID,
			DisplayName: spec.DisplayName,
			Seat:        seat,
			Cash:        rules.StartingCash,
			Hand:        hand,
		}
		for i := 0; i < rules.GoalsPerPlayer; i++ {
			p.Goals = append(p.Goals, shuffledGoals[goalIdx])
			goalIdx++
		}
		g.Order = append(g.Order, spec.PlayerID)
		g.Players[spec.PlayerID] = p
	}

	s.game = g
	s.bus.Publish(Event{Kind: EventDeckShuffled, Payload: DeckShuffledPayload{Cards: deck.Size()}})
	s.bus.Publish(Event{Kind: EventGameInitialized})
	for _, id := range g.Order {
		p := g.Players[id]
		s.bus.Publish(Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Player: id, Cards: append([]domain.ResourceCard{}, p.Hand...)},
			Recipients: []string{id},
		})
		s.bus.Publish(Event{
			Kind:       EventGoalsDealt,
			Payload:    GoalsDealtPayload{Player: id, Goals: goalViews(p.Goals, true)},
			Recipients: []string{id},
		})
	}
	return nil
}

// Start begins round one at the auction phase.
func (s *Service) Start() error {
	if s.game == nil {
		return ErrNotSetUp
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.game.Round = 1
	s.bus.Publish(Event{Kind: EventGameStarted})
	s.director.StartRound(s.game)
	return nil
}

// Dispatch validates and applies one action, then auto-advances the phase
// machine. Validation failures return a *Rejection and fire an
// action-rejected event with the reason; state is untouched. Calling before
// setup or start is a fatal protocol error, not a rejection.
func (s *Service) Dispatch(act Action) error {
	if s.game == nil {
		return ErrNotSetUp
	}
	if !s.started {
		return ErrNotStarted
	}
	if s.game.Phase == domain.PhaseEnded {
		return ErrGameOver
	}

	if err := Validate(s.game, act); err != nil {
		return s.reject(act, err)
	}
	if err := s.apply(act); err != nil {
		return s.reject(act, err)
	}

	s.game.History = append(s.game.History, domain.ActionRecord{
		Kind:   act.Kind(),
		Player: act.Actor(),
		Round:  s.game.Round,
		Phase:  s.game.Phase,
	})
	s.director.Advance(s.game)
	return nil
}

// apply routes a validated action to its engine. The switch is exhaustive
// over the closed action set; anything else is unrecognized and fatal.
func (s *Service) apply(act Action) error {
	g := s.game
	switch a := act.(type) {
	case PlaceBid:
		return s.auction.Bid(g, a.Player, a.Amount)
	case Pass:
		return s.auction.Pass(g, a.Player)
	case ProposeTrade:
		return s.trading.Propose(g, a.Player, a.OfferCardIDs, a.OfferCash, a.RequestColors, a.RequestCash)
	case AcceptTrade:
		return s.trading.Accept(g, a.Player, a.OfferID)
	case CancelTrade:
		return s.trading.Cancel(g, a.Player, a.OfferID)
	case EndTrading:
		s.trading.End(g)
		return nil
	case RevealGoal:
		return s.goals.Reveal(g, a.Player, a.GoalID)
	case ExecuteReward:
		return s.goals.ExecuteReward(g, a.Player, a.Choice)
	case SelectSell:
		return s.sell.Select(g, a.Player, a.CardIDs)
	case CommitSell:
		return s.sell.Commit(g, a.Player)
	default:
		return fmt.Errorf("unrecognized action kind %q", act.Kind())
	}
}

func (s *Service) reject(act Action, err error) error {
	if IsRejection(err) {
		s.bus.Publish(Event{Kind: EventActionRejected, Payload: ActionRejectedPayload{
			Player: act.Actor(),
			Kind:   act.Kind(),
			Reason: err.Error(),
		}})
	}
	return err
}

// State returns the full authoritative aggregate. Only the host should see
// it; everyone else goes through ViewFor.
func (s *Service) State() *domain.Game { return s.game }

// Started reports whether Start has been called.
func (s *Service) Started() bool { return s.started }
