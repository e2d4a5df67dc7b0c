package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"stockpile/internal/app"
	"stockpile/internal/bot"
	"stockpile/internal/cards"
	"stockpile/internal/config"
	"stockpile/internal/domain"
	"stockpile/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string                   `json:"seats"`      // user ids, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // userID -> presence for targeted messaging

	Table *app.Service `json:"-"` // engine facade, nil between games only transiently

	Bots             map[string]*bot.Agent `json:"-"`
	BotAutoFillDelay int                   `json:"bot_auto_fill_delay"` // seconds before filling a solo lobby
	LastSoloTick     int64                 `json:"last_solo_tick"`      // tick when a lone human started waiting

	TradingDeadline int64 `json:"trading_deadline"` // tick when trading auto-ends, 0 when not in trading

	Economy ports.EconomyPort `json:"-"`

	pending []app.Event // events collected from the engine bus, drained each broadcast
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userID := seats[seatIndex]
	return userID != "" && !bot.IsBot(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !bot.IsBot(userID) {
			return i
		}
	}
	return -1
}

// newTable builds a fresh engine facade and hooks its bus into the pending
// event queue.
func (ms *MatchState) newTable() {
	ms.Table = app.NewService(nil)
	ms.Table.Bus().SubscribeAll(func(ev app.Event) {
		ms.pending = append(ms.pending, ev)
	})
}

// inGame reports whether a game is set up on the current table.
func (ms *MatchState) inGame() bool {
	return ms.Table != nil && ms.Table.Started()
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// matchLabel is the queryable label published for this match.
type matchLabel struct {
	Open  int    `json:"open"`
	State string `json:"state"`
}

// lobbySeat is one entry of the lobby snapshot broadcast on join and leave.
type lobbySeat struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	DisplayName string `json:"display_name"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
}

type lobbySnapshot struct {
	Seats     []lobbySeat `json:"seats"`
	OwnerSeat int         `json:"owner_seat"`
	InGame    bool        `json:"in_game"`
}

// eventEnvelope is the wire shape of engine events sent at OpGameEvent.
type eventEnvelope struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload,omitempty"`
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		OwnerSeat:        -1,
		Bots:             make(map[string]*bot.Agent),
		BotAutoFillDelay: config.BotAutoFillDelay(),
		Economy:          NewNakamaEconomyAdapter(nk),
	}
	state.newTable()

	label := matchLabel{Open: state.GetOpenSeatsCount(), State: "lobby"}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second, countdowns measure in ticks
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace before the game starts.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if !matchState.inGame() {
			for _, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: empty seats first, then bots while still in the lobby.
		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && !matchState.inGame() {
			for i, seatUserID := range matchState.Seats {
				if bot.IsBot(seatUserID) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserID, p.GetUserId(), i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobby(matchState, dispatcher, logger)

	// A rejoining player gets their private view back.
	if matchState.inGame() {
		mh.sendViews(matchState, dispatcher, logger)
	}

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		// Seats are only freed in the lobby; a mid-game leaver keeps their
		// seat so they can reconnect.
		if matchState.inGame() {
			continue
		}
		for i, seatUserID := range matchState.Seats {
			if seatUserID == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobby(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		if msg.GetOpCode() == OpStartGame {
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
			continue
		}
		act, err := decodeAction(msg.GetOpCode(), msg.GetUserId(), msg.GetData())
		if err != nil {
			logger.Warn("MatchLoop: Bad message from %s (opcode %d): %v", msg.GetUserId(), msg.GetOpCode(), err)
			mh.sendError(matchState, dispatcher, logger, msg.GetUserId(), 400, err.Error())
			continue
		}
		mh.dispatchAction(ctx, matchState, dispatcher, logger, act)
	}

	mh.processBots(ctx, matchState, dispatcher, logger)
	mh.checkTradingDeadline(ctx, matchState, dispatcher, logger)

	return matchState
}

// decodeAction maps a client opcode plus JSON payload to an engine action.
// The sender identity always comes from the presence, never the payload.
func decodeAction(opCode int64, senderID string, data []byte) (app.Action, error) {
	switch opCode {
	case OpPlaceBid:
		var req struct {
			Amount int `json:"amount"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return app.PlaceBid{Player: senderID, Amount: req.Amount}, nil
	case OpPassBid:
		return app.Pass{Player: senderID}, nil
	case OpProposeTrade:
		var req struct {
			OfferCardIDs  []string             `json:"offer_card_ids"`
			OfferCash     int                  `json:"offer_cash"`
			RequestColors map[domain.Color]int `json:"request_colors"`
			RequestCash   int                  `json:"request_cash"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return app.ProposeTrade{
			Player:        senderID,
			OfferCardIDs:  req.OfferCardIDs,
			OfferCash:     req.OfferCash,
			RequestColors: req.RequestColors,
			RequestCash:   req.RequestCash,
		}, nil
	case OpAcceptTrade:
		var req struct {
			OfferID string `json:"offer_id"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return app.AcceptTrade{Player: senderID, OfferID: req.OfferID}, nil
	case OpCancelTrade:
		var req struct {
			OfferID string `json:"offer_id"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return app.CancelTrade{Player: senderID, OfferID: req.OfferID}, nil
	case OpEndTrading:
		return app.EndTrading{Player: senderID}, nil
	case OpRevealGoal:
		var req struct {
			GoalID string `json:"goal_id"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return app.RevealGoal{Player: senderID, GoalID: req.GoalID}, nil
	case OpExecuteReward:
		var req struct {
			Decline   bool             `json:"decline"`
			Target    string           `json:"target"`
			Color     domain.Color     `json:"color"`
			Delta     int              `json:"delta"`
			CardID    string           `json:"card_id"`
			Placement domain.Placement `json:"placement"`
			Order     []string         `json:"order"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return app.ExecuteReward{Player: senderID, Choice: domain.RewardChoice{
			Decline:   req.Decline,
			Target:    req.Target,
			Color:     req.Color,
			Delta:     req.Delta,
			CardID:    req.CardID,
			Placement: req.Placement,
			Order:     req.Order,
		}}, nil
	case OpSelectSell:
		var req struct {
			CardIDs []string `json:"card_ids"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return app.SelectSell{Player: senderID, CardIDs: req.CardIDs}, nil
	case OpCommitSell:
		return app.CommitSell{Player: senderID}, nil
	default:
		return nil, app.Reject("unknown opcode %d", opCode)
	}
}

// dispatchAction runs one action through the engine and flushes the resulting
// events. Rejections already produce an action-rejected event; anything else
// is a protocol error reported only to the sender.
func (mh *matchHandler) dispatchAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, act app.Action) {
	err := state.Table.Dispatch(act)
	if err != nil && !app.IsRejection(err) {
		logger.Warn("dispatchAction: %s %s failed: %v", act.Actor(), act.Kind(), err)
		mh.sendError(state, dispatcher, logger, act.Actor(), 400, err.Error())
	}
	mh.flushEvents(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := -1
	for i, seatUserID := range state.Seats {
		if seatUserID == senderID {
			senderSeat = i
			break
		}
	}

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.inGame() {
		logger.Warn("StartGame: Game already in progress.")
		return
	}

	seats := make([]app.Seat, 0, len(state.Seats))
	for _, userID := range state.Seats {
		if userID == "" {
			continue
		}
		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		} else if agent, exists := state.Bots[userID]; exists {
			displayName = agent.DisplayName
		}
		seats = append(seats, app.Seat{PlayerID: userID, DisplayName: displayName})
	}

	catalog, err := cards.LoadCatalog("data/goal_cards.json")
	if err != nil {
		logger.Warn("StartGame: Could not load goal cards, using built-in set: %v", err)
		catalog = cards.DefaultCatalog()
	}

	if err := state.Table.Setup(seats, catalog, config.Rules()); err != nil {
		logger.Error("StartGame: Failed to set up game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if err := state.Table.Start(); err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.flushEvents(ctx, state, dispatcher, logger)

	logger.Info("StartGame: Game started with %d players.", len(seats))
}

// processBots fills a solo lobby after a delay and lets seated bot agents act.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.inGame() {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSoloTick == 0 {
				state.LastSoloTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}
			if state.Tick-state.LastSoloTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						botID := bot.BotID(i)
						state.Seats[i] = botID
						state.Bots[botID] = &bot.Agent{
							UserID:      botID,
							DisplayName: bot.BotDisplayName(i),
							Strategy:    bot.NewBaseline(),
						}
						logger.Info("processBots: Added bot %s to seat %d", botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastLobby(state, dispatcher, logger)
				}
				state.LastSoloTick = 0
			}
		} else {
			state.LastSoloTick = 0
		}
		return
	}

	if state.Table.State().Phase == domain.PhaseEnded {
		return
	}

	// One action per bot per tick keeps the pace readable for humans.
	for _, seat := range state.Seats {
		agent, exists := state.Bots[seat]
		if !exists {
			continue
		}
		view, err := state.Table.ViewFor(agent.UserID)
		if err != nil {
			logger.Error("processBots: No view for bot %s: %v", agent.UserID, err)
			continue
		}
		act, err := agent.Act(view)
		if err != nil {
			logger.Error("processBots: Bot %s failed to decide: %v", agent.UserID, err)
			continue
		}
		if act == nil {
			continue
		}
		if err := state.Table.Dispatch(act); err != nil && !app.IsRejection(err) {
			logger.Error("processBots: Bot %s action %s failed: %v", agent.UserID, act.Kind(), err)
		}
	}
	mh.flushEvents(ctx, state, dispatcher, logger)
}

// checkTradingDeadline ends the trading phase once its countdown expires.
// The engine itself has no timers.
func (mh *matchHandler) checkTradingDeadline(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.inGame() {
		return
	}
	if state.Table.State().Phase != domain.PhaseTrading {
		state.TradingDeadline = 0
		return
	}
	if state.TradingDeadline == 0 {
		state.TradingDeadline = state.Tick + int64(config.TradingDuration())
		return
	}
	if state.Tick < state.TradingDeadline {
		return
	}

	state.TradingDeadline = 0
	actor := ""
	if state.OwnerSeat >= 0 {
		actor = state.Seats[state.OwnerSeat]
	}
	logger.Debug("checkTradingDeadline: Trading countdown expired, ending phase.")
	if err := state.Table.Dispatch(app.EndTrading{Player: actor}); err != nil && !app.IsRejection(err) {
		logger.Error("checkTradingDeadline: Failed to end trading: %v", err)
	}
	mh.flushEvents(ctx, state, dispatcher, logger)
}

// flushEvents drains the pending engine events, forwards them to clients and
// reacts to the lifecycle events the host cares about.
func (mh *matchHandler) flushEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if len(state.pending) == 0 {
		return
	}
	events := state.pending
	state.pending = nil

	ended := false
	for _, ev := range events {
		mh.forwardEvent(state, dispatcher, logger, ev)

		switch ev.Kind {
		case app.EventPhaseChanged:
			// Deadline bookkeeping happens on the next tick; just log here.
			p := ev.Payload.(app.PhaseChangedPayload)
			logger.Debug("Event: phase %s -> %s (round %d)", p.From, p.To, p.Round)
		case app.EventGameEnded:
			p := ev.Payload.(app.GameEndedPayload)
			mh.settle(ctx, state, logger, p.Standings)
			ended = true
		}
	}

	mh.sendViews(state, dispatcher, logger)

	if ended {
		// Back to the lobby with a fresh table; seats survive for a rematch.
		state.newTable()
		state.TradingDeadline = 0
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastLobby(state, dispatcher, logger)
	}
}

// forwardEvent sends one engine event, honoring targeted recipients.
func (mh *matchHandler) forwardEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	bytes, err := json.Marshal(eventEnvelope{Kind: ev.Kind, Payload: ev.Payload})
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events whose recipients are all offline (or bots) must
		// not leak to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(OpGameEvent, bytes, recipients, nil, true)
}

// sendViews pushes each connected player their private filtered view.
func (mh *matchHandler) sendViews(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Table == nil || state.Table.State() == nil {
		return
	}
	for _, seat := range state.Seats {
		presence, ok := state.Presences[seat]
		if !ok {
			continue
		}
		view, err := state.Table.ViewFor(seat)
		if err != nil {
			continue
		}
		bytes, err := json.Marshal(view)
		if err != nil {
			logger.Error("sendViews: Failed to marshal view for %s: %v", seat, err)
			continue
		}
		dispatcher.BroadcastMessage(OpPlayerView, bytes, []runtime.Presence{presence}, nil, true)
	}
}

// settle credits final wealth to each human player's wallet.
func (mh *matchHandler) settle(ctx context.Context, state *MatchState, logger runtime.Logger, standings []domain.Standing) {
	if state.Economy == nil {
		return
	}
	updates := make([]ports.WalletUpdate, 0, len(standings))
	for _, standing := range standings {
		if bot.IsBot(standing.PlayerID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: standing.PlayerID,
			Amount: int64(standing.Wealth),
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   "match_settlement",
				"rank":     standing.Rank,
			},
		})
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settle: Failed to update balances: %v", err)
	}
}

func (mh *matchHandler) broadcastLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot := lobbySnapshot{
		OwnerSeat: state.OwnerSeat,
		InGame:    state.inGame(),
	}
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		} else if agent, exists := state.Bots[userID]; exists {
			displayName = agent.DisplayName
		}
		snapshot.Seats = append(snapshot.Seats, lobbySeat{
			UserID:      userID,
			Seat:        i,
			DisplayName: displayName,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       bot.IsBot(userID),
		})
	}

	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastLobby: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpLobbyState, bytes, nil, nil, true)
}

// sendError sends an error payload to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	payload := struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{Code: code, Message: message}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	dispatcher.BroadcastMessage(OpActionError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelState := "lobby"
	if state.inGame() {
		labelState = "playing"
	}

	labelBytes, err := json.Marshal(matchLabel{Open: state.GetOpenSeatsCount(), State: labelState})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
