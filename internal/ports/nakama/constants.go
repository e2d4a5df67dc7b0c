package nakama

const (
	// RpcFindMatchID is the Nakama RPC id clients call to find or create a
	// lobby-capable match.
	RpcFindMatchID = "find_match"

	// RpcViewTokenID is the Nakama RPC id that issues a spectator view token
	// for a match.
	RpcViewTokenID = "match_view_token"

	// MatchName is the authoritative match handler name registered with Nakama.
	MatchName = "stockpile_match"
)

// MatchLabelKeyOpenSeats is the label key used by the open-seat match query.
const MatchLabelKeyOpenSeats = "open"

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame     int64 = 1
	OpPlaceBid      int64 = 2
	OpPassBid       int64 = 3
	OpProposeTrade  int64 = 4
	OpAcceptTrade   int64 = 5
	OpCancelTrade   int64 = 6
	OpEndTrading    int64 = 7
	OpRevealGoal    int64 = 8
	OpExecuteReward int64 = 9
	OpSelectSell    int64 = 10
	OpCommitSell    int64 = 11

	// Server -> Client
	OpLobbyState  int64 = 101
	OpGameEvent   int64 = 102
	OpPlayerView  int64 = 103 // send privately
	OpActionError int64 = 104 // send privately
)
