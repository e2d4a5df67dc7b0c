package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"stockpile/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// FindMatchResponse is the payload returned to clients when requesting a
// lobby-capable match.
type FindMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// ViewTokenResponse carries a signed observer token for one match.
type ViewTokenResponse struct {
	Token string `json:"token"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcFindMatchID, rpcFindMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcViewTokenID, rpcViewToken)
}

// rpcFindMatch returns an existing match with open seats or creates a new one.
// Seat and owner assignment happens in MatchJoin (server-authoritative).
func rpcFindMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	query := fmt.Sprintf("+label.%s:>=1 +label.state:lobby", MatchLabelKeyOpenSeats)
	limit := 10
	authoritative := true
	minSize := 0
	maxSize := 4

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		matchID := matches[0].MatchId
		logger.Info("rpcFindMatch [User:%s]: Found existing match %s", userID, matchID)
		b, _ := json.Marshal(FindMatchResponse{MatchID: matchID, IsNew: false})
		return string(b), nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchName, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("rpcFindMatch [User:%s]: Created new match %s", userID, matchID)
	b, _ := json.Marshal(FindMatchResponse{MatchID: matchID, IsNew: true})
	return string(b), nil
}

// rpcViewToken issues a signed observer token bound to one match and player.
// Payload: {"match_id": "..."}. The subject is always the caller.
func rpcViewToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	var req struct {
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.MatchID == "" {
		return "", runtime.NewError("Match ID required", 3)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["view_token_secret"]
	issuer := env["view_token_issuer"]
	if secret == "" || issuer == "" {
		logger.Warn("rpcViewToken: View token credentials missing from env, using test defaults.")
		secret = "test-secret"
		issuer = "test-issuer"
	}

	tokens := app.NewTokenService(secret, issuer)
	token, err := tokens.GenerateViewToken(req.MatchID, userID, 15*time.Minute)
	if err != nil {
		logger.Error("rpcViewToken: Failed to generate token: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	b, _ := json.Marshal(ViewTokenResponse{Token: token})
	return string(b), nil
}
