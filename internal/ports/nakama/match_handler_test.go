package nakama

import (
	"testing"

	"stockpile/internal/app"
	"stockpile/internal/bot"
	"stockpile/internal/domain"
)

func TestSeatCounts(t *testing.T) {
	ms := &MatchState{Seats: [4]string{"human-1", "", bot.BotID(2), ""}}

	if got := ms.GetOpenSeatsCount(); got != 2 {
		t.Fatalf("open seats = %d, want 2", got)
	}
	if got := ms.GetOccupiedSeatCount(); got != 2 {
		t.Fatalf("occupied seats = %d, want 2", got)
	}
	if got := ms.GetHumanPlayerCount(); got != 1 {
		t.Fatalf("human players = %d, want 1", got)
	}
}

func TestIsHumanSeat(t *testing.T) {
	seats := []string{"human-1", "", bot.BotID(2)}

	cases := []struct {
		seat int
		want bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{-1, false},
		{3, false},
	}
	for _, tc := range cases {
		if got := isHumanSeat(seats, tc.seat); got != tc.want {
			t.Fatalf("isHumanSeat(%d) = %v, want %v", tc.seat, got, tc.want)
		}
	}
}

func TestFindFirstHumanSeat(t *testing.T) {
	if got := findFirstHumanSeat([]string{"", bot.BotID(1), "human-1"}); got != 2 {
		t.Fatalf("first human seat = %d, want 2", got)
	}
	if got := findFirstHumanSeat([]string{"", bot.BotID(1)}); got != -1 {
		t.Fatalf("first human seat = %d, want -1", got)
	}
}

func TestDecodeActionMapsOpcodes(t *testing.T) {
	cases := []struct {
		name   string
		opCode int64
		data   string
		want   app.Action
	}{
		{
			name:   "place bid",
			opCode: OpPlaceBid,
			data:   `{"amount": 3}`,
			want:   app.PlaceBid{Player: "u1", Amount: 3},
		},
		{
			name:   "pass",
			opCode: OpPassBid,
			want:   app.Pass{Player: "u1"},
		},
		{
			name:   "accept trade",
			opCode: OpAcceptTrade,
			data:   `{"offer_id": "o1"}`,
			want:   app.AcceptTrade{Player: "u1", OfferID: "o1"},
		},
		{
			name:   "cancel trade",
			opCode: OpCancelTrade,
			data:   `{"offer_id": "o1"}`,
			want:   app.CancelTrade{Player: "u1", OfferID: "o1"},
		},
		{
			name:   "end trading",
			opCode: OpEndTrading,
			want:   app.EndTrading{Player: "u1"},
		},
		{
			name:   "reveal goal",
			opCode: OpRevealGoal,
			data:   `{"goal_id": "g1"}`,
			want:   app.RevealGoal{Player: "u1", GoalID: "g1"},
		},
		{
			name:   "commit sell",
			opCode: OpCommitSell,
			want:   app.CommitSell{Player: "u1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			act, err := decodeAction(tc.opCode, "u1", []byte(tc.data))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if act != tc.want {
				t.Fatalf("decoded %#v, want %#v", act, tc.want)
			}
		})
	}
}

func TestDecodeActionSliceFields(t *testing.T) {
	act, err := decodeAction(OpProposeTrade, "u1", []byte(`{
		"offer_card_ids": ["c1", "c2"],
		"offer_cash": 1,
		"request_colors": {"Yellow": 2},
		"request_cash": 0
	}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	propose := act.(app.ProposeTrade)
	if propose.Player != "u1" || len(propose.OfferCardIDs) != 2 || propose.OfferCash != 1 {
		t.Fatalf("decoded %#v", propose)
	}
	if propose.RequestColors[domain.Yellow] != 2 {
		t.Fatalf("request colors = %v", propose.RequestColors)
	}

	act, err = decodeAction(OpSelectSell, "u1", []byte(`{"card_ids": ["c1"]}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	sel := act.(app.SelectSell)
	if len(sel.CardIDs) != 1 || sel.CardIDs[0] != "c1" {
		t.Fatalf("decoded %#v", sel)
	}

	act, err = decodeAction(OpExecuteReward, "u1", []byte(`{
		"target": "u2", "color": "Blue", "delta": -1, "order": ["c1", "c2"]
	}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	exec := act.(app.ExecuteReward)
	if exec.Player != "u1" || exec.Choice.Target != "u2" || exec.Choice.Color != domain.Blue || exec.Choice.Delta != -1 {
		t.Fatalf("decoded %#v", exec)
	}
	if len(exec.Choice.Order) != 2 {
		t.Fatalf("order = %v", exec.Choice.Order)
	}
}

// The payload can never impersonate another player.
func TestDecodeActionSenderComesFromPresence(t *testing.T) {
	act, err := decodeAction(OpPlaceBid, "u1", []byte(`{"amount": 2, "player": "u2"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if act.Actor() != "u1" {
		t.Fatalf("actor = %s, want the presence identity", act.Actor())
	}
}

func TestDecodeActionErrors(t *testing.T) {
	if _, err := decodeAction(999, "u1", nil); err == nil {
		t.Fatal("unknown opcode should fail")
	}
	if _, err := decodeAction(OpPlaceBid, "u1", []byte(`not json`)); err == nil {
		t.Fatal("malformed payload should fail")
	}
}
