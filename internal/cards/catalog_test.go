package cards

import (
	"os"
	"path/filepath"
	"testing"

	"stockpile/internal/domain"
)

func validRecord() Record {
	return Record{
		GoalType:       "pair",
		GoalText:       "2 Blue",
		RequiredColors: map[string]int{"Blue": 2},
		StockChange:    StockChange{Text: "Orange +1", Changes: map[string]int{"Orange": 1}},
		Reward:         RewardRecord{Kind: RewardKindGainCash, Amount: 2},
	}
}

func TestParseRecord(t *testing.T) {
	cards, err := Parse([]Record{validRecord()})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	card := cards[0]
	if card.ID == "" {
		t.Fatal("parsed card has no id")
	}
	if card.Requirement.Require[domain.Blue] != 2 {
		t.Fatalf("requirement = %+v", card.Requirement)
	}
	if card.Effect[domain.Orange] != 1 {
		t.Fatalf("effect = %v", card.Effect)
	}
	if r, ok := card.Reward.(domain.RewardGainCash); !ok || r.Amount != 2 {
		t.Fatalf("reward = %#v", card.Reward)
	}
}

func TestParseAvoidRequirement(t *testing.T) {
	rec := validRecord()
	rec.RequiredColors = nil
	rec.AvoidedColor = "Purple"
	cards, err := Parse([]Record{rec})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cards[0].Requirement.Avoid != domain.Purple {
		t.Fatalf("avoid = %s, want Purple", cards[0].Requirement.Avoid)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Record)
	}{
		{"unknown required color", func(r *Record) { r.RequiredColors = map[string]int{"Green": 1} }},
		{"zero requirement count", func(r *Record) { r.RequiredColors = map[string]int{"Blue": 0} }},
		{"no requirement at all", func(r *Record) { r.RequiredColors = nil }},
		{"unknown avoided color", func(r *Record) { r.RequiredColors = nil; r.AvoidedColor = "Green" }},
		{"unknown effect color", func(r *Record) { r.StockChange.Changes = map[string]int{"Green": 1} }},
		{"unknown reward kind", func(r *Record) { r.Reward = RewardRecord{Kind: "jackpot"} }},
		{"non-positive cash amount", func(r *Record) { r.Reward = RewardRecord{Kind: RewardKindGainCash} }},
		{"non-positive steal amount", func(r *Record) { r.Reward = RewardRecord{Kind: RewardKindStealCash} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(&rec)
			if _, err := Parse([]Record{rec}); err == nil {
				t.Fatal("Parse() = nil, want error")
			}
		})
	}
}

func TestParseRewardDefaults(t *testing.T) {
	cases := []struct {
		name string
		rec  RewardRecord
		want domain.Reward
	}{
		{"rearrange count", RewardRecord{Kind: RewardKindRearrangeTop}, domain.RewardRearrangeTop{Count: 5}},
		{"buy lowest discount", RewardRecord{Kind: RewardKindBuyLowest}, domain.RewardBuyStock{Discount: 1, LowestOnly: true}},
		{"buy any discount", RewardRecord{Kind: RewardKindBuyAny}, domain.RewardBuyStock{Discount: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			rec.Reward = tc.rec
			cards, err := Parse([]Record{rec})
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if cards[0].Reward != tc.want {
				t.Fatalf("reward = %#v, want %#v", cards[0].Reward, tc.want)
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) < 16 { // four players at four goals each
		t.Fatalf("catalog = %d cards, want at least 16", len(catalog))
	}

	kinds := make(map[string]bool)
	for _, card := range catalog {
		if card.ID == "" || card.Text == "" {
			t.Fatalf("card %+v is incomplete", card)
		}
		kinds[rewardName(card.Reward)] = true
	}
	// Every reward kind should be reachable through the built-in set.
	for _, want := range []string{
		"gain_cash", "sell_bonus", "inspect_hand", "steal_cash", "peek_place",
		"swap_deck", "rearrange_top", "adjust_price", "buy_stock",
		"gain_cheapest", "take_give",
	} {
		if !kinds[want] {
			t.Fatalf("no card carries a %s reward", want)
		}
	}

	// Fresh ids on every call: two catalogs never share card identity.
	other := DefaultCatalog()
	if catalog[0].ID == other[0].ID {
		t.Fatal("catalogs share card ids")
	}
}

func rewardName(r domain.Reward) string {
	switch r.(type) {
	case domain.RewardGainCash:
		return "gain_cash"
	case domain.RewardSellBonus:
		return "sell_bonus"
	case domain.RewardInspectHand:
		return "inspect_hand"
	case domain.RewardStealCash:
		return "steal_cash"
	case domain.RewardPeekPlace:
		return "peek_place"
	case domain.RewardSwapDeck:
		return "swap_deck"
	case domain.RewardRearrangeTop:
		return "rearrange_top"
	case domain.RewardAdjustPrice:
		return "adjust_price"
	case domain.RewardBuyStock:
		return "buy_stock"
	case domain.RewardGainCheapest:
		return "gain_cheapest"
	case domain.RewardTakeGive:
		return "take_give"
	}
	return ""
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.json")
	data := `[{
		"goal_type": "pair",
		"goal_text": "2 Yellow",
		"required_colors": {"Yellow": 2},
		"stock_change": {"text": "Blue +1", "changes": {"Blue": 1}},
		"reward": {"kind": "peek_place"}
	}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(catalog) != 1 || catalog[0].Requirement.Require[domain.Yellow] != 2 {
		t.Fatalf("catalog = %+v", catalog)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file should fail")
	}
}
