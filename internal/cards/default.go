package cards

import "stockpile/internal/domain"

// DefaultCatalog returns the built-in goal card set, enough for four players
// at four goals each. Hosts can override it with LoadCatalog.
func DefaultCatalog() []*domain.GoalCard {
	catalog, err := Parse(defaultRecords)
	if err != nil {
		// The built-in records are compile-time data; failing to parse
		// them is a programmer error.
		panic(err)
	}
	return catalog
}

var defaultRecords = []Record{
	{
		GoalType:       "pair",
		GoalText:       "2 Blue",
		RequiredColors: map[string]int{"Blue": 2},
		StockChange:    StockChange{Type: "single_up", Text: "Orange +1", Changes: map[string]int{"Orange": 1}},
		Reward:         RewardRecord{Kind: RewardKindGainCash, Amount: 2},
	},
	{
		GoalType:       "pair",
		GoalText:       "2 Orange",
		RequiredColors: map[string]int{"Orange": 2},
		StockChange:    StockChange{Type: "single_up", Text: "Yellow +1", Changes: map[string]int{"Yellow": 1}},
		Reward:         RewardRecord{Kind: RewardKindPeekPlace},
	},
	{
		GoalType:       "pair",
		GoalText:       "2 Yellow",
		RequiredColors: map[string]int{"Yellow": 2},
		StockChange:    StockChange{Type: "single_up", Text: "Purple +1", Changes: map[string]int{"Purple": 1}},
		Reward:         RewardRecord{Kind: RewardKindInspectHand},
	},
	{
		GoalType:       "pair",
		GoalText:       "2 Purple",
		RequiredColors: map[string]int{"Purple": 2},
		StockChange:    StockChange{Type: "single_up", Text: "Blue +1", Changes: map[string]int{"Blue": 1}},
		Reward:         RewardRecord{Kind: RewardKindGainCash, Amount: 1},
	},
	{
		GoalType:       "three_of_a_kind",
		GoalText:       "3 Blue",
		RequiredColors: map[string]int{"Blue": 3},
		StockChange:    StockChange{Type: "single_down", Text: "Orange -1", Changes: map[string]int{"Orange": -1}},
		Reward:         RewardRecord{Kind: RewardKindSellBonus, Amount: 1},
	},
	{
		GoalType:       "three_of_a_kind",
		GoalText:       "3 Orange",
		RequiredColors: map[string]int{"Orange": 3},
		StockChange:    StockChange{Type: "single_down", Text: "Yellow -1", Changes: map[string]int{"Yellow": -1}},
		Reward:         RewardRecord{Kind: RewardKindAdjustPrice},
	},
	{
		GoalType:       "three_of_a_kind",
		GoalText:       "3 Yellow",
		RequiredColors: map[string]int{"Yellow": 3},
		StockChange:    StockChange{Type: "single_down", Text: "Purple -1", Changes: map[string]int{"Purple": -1}},
		Reward:         RewardRecord{Kind: RewardKindBuyAny, Discount: 2},
	},
	{
		GoalType:       "three_of_a_kind",
		GoalText:       "3 Purple",
		RequiredColors: map[string]int{"Purple": 3},
		StockChange:    StockChange{Type: "single_down", Text: "Blue -1", Changes: map[string]int{"Blue": -1}},
		Reward:         RewardRecord{Kind: RewardKindGainCash, Amount: 3},
	},
	{
		GoalType:       "pair_plus_specific",
		GoalText:       "2 Blue + 1 Orange",
		RequiredColors: map[string]int{"Blue": 2, "Orange": 1},
		StockChange:    StockChange{Type: "single_up_twice", Text: "Yellow +2", Changes: map[string]int{"Yellow": 2}},
		Reward:         RewardRecord{Kind: RewardKindStealCash, Amount: 1},
	},
	{
		GoalType:       "pair_plus_specific",
		GoalText:       "2 Orange + 1 Yellow",
		RequiredColors: map[string]int{"Orange": 2, "Yellow": 1},
		StockChange:    StockChange{Type: "single_up_twice", Text: "Purple +2", Changes: map[string]int{"Purple": 2}},
		Reward:         RewardRecord{Kind: RewardKindSwapDeck},
	},
	{
		GoalType:       "pair_plus_specific",
		GoalText:       "2 Yellow + 1 Purple",
		RequiredColors: map[string]int{"Yellow": 2, "Purple": 1},
		StockChange:    StockChange{Type: "single_up_twice", Text: "Blue +2", Changes: map[string]int{"Blue": 2}},
		Reward:         RewardRecord{Kind: RewardKindBuyLowest, Discount: 1},
	},
	{
		GoalType:       "pair_plus_specific",
		GoalText:       "2 Purple + 1 Blue",
		RequiredColors: map[string]int{"Purple": 2, "Blue": 1},
		StockChange:    StockChange{Type: "single_up_twice", Text: "Orange +2", Changes: map[string]int{"Orange": 2}},
		Reward:         RewardRecord{Kind: RewardKindRearrangeTop, Count: 5},
	},
	{
		GoalType:       "three_different",
		GoalText:       "1 Blue + 1 Orange + 1 Yellow",
		RequiredColors: map[string]int{"Blue": 1, "Orange": 1, "Yellow": 1},
		StockChange:    StockChange{Type: "single_up", Text: "Purple +1", Changes: map[string]int{"Purple": 1}},
		Reward:         RewardRecord{Kind: RewardKindGainCash, Amount: 2},
	},
	{
		GoalType:       "three_different",
		GoalText:       "1 Orange + 1 Yellow + 1 Purple",
		RequiredColors: map[string]int{"Orange": 1, "Yellow": 1, "Purple": 1},
		StockChange:    StockChange{Type: "single_up", Text: "Blue +1", Changes: map[string]int{"Blue": 1}},
		Reward:         RewardRecord{Kind: RewardKindTakeGive},
	},
	{
		GoalType:     "none_of",
		GoalText:     "0 Blue",
		AvoidedColor: "Blue",
		StockChange:  StockChange{Type: "double_down", Text: "Orange -1, Yellow -1", Changes: map[string]int{"Orange": -1, "Yellow": -1}},
		Reward:       RewardRecord{Kind: RewardKindGainCash, Amount: 1},
	},
	{
		GoalType:     "none_of",
		GoalText:     "0 Orange",
		AvoidedColor: "Orange",
		StockChange:  StockChange{Type: "double_down", Text: "Yellow -1, Purple -1", Changes: map[string]int{"Yellow": -1, "Purple": -1}},
		Reward:       RewardRecord{Kind: RewardKindPeekPlace},
	},
	{
		GoalType:     "none_of",
		GoalText:     "0 Yellow",
		AvoidedColor: "Yellow",
		StockChange:  StockChange{Type: "double_down", Text: "Purple -1, Blue -1", Changes: map[string]int{"Purple": -1, "Blue": -1}},
		Reward:       RewardRecord{Kind: RewardKindGainCash, Amount: 2},
	},
	{
		GoalType:     "none_of",
		GoalText:     "0 Purple",
		AvoidedColor: "Purple",
		StockChange:  StockChange{Type: "double_down", Text: "Blue -1, Orange -1", Changes: map[string]int{"Blue": -1, "Orange": -1}},
		Reward:       RewardRecord{Kind: RewardKindInspectHand},
	},
	{
		GoalType:       "two_pair",
		GoalText:       "2 Blue + 2 Orange",
		RequiredColors: map[string]int{"Blue": 2, "Orange": 2},
		StockChange:    StockChange{Type: "mixed", Text: "Yellow +1, Purple -1", Changes: map[string]int{"Yellow": 1, "Purple": -1}},
		Reward:         RewardRecord{Kind: RewardKindGainCheapest},
	},
	{
		GoalType:       "one_of_every",
		GoalText:       "1 of every color",
		RequiredColors: map[string]int{"Blue": 1, "Orange": 1, "Yellow": 1, "Purple": 1},
		StockChange:    StockChange{Type: "double_up", Text: "Blue +1, Orange +1", Changes: map[string]int{"Blue": 1, "Orange": 1}},
		Reward:         RewardRecord{Kind: RewardKindSellBonus, Amount: 1},
	},
}
