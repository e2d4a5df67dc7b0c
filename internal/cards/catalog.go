// Package cards loads goal card definitions. The engine consumes the parsed
// facets (market effect, requirement, reward) as the source of truth and
// treats the display text as opaque; it never parses card prose itself.
package cards

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"stockpile/internal/domain"
)

// Record is the persisted goal card shape produced by the card generator.
type Record struct {
	GoalType         string         `json:"goal_type"`
	GoalText         string         `json:"goal_text"`
	RequiredColors   map[string]int `json:"required_colors"`
	AvoidedColor     string         `json:"avoided_color,omitempty"`
	StockChange      StockChange    `json:"stock_change"`
	Reward           RewardRecord   `json:"reward"`
	DifficultyPoints int            `json:"difficulty_points"`
}

// StockChange is the pre-parsed market effect of a goal card.
type StockChange struct {
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	Changes map[string]int `json:"changes"`
}

// RewardRecord is the reward descriptor: a kind plus its fixed parameters.
type RewardRecord struct {
	Kind     string `json:"kind"`
	Amount   int    `json:"amount,omitempty"`
	Discount int    `json:"discount,omitempty"`
	Count    int    `json:"count,omitempty"`
}

// Reward kinds as they appear in card data.
const (
	RewardKindGainCash     = "gain_cash"
	RewardKindSellBonus    = "sell_bonus"
	RewardKindInspectHand  = "inspect_hand"
	RewardKindStealCash    = "steal_cash"
	RewardKindPeekPlace    = "peek_place"
	RewardKindSwapDeck     = "swap_deck"
	RewardKindRearrangeTop = "rearrange_top"
	RewardKindAdjustPrice  = "adjust_price"
	RewardKindBuyLowest    = "buy_lowest"
	RewardKindBuyAny       = "buy_any"
	RewardKindGainCheapest = "gain_cheapest"
	RewardKindTakeGive     = "take_give"
)

// LoadCatalog reads and parses a goal card file.
func LoadCatalog(path string) ([]*domain.GoalCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read goal cards: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal goal cards: %w", err)
	}
	return Parse(records)
}

// Parse converts records into domain goal cards, assigning fresh ids.
func Parse(records []Record) ([]*domain.GoalCard, error) {
	out := make([]*domain.GoalCard, 0, len(records))
	for i, rec := range records {
		card, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("goal card %d (%q): %w", i, rec.GoalText, err)
		}
		out = append(out, card)
	}
	return out, nil
}

func parseRecord(rec Record) (*domain.GoalCard, error) {
	requirement := domain.GoalRequirement{}
	if rec.AvoidedColor != "" {
		color := domain.Color(rec.AvoidedColor)
		if !domain.ValidColor(color) {
			return nil, fmt.Errorf("unknown avoided color %q", rec.AvoidedColor)
		}
		requirement.Avoid = color
	} else {
		if len(rec.RequiredColors) == 0 {
			return nil, fmt.Errorf("goal has neither required nor avoided colors")
		}
		requirement.Require = make(map[domain.Color]int, len(rec.RequiredColors))
		for name, n := range rec.RequiredColors {
			color := domain.Color(name)
			if !domain.ValidColor(color) {
				return nil, fmt.Errorf("unknown required color %q", name)
			}
			if n <= 0 {
				return nil, fmt.Errorf("requirement of %d %s cards", n, name)
			}
			requirement.Require[color] = n
		}
	}

	effect := make(map[domain.Color]int, len(rec.StockChange.Changes))
	for name, delta := range rec.StockChange.Changes {
		color := domain.Color(name)
		if !domain.ValidColor(color) {
			return nil, fmt.Errorf("unknown effect color %q", name)
		}
		effect[color] = delta
	}

	reward, err := parseReward(rec.Reward)
	if err != nil {
		return nil, err
	}

	return &domain.GoalCard{
		ID:          uuid.NewString(),
		Text:        rec.GoalText,
		StockText:   rec.StockChange.Text,
		Effect:      effect,
		Requirement: requirement,
		Reward:      reward,
	}, nil
}

func parseReward(rec RewardRecord) (domain.Reward, error) {
	switch rec.Kind {
	case RewardKindGainCash:
		if rec.Amount <= 0 {
			return nil, fmt.Errorf("gain_cash amount must be positive")
		}
		return domain.RewardGainCash{Amount: rec.Amount}, nil
	case RewardKindSellBonus:
		if rec.Amount <= 0 {
			return nil, fmt.Errorf("sell_bonus amount must be positive")
		}
		return domain.RewardSellBonus{Amount: rec.Amount}, nil
	case RewardKindInspectHand:
		return domain.RewardInspectHand{}, nil
	case RewardKindStealCash:
		if rec.Amount <= 0 {
			return nil, fmt.Errorf("steal_cash amount must be positive")
		}
		return domain.RewardStealCash{Amount: rec.Amount}, nil
	case RewardKindPeekPlace:
		return domain.RewardPeekPlace{}, nil
	case RewardKindSwapDeck:
		return domain.RewardSwapDeck{}, nil
	case RewardKindRearrangeTop:
		count := rec.Count
		if count <= 0 {
			count = 5
		}
		return domain.RewardRearrangeTop{Count: count}, nil
	case RewardKindAdjustPrice:
		return domain.RewardAdjustPrice{}, nil
	case RewardKindBuyLowest:
		discount := rec.Discount
		if discount <= 0 {
			discount = 1
		}
		return domain.RewardBuyStock{Discount: discount, LowestOnly: true}, nil
	case RewardKindBuyAny:
		discount := rec.Discount
		if discount <= 0 {
			discount = 2
		}
		return domain.RewardBuyStock{Discount: discount}, nil
	case RewardKindGainCheapest:
		return domain.RewardGainCheapest{}, nil
	case RewardKindTakeGive:
		return domain.RewardTakeGive{}, nil
	default:
		return nil, fmt.Errorf("unknown reward kind %q", rec.Kind)
	}
}
