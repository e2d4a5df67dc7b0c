package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"stockpile/internal/domain"
)

// GameConfig is the table configuration loaded at startup.
type GameConfig struct {
	StartingCash    int `json:"starting_cash"`
	HandSize        int `json:"hand_size"`
	TotalRounds     int `json:"total_rounds"`
	StartPrice      int `json:"start_price"`
	PriceFloor      int `json:"price_floor"`
	PriceCeiling    int `json:"price_ceiling"` // 0 means unbounded
	CardsPerColor   int `json:"cards_per_color"`
	AuctionOverdraw int `json:"auction_overdraw"`
	GoalsPerPlayer  int `json:"goals_per_player"`
	// TradingDurationSeconds configures the host-side countdown that fires
	// the end-trading action; the engine itself has no timers.
	TradingDurationSeconds int `json:"trading_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// filling a solo human lobby with bots.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or nil when unloaded.
func GetGameConfig() *GameConfig {
	return cfg
}

// Rules converts the configuration into domain rules, falling back to the
// table defaults for any unset field.
func Rules() domain.Rules {
	rules := domain.DefaultRules()
	if cfg == nil {
		return rules
	}
	if cfg.StartingCash > 0 {
		rules.StartingCash = cfg.StartingCash
	}
	if cfg.HandSize > 0 {
		rules.HandSize = cfg.HandSize
	}
	if cfg.TotalRounds > 0 {
		rules.TotalRounds = cfg.TotalRounds
	}
	if cfg.StartPrice > 0 {
		rules.StartPrice = cfg.StartPrice
	}
	if cfg.PriceFloor > 0 {
		rules.PriceFloor = cfg.PriceFloor
	}
	if cfg.PriceCeiling > 0 {
		rules.PriceCeiling = cfg.PriceCeiling
	}
	if cfg.CardsPerColor > 0 {
		rules.CardsPerColor = cfg.CardsPerColor
	}
	if cfg.AuctionOverdraw > 0 {
		rules.AuctionOverdraw = cfg.AuctionOverdraw
	}
	if cfg.GoalsPerPlayer > 0 {
		rules.GoalsPerPlayer = cfg.GoalsPerPlayer
	}
	return rules
}

// TradingDuration returns the host countdown in seconds, defaulting to 90.
func TradingDuration() int {
	if cfg == nil || cfg.TradingDurationSeconds <= 0 {
		return 90
	}
	return cfg.TradingDurationSeconds
}

// BotAutoFillDelay returns the lobby auto-fill delay in seconds, defaulting
// to 5.
func BotAutoFillDelay() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 5
	}
	return cfg.BotAutoFillDelaySeconds
}
