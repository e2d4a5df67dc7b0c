package bot

import (
	"fmt"
	"strings"

	"stockpile/internal/app"
)

// Brain decides a bot's next action. It only ever sees the player-scoped
// filtered view, so a strategy cannot cheat by reading hidden state.
type Brain interface {
	// Decide returns the next action to submit, or nil to wait.
	Decide(view *app.PlayerView) (app.Action, error)
}

// Agent binds a seated bot identity to a strategy.
type Agent struct {
	UserID      string
	DisplayName string
	Strategy    Brain
}

// Act asks the agent for its next action given the current view.
func (a *Agent) Act(view *app.PlayerView) (app.Action, error) {
	if a.Strategy == nil {
		return nil, fmt.Errorf("agent %s has no strategy", a.UserID)
	}
	return a.Strategy.Decide(view)
}

const botIDPrefix = "bot-"

var botNames = []string{"Bluebell", "Marigold", "Saffron", "Lavender", "Indigo", "Amber", "Citrine", "Violet"}

// BotID returns the synthetic user id for the bot at index.
func BotID(index int) string {
	return fmt.Sprintf("%s%d", botIDPrefix, index)
}

// BotDisplayName returns a display name for the bot at index.
func BotDisplayName(index int) string {
	return botNames[index%len(botNames)]
}

// IsBot reports whether the given user id represents a bot seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, botIDPrefix)
}
