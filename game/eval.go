package game

const (
	WinReward      = 100.0
	DiscardReward  = 10.0
	DrawPenalty    = -0.5
	StealReward    = 0.5
	PassPenalty    = -1.0
	DefaultPenalty = -0.1
)

// Reward scores the action just taken by the player at playerIndex, for the Q-learning agent.
func (gs *GameState) Reward(playerIndex int, action ActionType) float64 {
	if gs.Players[playerIndex].Hand.IsEmpty() {
		return WinReward
	}

	switch action {
	case DiscardGroupAction:
		return DiscardReward
	case DrawMultipleAction, DrawDiscardDrawAction:
		return DrawPenalty
	case StealAction:
		return StealReward
	case NextTurnAction:
		return PassPenalty
	default:
		return DefaultPenalty
	}
}
