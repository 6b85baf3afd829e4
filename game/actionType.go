package game

import "fmt"

// ActionType represents the kind of action a player can perform.
type ActionType int

const (
	DrawMultipleAction ActionType = iota
	StealAction
	DrawDiscardDrawAction
	DrawDiscardDiscardAction
	DiscardGroupAction
	NextTurnAction
	PlayForMeAction
)

// TurnActions are the action kinds tracked per turn, in the order they are offered.
var TurnActions = []ActionType{
	DrawMultipleAction,
	StealAction,
	DrawDiscardDrawAction,
	DrawDiscardDiscardAction,
	DiscardGroupAction,
	NextTurnAction,
}

var actionNames = [...]string{
	"draw_multiple",
	"steal",
	"draw_discard_draw",
	"draw_discard_discard",
	"discard_group",
	"next_turn",
	"play_for_me",
}

func (a ActionType) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("ActionType(%d)", int(a))
	}
	return actionNames[a]
}

func ParseActionType(name string) (ActionType, error) {
	for i, n := range actionNames {
		if n == name {
			return ActionType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

func (a ActionType) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(actionNames) {
		return nil, fmt.Errorf("unknown action %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(text []byte) error {
	parsed, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func newUsage() map[ActionType]int {
	used := make(map[ActionType]int, len(TurnActions))
	for _, a := range TurnActions {
		used[a] = 0
	}
	return used
}
