package game

import "notty/meta"

// pendingDiscard is true between the draw and discard halves of draw-discard.
func (gs *GameState) pendingDiscard() bool {
	return gs.Used[DrawDiscardDrawAction] == 1 && gs.Used[DrawDiscardDiscardAction] == 0
}

// IsLegal reports whether the current player may take an action of the given kind.
func (gs *GameState) IsLegal(action ActionType) bool {
	if gs.winner != nil {
		return false
	}
	if action == PlayForMeAction {
		return true
	}
	if gs.pendingDiscard() {
		return action == DrawDiscardDiscardAction
	}

	switch action {
	case DrawMultipleAction:
		return gs.canDrawMultiple()
	case StealAction:
		return gs.canSteal()
	case DrawDiscardDrawAction:
		return gs.canDrawDiscardDraw()
	case DrawDiscardDiscardAction:
		return gs.canDrawDiscardDiscard()
	case DiscardGroupAction:
		return gs.CanDiscardGroup()
	case NextTurnAction:
		return true
	default:
		return false
	}
}

// LegalActions returns the turn actions currently available, in offering order.
// PlayForMe is never listed; the engine offers it to humans separately.
func (gs *GameState) LegalActions() []ActionType {
	var actions []ActionType
	for _, a := range TurnActions {
		if gs.IsLegal(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// MaxDrawCount is the largest count a draw-multiple may request right now.
func (gs *GameState) MaxDrawCount() int {
	space := meta.MAX_HAND_SIZE - gs.Current().Hand.Size()
	return max(0, min(meta.MAX_DRAW, space, gs.Deck.Size()))
}

// StealTargets returns the indices of other players that still hold cards.
func (gs *GameState) StealTargets() []int {
	var targets []int
	for i, p := range gs.Players {
		if i != gs.CurrentPlayer && !p.Hand.IsEmpty() {
			targets = append(targets, i)
		}
	}
	return targets
}

func (gs *GameState) canDrawMultiple() bool {
	return gs.Used[DrawMultipleAction] < 1 &&
		!gs.Deck.IsEmpty() &&
		!gs.Current().Hand.IsFull()
}

func (gs *GameState) canSteal() bool {
	return gs.Used[StealAction] < 1 &&
		len(gs.StealTargets()) > 0 &&
		!gs.Current().Hand.IsFull()
}

// A full hand may still draw here because the discard half must follow.
func (gs *GameState) canDrawDiscardDraw() bool {
	return gs.Used[DrawDiscardDrawAction] < 1 && !gs.Deck.IsEmpty()
}

func (gs *GameState) canDrawDiscardDiscard() bool {
	return gs.Used[DrawDiscardDiscardAction] < 1 && gs.Used[DrawDiscardDrawAction] == 1
}
