package game

// Move is a fully parameterized action. Each action kind has its own move type carrying its payload.
type Move interface {
	Type() ActionType
}

// DrawMultiple draws Count cards (1-3) from the deck.
type DrawMultiple struct {
	Count int
}

// Steal takes a random card from the player at index Target.
type Steal struct {
	Target int
}

// DrawDiscardDraw draws one card, even into a full hand; a DrawDiscardDiscard must follow.
type DrawDiscardDraw struct{}

// DrawDiscardDiscard returns Card from the hand to the deck.
type DrawDiscardDiscard struct {
	Card Card
}

// DiscardGroup returns a run or set from the hand to the deck.
type DiscardGroup struct {
	Cards []Card
}

// Pass ends the turn.
type Pass struct{}

// PlayForMe lets the computer policy act once on behalf of the human.
type PlayForMe struct{}

func (DrawMultiple) Type() ActionType       { return DrawMultipleAction }
func (Steal) Type() ActionType              { return StealAction }
func (DrawDiscardDraw) Type() ActionType    { return DrawDiscardDrawAction }
func (DrawDiscardDiscard) Type() ActionType { return DrawDiscardDiscardAction }
func (DiscardGroup) Type() ActionType       { return DiscardGroupAction }
func (Pass) Type() ActionType               { return NextTurnAction }
func (PlayForMe) Type() ActionType          { return PlayForMeAction }
