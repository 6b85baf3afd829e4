package game

import "github.com/google/uuid"

// Player owns exactly one hand for the whole game.
type Player struct {
	ID    uuid.UUID
	Name  string
	Human bool
	Hand  *Hand
}

func NewPlayer(name string, human bool) *Player {
	return &Player{
		ID:    uuid.New(),
		Name:  name,
		Human: human,
		Hand:  NewHand(),
	}
}

func (p *Player) String() string {
	return p.Name
}
