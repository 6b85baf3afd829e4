package game

import (
	"cmp"
	"fmt"
	"slices"
)

type Color int

const (
	Red    Color = iota // 0
	Green               // 1
	Yellow              // 2
	Black               // 3
	Blue                // 4
)

// Colors lists every card color in canonical order.
var Colors = []Color{Red, Green, Yellow, Black, Blue}

const (
	MinNumber = 1
	MaxNumber = 9
)

var colorNames = [...]string{"red", "green", "yellow", "black", "blue"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// Card is a single tile. Duplicate (color, number) pairs exist in the deck and are told apart by ID.
type Card struct {
	ID     int
	Color  Color
	Number int
}

// Matches reports whether two cards have the same color and number, regardless of identity.
func (c Card) Matches(other Card) bool {
	return c.Color == other.Color && c.Number == other.Number
}

func (c Card) String() string {
	return fmt.Sprintf("%s%d", c.Color, c.Number)
}

// compareCards orders cards by color, then number, then ID.
func compareCards(a, b Card) int {
	if c := cmp.Compare(a.Color, b.Color); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Number, b.Number); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortCards sorts cards into canonical (color, number, id) order in place.
func SortCards(cards []Card) {
	slices.SortFunc(cards, compareCards)
}

// containsCard matches by ID and also requires the same color and number.
func containsCard(cards []Card, card Card) bool {
	return slices.ContainsFunc(cards, func(c Card) bool { return c.ID == card.ID && c.Matches(card) })
}
