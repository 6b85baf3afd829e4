package game

import (
	"fmt"
	"slices"

	"notty/meta"
	"notty/utils"

	"golang.org/x/exp/rand"
)

// Hand holds a player's cards in canonical (color, number, id) order.
type Hand struct {
	cards []Card
}

func NewHand(cards ...Card) *Hand {
	h := &Hand{cards: slices.Clone(cards)}
	SortCards(h.cards)
	return h
}

func (h *Hand) Size() int {
	return len(h.cards)
}

func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

func (h *Hand) IsFull() bool {
	return len(h.cards) >= meta.MAX_HAND_SIZE
}

// Cards returns a copy of the hand.
func (h *Hand) Cards() []Card {
	return slices.Clone(h.cards)
}

func (h *Hand) Contains(card Card) bool {
	return containsCard(h.cards, card)
}

// held returns the hand's own instances of cards, looked up by ID. It fails if any card is
// missing, repeated or differs in color or number from the held instance.
func (h *Hand) held(cards []Card) ([]Card, bool) {
	seen := make(map[int]bool, len(cards))
	instances := make([]Card, 0, len(cards))
	for _, c := range cards {
		i := utils.FindIndexFunc(h.cards, func(own Card) bool { return own.ID == c.ID })
		if i < 0 || seen[c.ID] || !h.cards[i].Matches(c) {
			return nil, false
		}
		seen[c.ID] = true
		instances = append(instances, h.cards[i])
	}
	return instances, true
}

// Add puts a card in the hand unless it is already full.
func (h *Hand) Add(card Card) error {
	if h.IsFull() {
		return fmt.Errorf("%w: cannot add %s", ErrHandFull, card)
	}
	h.addForced(card)
	return nil
}

// addForced ignores capacity; the draw half of draw-discard relies on it.
func (h *Hand) addForced(card Card) {
	h.cards = append(h.cards, card)
	SortCards(h.cards)
}

// Remove takes the card with the same ID out of the hand.
func (h *Hand) Remove(card Card) bool {
	i := utils.FindIndexFunc(h.cards, func(c Card) bool { return c.ID == card.ID })
	if i < 0 {
		return false
	}
	h.cards = utils.RemoveAt(h.cards, i)
	return true
}

// TakeRandom shuffles the hand and pops its last card.
func (h *Hand) TakeRandom(rng *rand.Rand) (Card, bool) {
	if h.IsEmpty() {
		return Card{}, false
	}
	rng.Shuffle(len(h.cards), func(i, j int) {
		h.cards[i], h.cards[j] = h.cards[j], h.cards[i]
	})
	last := len(h.cards) - 1
	card := h.cards[last]
	h.cards = h.cards[:last]
	SortCards(h.cards)
	return card, true
}
