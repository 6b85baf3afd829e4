package game

import (
	"fmt"
	"slices"

	"notty/meta"

	"golang.org/x/exp/rand"
)

// Deck is a stack of cards; the top of the stack is the end of the slice.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck returns an unshuffled deck holding meta.TOTAL_CARDS cards, each (color, number) pair repeated equally.
func NewDeck(rng *rand.Rand) *Deck {
	pairs := len(Colors) * (MaxNumber - MinNumber + 1)
	copies := meta.TOTAL_CARDS / pairs

	cards := make([]Card, 0, meta.TOTAL_CARDS)
	id := 0
	for k := 0; k < copies; k++ {
		for _, color := range Colors {
			for number := MinNumber; number <= MaxNumber; number++ {
				cards = append(cards, Card{ID: id, Color: color, Number: number})
				id++
			}
		}
	}
	return &Deck{cards: cards, rng: rng}
}

func (d *Deck) Size() int {
	return len(d.cards)
}

func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the deck from bottom to top.
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes n cards from the top of the deck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: cannot draw %d cards from %d", ErrDeckExhausted, n, len(d.cards))
	}
	split := len(d.cards) - n
	drawn := slices.Clone(d.cards[split:])
	d.cards = d.cards[:split]
	return drawn, nil
}

// DrawOne removes the top card.
func (d *Deck) DrawOne() (Card, error) {
	cards, err := d.Draw(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Return puts cards back on top of the deck.
func (d *Deck) Return(cards ...Card) {
	d.cards = append(d.cards, cards...)
}
