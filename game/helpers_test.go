package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// newTestGame seats one player per hand and moves the requested cards out of the deck into each hand.
func newTestGame(t *testing.T, hands ...[]Card) *GameState {
	t.Helper()
	players := make([]*Player, len(hands))
	for i := range hands {
		players[i] = NewPlayer(fmt.Sprintf("player%d", i+1), i == 0)
	}
	gs, err := NewGameState(players, WithSeed(42))
	require.NoError(t, err)

	for i, hand := range hands {
		for _, want := range hand {
			card := takeFromDeck(t, gs.Deck, want.Color, want.Number)
			require.NoError(t, gs.Players[i].Hand.Add(card))
		}
	}
	return gs
}

// takeFromDeck removes one card matching color and number from the deck.
func takeFromDeck(t *testing.T, d *Deck, color Color, number int) Card {
	t.Helper()
	want := Card{Color: color, Number: number}
	for i, c := range d.cards {
		if c.Matches(want) {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return c
		}
	}
	t.Fatalf("no %s%d left in deck", color, number)
	return Card{}
}

// cardOf is shorthand for a card pattern; IDs are assigned when the card is taken from the deck.
func cardOf(color Color, number int) Card {
	return Card{Color: color, Number: number}
}

// randomCards draws n distinct instances from a fresh deck.
func randomCards(rng *rand.Rand, n int) []Card {
	d := NewDeck(rng)
	d.Shuffle()
	cards, _ := d.Draw(n)
	return cards
}

// bruteForceGroups enumerates every combination of size >= 3 and keeps the valid ones.
func bruteForceGroups(cards []Card) [][]Card {
	var groups [][]Card
	var pick func(start int, chosen []Card)
	pick = func(start int, chosen []Card) {
		if len(chosen) >= MinRunSize && IsValidGroup(chosen) {
			groups = append(groups, append([]Card(nil), chosen...))
		}
		for i := start; i < len(cards); i++ {
			pick(i+1, append(chosen, cards[i]))
		}
	}
	pick(0, nil)
	return groups
}

// groupKeys turns groups into comparable sorted-ID keys.
func groupKeys(groups [][]Card) map[string]int {
	keys := make(map[string]int, len(groups))
	for _, g := range groups {
		ids := make([]Card, len(g))
		copy(ids, g)
		SortCards(ids)
		key := ""
		for _, c := range ids {
			key += fmt.Sprintf("%d,", c.ID)
		}
		keys[key]++
	}
	return keys
}

// orderedKeys lists group keys in the order the groups were produced.
func orderedKeys(groups [][]Card) []string {
	keys := make([]string, len(groups))
	for i, g := range groups {
		for key := range groupKeys([][]Card{g}) {
			keys[i] = key
		}
	}
	return keys
}

// requirePanicsWith asserts that f panics with an error wrapping target.
func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %v", r)
		require.ErrorIs(t, err, target)
	}()
	f()
}
