package player

import (
	"fmt"
	"testing"

	"notty/game"

	"github.com/stretchr/testify/require"
)

// syntheticID keeps test cards clear of the deck's own IDs.
var syntheticID = 1000

func card(color game.Color, number int) game.Card {
	syntheticID++
	return game.Card{ID: syntheticID, Color: color, Number: number}
}

// filler returns n cards that are never looked at.
func filler(n int) []game.Card {
	cards := make([]game.Card, n)
	for i := range cards {
		cards[i] = card(game.Colors[i%len(game.Colors)], 1+i%game.MaxNumber)
	}
	return cards
}

// newTable seats one computer per hand. The deck keeps all its cards, so these games are
// only fit for single actions that never reach the end-of-turn checks.
func newTable(t *testing.T, hands ...[]game.Card) *game.GameState {
	t.Helper()
	players := make([]*game.Player, len(hands))
	for i := range players {
		players[i] = game.NewPlayer(fmt.Sprintf("computer%d", i+1), false)
	}
	gs, err := game.NewGameState(players, game.WithSeed(8))
	require.NoError(t, err)
	for i, hand := range hands {
		for _, c := range hand {
			require.NoError(t, gs.Players[i].Hand.Add(c))
		}
	}
	return gs
}

func shrinkDeck(t *testing.T, gs *game.GameState, size int) {
	t.Helper()
	_, err := gs.Deck.Draw(gs.Deck.Size() - size)
	require.NoError(t, err)
}

// noPotential is 18 cards with no same-color neighbours and no number held three times.
func noPotential() []game.Card {
	var cards []game.Card
	for _, color := range []game.Color{game.Red, game.Yellow} {
		for n := 1; n <= 9; n += 2 {
			cards = append(cards, card(color, n))
		}
	}
	for _, color := range []game.Color{game.Green, game.Black} {
		for n := 2; n <= 8; n += 2 {
			cards = append(cards, card(color, n))
		}
	}
	return cards
}
