package game

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// referenceValid restates the grouping rules without sorting.
func referenceValid(cards []Card) bool {
	colors := map[Color]int{}
	numbers := map[int]int{}
	lo, hi := MaxNumber+1, MinNumber-1
	for _, c := range cards {
		colors[c.Color]++
		numbers[c.Number]++
		lo = min(lo, c.Number)
		hi = max(hi, c.Number)
	}
	run := len(cards) >= 3 && len(colors) == 1 && len(numbers) == len(cards) && hi-lo == len(cards)-1
	set := len(cards) >= 4 && len(numbers) == 1 && len(colors) == len(cards)
	return run || set
}

func TestIsValidGroup(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  bool
	}{
		{"three card run", []Card{cardOf(Blue, 4), cardOf(Blue, 5), cardOf(Blue, 6)}, true},
		{"unsorted run", []Card{cardOf(Red, 9), cardOf(Red, 7), cardOf(Red, 8)}, true},
		{"long run", []Card{cardOf(Green, 1), cardOf(Green, 2), cardOf(Green, 3), cardOf(Green, 4), cardOf(Green, 5)}, true},
		{"run with gap", []Card{cardOf(Blue, 4), cardOf(Blue, 5), cardOf(Blue, 7)}, false},
		{"run with mixed colors", []Card{cardOf(Blue, 4), cardOf(Red, 5), cardOf(Blue, 6)}, false},
		{"run with repeated number", []Card{cardOf(Blue, 4), cardOf(Blue, 5), cardOf(Blue, 5), cardOf(Blue, 6)}, false},
		{"two card run", []Card{cardOf(Blue, 4), cardOf(Blue, 5)}, false},
		{"three colors of one number", []Card{cardOf(Red, 7), cardOf(Blue, 7), cardOf(Green, 7)}, false},
		{"four colors of one number", []Card{cardOf(Red, 7), cardOf(Blue, 7), cardOf(Green, 7), cardOf(Black, 7)}, true},
		{"five colors of one number", []Card{cardOf(Red, 2), cardOf(Blue, 2), cardOf(Green, 2), cardOf(Black, 2), cardOf(Yellow, 2)}, true},
		{"set with repeated color", []Card{cardOf(Red, 7), cardOf(Blue, 7), cardOf(Green, 7), cardOf(Blue, 7)}, false},
		{"set with mixed numbers", []Card{cardOf(Red, 7), cardOf(Blue, 7), cardOf(Green, 7), cardOf(Black, 8)}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsValidGroup(tt.cards))
		})
	}

	t.Run("does not reorder its input", func(t *testing.T) {
		cards := []Card{cardOf(Red, 9), cardOf(Red, 7), cardOf(Red, 8)}
		IsValidGroup(cards)
		require.Equal(t, 9, cards[0].Number)
		require.Equal(t, 7, cards[1].Number)
	})
}

func TestIsValidGroupMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		cards := make([]Card, 1+rng.Intn(6))
		for j := range cards {
			// A narrow range makes runs and sets likely enough to matter
			cards[j] = Card{ID: j, Color: Colors[rng.Intn(len(Colors))], Number: 3 + rng.Intn(4)}
		}
		require.Equal(t, referenceValid(cards), IsValidGroup(cards), "cards: %v", cards)
	}
}

func TestFindGroupsMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for size := 0; size <= 12; size++ {
		for trial := 0; trial < 20; trial++ {
			cards := randomCards(rng, size)

			got := FindGroups(cards)
			want := bruteForceGroups(cards)

			require.Equal(t, groupKeys(want), groupKeys(got), "hand: %v", cards)

			// Combinations are listed by size, then in the order they occur in the hand
			slices.SortStableFunc(want, func(a, b []Card) int { return cmp.Compare(len(a), len(b)) })
			require.Equal(t, orderedKeys(want), orderedKeys(got), "hand: %v", cards)
		}
	}
}

func TestFindGroupsOrder(t *testing.T) {
	gs := newTestGame(t,
		[]Card{
			cardOf(Blue, 4), cardOf(Blue, 5), cardOf(Blue, 6), cardOf(Blue, 7),
			cardOf(Red, 7), cardOf(Green, 7), cardOf(Black, 7),
		},
		[]Card{cardOf(Red, 1)},
	)

	var fours [][]Card
	for _, g := range gs.DiscardableGroups() {
		if len(g) == 4 {
			fours = append(fours, g)
		}
	}

	// The set holds red7, the earliest card in the hand, so it comes before the blue run
	require.Len(t, fours, 2)
	require.Equal(t, Red, fours[0][0].Color)
	require.Equal(t, Blue, fours[1][0].Color)
	require.Equal(t, 4, fours[1][0].Number)
}

func TestFindGroupsWithDuplicates(t *testing.T) {
	gs := newTestGame(t,
		[]Card{cardOf(Blue, 4), cardOf(Blue, 5), cardOf(Blue, 5), cardOf(Blue, 6)},
		[]Card{cardOf(Red, 1)},
	)

	groups := gs.DiscardableGroups()

	// Each blue5 instance forms its own run
	require.Len(t, groups, 2)
	require.NotEqual(t, groups[0][1].ID, groups[1][1].ID)
}

func TestHasGroupAgreesWithFindGroups(t *testing.T) {
	t.Run("random hands", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 500; i++ {
			cards := randomCards(rng, rng.Intn(21))
			require.Equal(t, len(FindGroups(cards)) > 0, HasGroup(cards), "hand: %v", cards)
		}
	})

	t.Run("run longer than four", func(t *testing.T) {
		gs := newTestGame(t,
			[]Card{cardOf(Yellow, 2), cardOf(Yellow, 3), cardOf(Yellow, 4), cardOf(Yellow, 5), cardOf(Yellow, 6)},
			[]Card{cardOf(Red, 1)},
		)

		require.True(t, gs.CanDiscardGroup())
		groups := gs.DiscardableGroups()
		require.Len(t, groups[len(groups)-1], 5, "the whole run should be discoverable")
	})

	t.Run("no group", func(t *testing.T) {
		gs := newTestGame(t,
			[]Card{cardOf(Red, 7), cardOf(Blue, 7), cardOf(Green, 7), cardOf(Red, 1), cardOf(Red, 3)},
			[]Card{cardOf(Red, 2)},
		)

		require.False(t, gs.CanDiscardGroup())
		require.Empty(t, gs.DiscardableGroups())
	})
}
