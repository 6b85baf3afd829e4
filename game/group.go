package game

import (
	"cmp"
	"math/bits"
	"slices"
)

const (
	MinRunSize = 3
	MinSetSize = 4
)

// IsValidGroup reports whether cards form a run (at least three cards of one color with
// consecutive numbers) or a set (at least four cards of one number in distinct colors).
// The input is not modified.
func IsValidGroup(cards []Card) bool {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b Card) int { return cmp.Compare(a.Number, b.Number) })
	return isRun(sorted) || isSet(sorted)
}

func isRun(sorted []Card) bool {
	if len(sorted) < MinRunSize {
		return false
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Color != sorted[0].Color || sorted[i].Number != sorted[i-1].Number+1 {
			return false
		}
	}
	return true
}

func isSet(sorted []Card) bool {
	if len(sorted) < MinSetSize {
		return false
	}
	seen := make(map[Color]bool, len(sorted))
	for _, c := range sorted {
		if c.Number != sorted[0].Number || seen[c.Color] {
			return false
		}
		seen[c.Color] = true
	}
	return true
}

// buckets indexes cards by color and number, keeping their original order.
type buckets [][MaxNumber + 1][]Card

func bucketCards(cards []Card) buckets {
	b := make(buckets, len(Colors))
	for _, c := range cards {
		b[c.Color][c.Number] = append(b[c.Color][c.Number], c)
	}
	return b
}

// HasGroup reports whether any subset of cards is a valid group. Every run contains a
// three-card run and every set contains a four-card set, so only those need checking.
func HasGroup(cards []Card) bool {
	b := bucketCards(cards)
	for _, color := range Colors {
		for n := MinNumber; n+MinRunSize-1 <= MaxNumber; n++ {
			if len(b[color][n]) > 0 && len(b[color][n+1]) > 0 && len(b[color][n+2]) > 0 {
				return true
			}
		}
	}
	for n := MinNumber; n <= MaxNumber; n++ {
		colors := 0
		for _, color := range Colors {
			if len(b[color][n]) > 0 {
				colors++
			}
		}
		if colors >= MinSetSize {
			return true
		}
	}
	return false
}

// FindGroups returns every subset of cards that is a valid group, ordered by size and then
// lexicographically by the positions of their cards in the input, the order in which
// combinations of the sorted hand would be listed.
func FindGroups(cards []Card) [][]Card {
	b := bucketCards(cards)
	var groups [][]Card

	// Runs: every window of consecutive present numbers, one instance per number
	for _, color := range Colors {
		for start := MinNumber; start <= MaxNumber; start++ {
			for end := start; end <= MaxNumber && len(b[color][end]) > 0; end++ {
				if end-start+1 >= MinRunSize {
					groups = append(groups, product(b[color][start:end+1])...)
				}
			}
		}
	}

	// Sets: every combination of at least four present colors, one instance per color
	for n := MinNumber; n <= MaxNumber; n++ {
		var present [][]Card
		for _, color := range Colors {
			if len(b[color][n]) > 0 {
				present = append(present, b[color][n])
			}
		}
		for mask := uint(1); mask < 1<<len(present); mask++ {
			if bits.OnesCount(mask) < MinSetSize {
				continue
			}
			var choices [][]Card
			for i := range present {
				if mask&(1<<i) != 0 {
					choices = append(choices, present[i])
				}
			}
			groups = append(groups, product(choices)...)
		}
	}

	position := make(map[int]int, len(cards))
	for i, c := range cards {
		position[c.ID] = i
	}
	positions := func(g []Card) []int {
		p := make([]int, len(g))
		for i, c := range g {
			p[i] = position[c.ID]
		}
		slices.Sort(p)
		return p
	}
	slices.SortStableFunc(groups, func(a, b []Card) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return slices.Compare(positions(a), positions(b))
	})
	return groups
}

// product returns every way to pick one card from each choice.
func product(choices [][]Card) [][]Card {
	result := [][]Card{{}}
	for _, options := range choices {
		next := make([][]Card, 0, len(result)*len(options))
		for _, prefix := range result {
			for _, c := range options {
				picked := make([]Card, len(prefix), len(prefix)+1)
				copy(picked, prefix)
				next = append(next, append(picked, c))
			}
		}
		result = next
	}
	return result
}

// CanDiscardGroup reports whether the current player holds any valid group.
func (gs *GameState) CanDiscardGroup() bool {
	return HasGroup(gs.Current().Hand.cards)
}

// DiscardableGroups returns every valid group in the current player's hand.
func (gs *GameState) DiscardableGroups() [][]Card {
	return FindGroups(gs.Current().Hand.cards)
}
