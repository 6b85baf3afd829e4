package player

import (
	"notty/game"
	"notty/meta"
	"notty/utils"
)

// Draw count thresholds.
const (
	nearlyFullHand     = 18
	crowdedHand        = 15
	smallHand          = 6
	largeHand          = 10
	strongPotential    = 3
	opponentNearWin    = 4
	lowDeck            = 10
	shrinkingDeck      = 20
	setPotentialCopies = 3
)

// ChooseDrawCount picks how many cards a computer draws, weighing hand size, group potential,
// opponents close to winning and how many cards the deck has left.
func ChooseDrawCount(gs *game.GameState) int {
	hand := gs.Current().Hand.Cards()
	handSize := len(hand)
	deckSize := gs.Deck.Size()

	draw := 2
	switch {
	case handSize >= nearlyFullHand:
		draw = 1
	case handSize >= crowdedHand:
		draw = min(draw, 2)
	case handSize <= smallHand:
		draw = meta.MAX_DRAW
	}

	potential := sequencePotential(hand) + setPotential(hand)
	switch {
	case potential >= strongPotential:
		draw = min(draw+1, meta.MAX_DRAW)
	case potential == 0 && handSize > largeHand:
		draw = max(draw-1, 1)
	}

	nearest := meta.MAX_HAND_SIZE
	if others := gs.Others(); len(others) > 0 {
		nearest = others[utils.ArgMin(others, cardCount)].Hand.Size()
	}
	if nearest <= opponentNearWin {
		draw = min(draw+1, meta.MAX_DRAW)
	}

	switch {
	case deckSize < lowDeck:
		draw = min(draw, 1)
	case deckSize < shrinkingDeck:
		draw = min(draw, 2)
	}

	draw = min(draw, meta.MAX_HAND_SIZE-handSize, deckSize, meta.MAX_DRAW)
	return max(draw, 1)
}

func cardCount(p *game.Player) int {
	return p.Hand.Size()
}

// sequencePotential counts adjacent same-color pairs one number apart. Hands are sorted by
// color then number, so each color's numbers are already in order.
func sequencePotential(hand []game.Card) int {
	count := 0
	for i := 1; i < len(hand); i++ {
		if hand[i].Color == hand[i-1].Color && hand[i].Number-hand[i-1].Number == 1 {
			count++
		}
	}
	return count
}

// setPotential counts numbers held at least three times.
func setPotential(hand []game.Card) int {
	counts := make(map[int]int)
	for _, c := range hand {
		counts[c.Number]++
	}
	count := 0
	for _, n := range counts {
		if n >= setPotentialCopies {
			count++
		}
	}
	return count
}

// ChooseTarget returns the seat of the opponent holding the most cards, first in seating order on ties.
func ChooseTarget(gs *game.GameState) int {
	best := -1
	for i, p := range gs.Players {
		if i == gs.CurrentPlayer {
			continue
		}
		if best == -1 || p.Hand.Size() > gs.Players[best].Hand.Size() {
			best = i
		}
	}
	return best
}

// ChooseDiscard returns the card least likely to end up in a group.
func ChooseDiscard(gs *game.GameState) (game.Card, bool) {
	hand := gs.Current().Hand.Cards()
	if len(hand) == 0 {
		return game.Card{}, false
	}

	colors := make(map[game.Color]int)
	numbers := make(map[int]int)
	for _, c := range hand {
		colors[c.Color]++
		numbers[c.Number]++
	}
	score := func(card game.Card) int {
		s := 2*colors[card.Color] + 2*numbers[card.Number]
		for _, other := range hand {
			if other.Color == card.Color && (other.Number-card.Number == 1 || card.Number-other.Number == 1) {
				s += 3
			}
		}
		return s
	}
	return hand[utils.ArgMin(hand, score)], true
}

// ChooseGroup returns the largest discardable group, the first one found on ties.
func ChooseGroup(gs *game.GameState) ([]game.Card, bool) {
	groups := gs.DiscardableGroups()
	if len(groups) == 0 {
		return nil, false
	}
	return groups[utils.ArgMax(groups, func(g []game.Card) int { return len(g) })], true
}
