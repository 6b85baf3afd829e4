package learner

import (
	"fmt"

	"notty/game"
)

const (
	handBucketSize = 5
	maxHandBucket  = 3
	lowDeck        = 30
	midDeck        = 60
)

// State is the coarse view of a game the agent learns over.
type State struct {
	HandBucket      int  // Current player's hand size / 5, capped at 3
	DeckBucket      int  // 0 below 30 cards, 1 below 60, else 2
	CanDiscard      bool // Current player holds a discardable group
	OtherHandBucket int  // Average opponent hand size / 5, capped at 3
}

// Featurize buckets the state from the current player's point of view.
func Featurize(gs *game.GameState) State {
	others := gs.Others()
	avg := 0
	if len(others) > 0 {
		total := 0
		for _, p := range others {
			total += p.Hand.Size()
		}
		avg = total / len(others)
	}

	deck := 2
	switch size := gs.Deck.Size(); {
	case size < lowDeck:
		deck = 0
	case size < midDeck:
		deck = 1
	}

	return State{
		HandBucket:      min(gs.Current().Hand.Size()/handBucketSize, maxHandBucket),
		DeckBucket:      deck,
		CanDiscard:      gs.CanDiscardGroup(),
		OtherHandBucket: min(avg/handBucketSize, maxHandBucket),
	}
}

func (s State) String() string {
	discard := 0
	if s.CanDiscard {
		discard = 1
	}
	return fmt.Sprintf("%d:%d:%d:%d", s.HandBucket, s.DeckBucket, discard, s.OtherHandBucket)
}

// MarshalText encodes the state as "hand:deck:discard:other" so it can key a JSON object.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	var discard int
	n, err := fmt.Sscanf(string(text), "%d:%d:%d:%d", &s.HandBucket, &s.DeckBucket, &discard, &s.OtherHandBucket)
	if err != nil || n != 4 {
		return fmt.Errorf("invalid state %q: %w", text, err)
	}
	if discard != 0 && discard != 1 {
		return fmt.Errorf("invalid state %q: discard flag must be 0 or 1", text)
	}
	s.CanDiscard = discard == 1
	return nil
}
