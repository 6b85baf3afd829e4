package game

import (
	"fmt"

	"notty/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// GameState is the mutable state of a single game. It is driven by one actor at a time.
type GameState struct {
	Deck          *Deck              // Cards not in any hand
	Players       []*Player          // Seating order
	CurrentPlayer int                // Index into Players of whose turn it is
	Used          map[ActionType]int // Per-turn usage count by action kind
	winner        *Player            // First player to empty their hand, nil while playing
	rng           *rand.Rand
}

// NewGameState seats the players and shuffles a fresh deck. Hands start empty; call Deal to hand out cards.
func NewGameState(players []*Player, options ...Option) (*GameState, error) {
	if len(players) < meta.MIN_PLAYERS || len(players) > meta.MAX_PLAYERS {
		return nil, fmt.Errorf("%w: game requires %d-%d players, got %d",
			ErrPlayerCount, meta.MIN_PLAYERS, meta.MAX_PLAYERS, len(players))
	}

	gs := &GameState{
		Players: players,
		Used:    newUsage(),
	}
	for _, option := range options {
		option(gs)
	}
	if gs.rng == nil {
		gs.rng = defaultRand()
	}

	gs.Deck = NewDeck(gs.rng)
	gs.Deck.Shuffle()
	return gs, nil
}

// Current returns the player whose turn it is.
func (gs *GameState) Current() *Player {
	return gs.Players[gs.CurrentPlayer]
}

// Others returns every player except the current one, in seating order.
func (gs *GameState) Others() []*Player {
	others := make([]*Player, 0, len(gs.Players)-1)
	for i, p := range gs.Players {
		if i != gs.CurrentPlayer {
			others = append(others, p)
		}
	}
	return others
}

// AllHandsEmpty is true before the initial deal.
func (gs *GameState) AllHandsEmpty() bool {
	for _, p := range gs.Players {
		if !p.Hand.IsEmpty() {
			return false
		}
	}
	return true
}

// Deal gives each player n cards from the deck.
func (gs *GameState) Deal(n int) error {
	if need := n * len(gs.Players); need > gs.Deck.Size() {
		return fmt.Errorf("%w: dealing %d cards to %d players", ErrDeckExhausted, n, len(gs.Players))
	}
	for _, p := range gs.Players {
		cards, err := gs.Deck.Draw(n)
		if err != nil {
			return fmt.Errorf("failed to deal to %s: %w", p.Name, err)
		}
		for _, c := range cards {
			if err := p.Hand.Add(c); err != nil {
				return fmt.Errorf("failed to deal to %s: %w", p.Name, err)
			}
		}
	}
	return nil
}

// TotalCards counts every card in the deck and in hands.
func (gs *GameState) TotalCards() int {
	total := gs.Deck.Size()
	for _, p := range gs.Players {
		total += p.Hand.Size()
	}
	return total
}

// CheckWinCondition records the first player with an empty hand as the winner.
// It never fires before the deal, when every hand is empty.
func (gs *GameState) CheckWinCondition() bool {
	if gs.winner != nil {
		return true
	}
	if gs.AllHandsEmpty() {
		return false
	}
	for _, p := range gs.Players {
		if p.Hand.IsEmpty() {
			gs.winner = p
			return true
		}
	}
	return false
}

// Winner returns the player who emptied their hand, or nil.
func (gs *GameState) Winner() *Player {
	return gs.winner
}

// Play executes a move for the current player. Moves whose preconditions do not hold panic
// with ErrIllegalAction. Play returns false only for a discard-group whose cards are not a
// valid group held by the player; the state is unchanged in that case.
func (gs *GameState) Play(move Move) bool {
	action := move.Type()
	if gs.winner != nil {
		panic(fmt.Errorf("%w: %s after %s won", ErrIllegalAction, action, gs.winner.Name))
	}
	if action == PlayForMeAction {
		panic(fmt.Errorf("%w: %s is resolved by the engine", ErrIllegalAction, action))
	}
	if !gs.IsLegal(action) {
		panic(fmt.Errorf("%w: %s for %s", ErrIllegalAction, action, gs.Current().Name))
	}

	ok := true
	switch m := move.(type) {
	case DrawMultiple:
		gs.drawMultiple(m.Count)
	case Steal:
		gs.steal(m.Target)
	case DrawDiscardDraw:
		gs.drawDiscardDraw()
	case DrawDiscardDiscard:
		gs.drawDiscardDiscard(m.Card)
	case DiscardGroup:
		ok = gs.discardGroup(m.Cards)
	case Pass:
		gs.NextTurn()
	default:
		panic(fmt.Errorf("%w: unexpected move type %T", ErrIllegalAction, move))
	}

	if ok && action != NextTurnAction {
		gs.Used[action]++
	}
	gs.CheckWinCondition()
	return ok
}

func (gs *GameState) drawMultiple(count int) {
	if limit := gs.MaxDrawCount(); count < 1 || count > limit {
		panic(fmt.Errorf("%w: cannot draw %d cards, limit is %d", ErrIllegalAction, count, limit))
	}
	cards, err := gs.Deck.Draw(count)
	if err != nil {
		panic(err)
	}
	hand := gs.Current().Hand
	for _, c := range cards {
		if err := hand.Add(c); err != nil {
			panic(fmt.Errorf("%w: %w", ErrInvariant, err))
		}
	}
}

func (gs *GameState) steal(target int) {
	if target < 0 || target >= len(gs.Players) || target == gs.CurrentPlayer {
		panic(fmt.Errorf("%w: cannot steal from player %d", ErrIllegalAction, target))
	}
	victim := gs.Players[target]
	card, ok := victim.Hand.TakeRandom(gs.rng)
	if !ok {
		panic(fmt.Errorf("%w: %s has no cards to steal", ErrIllegalAction, victim.Name))
	}
	if err := gs.Current().Hand.Add(card); err != nil {
		panic(fmt.Errorf("%w: %w", ErrInvariant, err))
	}
}

func (gs *GameState) drawDiscardDraw() {
	card, err := gs.Deck.DrawOne()
	if err != nil {
		panic(err)
	}
	gs.Current().Hand.addForced(card)
}

func (gs *GameState) drawDiscardDiscard(card Card) {
	hand := gs.Current().Hand
	held, ok := hand.held([]Card{card})
	if !ok {
		panic(fmt.Errorf("%w: %s does not hold %s (id %d)", ErrIllegalAction, gs.Current().Name, card, card.ID))
	}
	hand.Remove(held[0])
	gs.Deck.Return(held[0])
}

func (gs *GameState) discardGroup(cards []Card) bool {
	hand := gs.Current().Hand
	held, ok := hand.held(cards)
	if !ok || !IsValidGroup(held) {
		log.Debug().Msgf("%s tried to discard an invalid group %v", gs.Current().Name, cards)
		return false
	}
	for _, c := range held {
		hand.Remove(c)
	}
	gs.Deck.Return(held...)
	return true
}

// NextTurn hands the turn to the next seat, resets per-turn usage and checks the card invariants.
func (gs *GameState) NextTurn() {
	gs.CurrentPlayer = (gs.CurrentPlayer + 1) % len(gs.Players)
	gs.Used = newUsage()
	gs.checkInvariants()
	log.Debug().Msgf("turn passes to %s", gs.Current().Name)
}

func (gs *GameState) checkInvariants() {
	for _, p := range gs.Players {
		if p.Hand.Size() > meta.MAX_HAND_SIZE {
			panic(fmt.Errorf("%w: %s holds %d cards, limit is %d", ErrInvariant, p.Name, p.Hand.Size(), meta.MAX_HAND_SIZE))
		}
	}
	if total := gs.TotalCards(); total != meta.TOTAL_CARDS {
		panic(fmt.Errorf("%w: %d cards in play, expected %d", ErrInvariant, total, meta.TOTAL_CARDS))
	}
}
