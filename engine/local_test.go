package engine

import (
	"context"
	"io"
	"testing"
	"time"

	"notty/game"
	"notty/learner"
	"notty/meta"
	"notty/player"
	"notty/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type fakeInput struct {
	actions []game.ActionType
	count   int
	target  int
	giveUp  bool
	err     error
	asked   [][]game.ActionType
}

func (f *fakeInput) ChooseAction(_ context.Context, _ *game.GameState, options []game.ActionType) (game.ActionType, error) {
	f.asked = append(f.asked, options)
	if f.err != nil {
		return 0, f.err
	}
	if len(f.actions) == 0 {
		return game.NextTurnAction, nil
	}
	action := f.actions[0]
	f.actions = f.actions[1:]
	return action, nil
}

func (f *fakeInput) ChooseCount(context.Context, int) (int, error) { return f.count, nil }

func (f *fakeInput) ChoosePlayer(context.Context, *game.GameState, []int) (int, error) {
	return f.target, nil
}

func (f *fakeInput) ChooseCard(_ context.Context, hand []game.Card) (game.Card, error) {
	return hand[0], nil
}

func (f *fakeInput) ChooseCards(_ context.Context, hand []game.Card, valid func([]game.Card) bool) ([]game.Card, error) {
	if f.giveUp {
		return nil, nil
	}
	if valid(hand) {
		return hand, nil
	}
	return hand[:1], nil
}

// blockingInput waits for the context like a human who never answers.
type blockingInput struct {
	fakeInput
	waiting chan struct{}
}

func (b *blockingInput) ChooseAction(ctx context.Context, _ *game.GameState, _ []game.ActionType) (game.ActionType, error) {
	close(b.waiting)
	<-ctx.Done()
	return 0, ctx.Err()
}

type fakeView struct {
	renders int
	winner  *game.Player
}

func (v *fakeView) Render(*game.GameState)        { v.renders++ }
func (v *fakeView) NotifyWin(winner *game.Player) { v.winner = winner }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newComputer(options ...player.Option) *player.Computer {
	agent := learner.NewAgent(learner.WithRand(rand.New(rand.NewSource(6))))
	return player.NewComputer(agent, options...)
}

func newEngine(t *testing.T, humans []bool, input Input, options ...Option) (*Engine, *fakeView) {
	t.Helper()
	players := make([]*game.Player, len(humans))
	for i, human := range humans {
		players[i] = game.NewPlayer("player", human)
	}
	gs, err := game.NewGameState(players, game.WithSeed(21))
	require.NoError(t, err)
	view := &fakeView{}
	return LocalEngine(gs, newComputer(), input, view, options...), view
}

func TestStepDealsFirst(t *testing.T) {
	input := &fakeInput{}
	e, view := newEngine(t, []bool{true, false}, input)

	done, err := e.Step(context.Background())
	require.NoError(t, err)
	require.False(t, done)

	for _, p := range e.State.Players {
		require.Equal(t, meta.INITIAL_HAND_SIZE, p.Hand.Size())
	}
	require.Equal(t, 1, e.State.CurrentPlayer, "the human passed")
	require.Equal(t, 1, view.renders)
	require.Len(t, input.asked, 1)
	require.Equal(t, game.PlayForMeAction, input.asked[0][len(input.asked[0])-1])
}

func TestComputerPacing(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	e, _ := newEngine(t, []bool{false, false}, &fakeInput{},
		WithComputerDelay(time.Second), WithClock(clock.Now))
	ctx := context.Background()

	_, err := e.Step(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, e.turns, "the first computer action is not delayed")

	clock.now = clock.now.Add(500 * time.Millisecond)
	_, err = e.Step(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, e.turns)

	clock.now = clock.now.Add(500 * time.Millisecond)
	_, err = e.Step(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, e.turns)
}

func TestPlayForMe(t *testing.T) {
	e, _ := newEngine(t, []bool{true, false}, &fakeInput{})
	require.NoError(t, e.State.Deal(meta.INITIAL_HAND_SIZE))
	human := e.State.Players[0]

	ok, err := e.DoAction(context.Background(), game.PlayForMeAction)
	require.NoError(t, err)
	require.True(t, ok)

	require.True(t, human.Human, "the human flag is restored")
	require.Equal(t, 1, e.computer.Agent().TotalActions())
	require.Equal(t, meta.TOTAL_CARDS, e.State.TotalCards())
}

func TestDoActionRejectsBadChoices(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable action", func(t *testing.T) {
		e, _ := newEngine(t, []bool{true, false}, &fakeInput{})
		require.NoError(t, e.State.Deal(meta.INITIAL_HAND_SIZE))

		ok, err := e.DoAction(ctx, game.DrawDiscardDiscardAction)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("count out of range", func(t *testing.T) {
		e, _ := newEngine(t, []bool{true, false}, &fakeInput{count: meta.MAX_DRAW + 1})
		require.NoError(t, e.State.Deal(meta.INITIAL_HAND_SIZE))

		ok, err := e.DoAction(ctx, game.DrawMultipleAction)
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, meta.INITIAL_HAND_SIZE, e.State.Current().Hand.Size())
		require.True(t, e.State.IsLegal(game.DrawMultipleAction), "a rejected choice does not use up the action")
	})

	t.Run("steal from self", func(t *testing.T) {
		e, _ := newEngine(t, []bool{true, false}, &fakeInput{target: 0})
		require.NoError(t, e.State.Deal(meta.INITIAL_HAND_SIZE))

		ok, err := e.DoAction(ctx, game.StealAction)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("valid draw", func(t *testing.T) {
		e, _ := newEngine(t, []bool{true, false}, &fakeInput{count: 2})
		require.NoError(t, e.State.Deal(meta.INITIAL_HAND_SIZE))

		ok, err := e.DoAction(ctx, game.DrawMultipleAction)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, meta.INITIAL_HAND_SIZE+2, e.State.Current().Hand.Size())
	})

	t.Run("abandoned group is not counted", func(t *testing.T) {
		e, _ := newEngine(t, []bool{true, false}, &fakeInput{giveUp: true})
		require.NoError(t, e.State.Deal(meta.INITIAL_HAND_SIZE))
		for n := 4; n <= 6; n++ {
			require.NoError(t, e.State.Current().Hand.Add(game.Card{ID: 1000 + n, Color: game.Blue, Number: n}))
		}
		require.True(t, e.State.IsLegal(game.DiscardGroupAction))

		ok, err := e.DoAction(ctx, game.DiscardGroupAction)
		require.NoError(t, err)
		require.False(t, ok)
		require.Zero(t, e.turns)
		require.Equal(t, meta.INITIAL_HAND_SIZE+3, e.State.Current().Hand.Size())
	})

	t.Run("draw then discard", func(t *testing.T) {
		e, _ := newEngine(t, []bool{true, false}, &fakeInput{})
		require.NoError(t, e.State.Deal(meta.INITIAL_HAND_SIZE))

		ok, err := e.DoAction(ctx, game.DrawDiscardDrawAction)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []game.ActionType{game.DrawDiscardDiscardAction, game.PlayForMeAction}, e.HumanOptions())

		ok, err = e.DoAction(ctx, game.DrawDiscardDiscardAction)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, meta.INITIAL_HAND_SIZE, e.State.Current().Hand.Size())
	})
}

func TestStepPropagatesInputErrors(t *testing.T) {
	e, _ := newEngine(t, []bool{true, false}, &fakeInput{err: io.EOF})
	_, err := e.Step(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestRun(t *testing.T) {
	t.Run("computers play to the end", func(t *testing.T) {
		mem := store.NewMemory()
		players := []*game.Player{game.NewPlayer("a", false), game.NewPlayer("b", false)}
		gs, err := game.NewGameState(players, game.WithSeed(30))
		require.NoError(t, err)
		view := &fakeView{}
		e := LocalEngine(gs, newComputer(player.WithStore(mem)), &fakeInput{}, view,
			WithComputerDelay(0), WithFrame(time.Microsecond), WithMaxTurns(300))

		winner, err := e.Run(context.Background())
		if err != nil {
			require.ErrorIs(t, err, ErrTurnLimit)
			require.Nil(t, winner)
		} else {
			require.NotNil(t, winner)
			require.Equal(t, winner, view.winner)
			require.True(t, winner.Hand.IsEmpty())
		}
		require.Positive(t, mem.Saves(), "the agent is flushed on exit")
	})

	t.Run("cancelled", func(t *testing.T) {
		mem := store.NewMemory()
		players := []*game.Player{game.NewPlayer("a", false), game.NewPlayer("b", false)}
		gs, err := game.NewGameState(players, game.WithSeed(31))
		require.NoError(t, err)
		e := LocalEngine(gs, newComputer(player.WithStore(mem)), &fakeInput{}, &fakeView{}, WithFrame(time.Hour))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 1, mem.Saves())
	})
}

func TestRunCancelledWhileWaitingForHuman(t *testing.T) {
	mem := store.NewMemory()
	players := []*game.Player{game.NewPlayer("me", true), game.NewPlayer("bot", false)}
	gs, err := game.NewGameState(players, game.WithSeed(32))
	require.NoError(t, err)
	input := &blockingInput{waiting: make(chan struct{})}
	e := LocalEngine(gs, newComputer(player.WithStore(mem)), input, &fakeView{})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := e.Run(ctx)
		errc <- err
	}()

	<-input.waiting
	cancel()
	select {
	case err := <-errc:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.Equal(t, 1, mem.Saves(), "the agent is flushed on exit")
}

func TestPacer(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	p := NewPacer(time.Second, clock.Now)

	require.True(t, p.Ready())
	p.Mark()
	require.False(t, p.Ready())
	clock.now = clock.now.Add(time.Second)
	require.True(t, p.Ready())
}
