package learner

import (
	"time"

	"notty/game"

	"golang.org/x/exp/rand"
)

// Learning defaults.
const (
	DefaultAlpha        = 0.1
	DefaultGamma        = 0.9
	DefaultEpsilon      = 0.2
	DefaultEpsilonDecay = 0.9995
	DefaultEpsilonMin   = 0.05
)

// QTable maps a state to learned action values. Missing entries read as 0.
type QTable map[State]map[game.ActionType]float64

func (q QTable) get(s State, a game.ActionType) float64 {
	return q[s][a]
}

func (q QTable) set(s State, a game.ActionType, v float64) {
	actions, ok := q[s]
	if !ok {
		actions = make(map[game.ActionType]float64)
		q[s] = actions
	}
	actions[a] = v
}

type Option func(a *Agent)

func WithAlpha(alpha float64) Option {
	return func(a *Agent) {
		if alpha > 0 {
			a.alpha = alpha
		}
	}
}

func WithGamma(gamma float64) Option {
	return func(a *Agent) {
		if gamma >= 0 {
			a.gamma = gamma
		}
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(a *Agent) {
		if epsilon >= 0 {
			a.epsilon = epsilon
		}
	}
}

func WithEpsilonDecay(decay float64) Option {
	return func(a *Agent) {
		if decay > 0 {
			a.epsilonDecay = decay
		}
	}
}

func WithEpsilonMin(epsilonMin float64) Option {
	return func(a *Agent) {
		if epsilonMin >= 0 {
			a.epsilonMin = epsilonMin
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

type decision struct {
	state  State
	action game.ActionType
}

// Agent is a tabular Q-learning agent with an epsilon-greedy policy.
type Agent struct {
	alpha        float64
	gamma        float64
	epsilon      float64
	epsilonDecay float64
	epsilonMin   float64
	startEpsilon float64
	q            QTable
	last         *decision

	totalActions       int
	explorationActions int

	rng *rand.Rand
}

func NewAgent(options ...Option) *Agent {
	a := &Agent{ // Default values
		alpha:        DefaultAlpha,
		gamma:        DefaultGamma,
		epsilon:      DefaultEpsilon,
		epsilonDecay: DefaultEpsilonDecay,
		epsilonMin:   DefaultEpsilonMin,
		q:            make(QTable),
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	a.startEpsilon = a.epsilon
	return a
}

// ChooseAction picks one of the legal actions and remembers it for the next Learn.
func (a *Agent) ChooseAction(gs *game.GameState) game.ActionType {
	state := Featurize(gs)
	legal := gs.LegalActions()
	if len(legal) == 0 {
		return game.NextTurnAction
	}

	a.totalActions++

	var action game.ActionType
	if a.rng.Float64() < a.epsilon {
		a.explorationActions++
		action = legal[a.rng.Intn(len(legal))]
	} else {
		action = a.greedy(state, legal)
	}

	a.last = &decision{state: state, action: action}
	return action
}

// greedy returns a highest-valued action, breaking ties uniformly at random.
func (a *Agent) greedy(state State, legal []game.ActionType) game.ActionType {
	best := []game.ActionType{legal[0]}
	bestValue := a.q.get(state, legal[0])
	for _, action := range legal[1:] {
		value := a.q.get(state, action)
		switch {
		case value > bestValue:
			best = []game.ActionType{action}
			bestValue = value
		case value == bestValue:
			best = append(best, action)
		}
	}
	return best[a.rng.Intn(len(best))]
}

// Learn applies the temporal-difference update for the remembered decision, then decays epsilon.
func (a *Agent) Learn(gs *game.GameState, reward float64) {
	if a.last == nil {
		return
	}

	next := Featurize(gs)
	nextMax := 0.0
	if legal := gs.LegalActions(); len(legal) > 0 {
		nextMax = a.q.get(next, legal[0])
		for _, action := range legal[1:] {
			nextMax = max(nextMax, a.q.get(next, action))
		}
	}

	old := a.q.get(a.last.state, a.last.action)
	a.q.set(a.last.state, a.last.action, old+a.alpha*(reward+a.gamma*nextMax-old))

	a.epsilon = max(a.epsilonMin, a.epsilon*a.epsilonDecay)
}

// ResetEpisode forgets the remembered decision so a new game does not learn from the last one.
func (a *Agent) ResetEpisode() {
	a.last = nil
}

func (a *Agent) Value(s State, action game.ActionType) float64 {
	return a.q.get(s, action)
}

func (a *Agent) Epsilon() float64 {
	return a.epsilon
}

func (a *Agent) TotalActions() int {
	return a.totalActions
}

type Stats struct {
	StatesLearned      int
	TotalActions       int
	ExplorationActions int
	ExplorationRate    float64
	Epsilon            float64
}

func (a *Agent) Stats() Stats {
	rate := 0.0
	if a.totalActions > 0 {
		rate = float64(a.explorationActions) / float64(a.totalActions)
	}
	return Stats{
		StatesLearned:      len(a.q),
		TotalActions:       a.totalActions,
		ExplorationActions: a.explorationActions,
		ExplorationRate:    rate,
		Epsilon:            a.epsilon,
	}
}

// reset clears everything learned and restores the configured epsilon.
func (a *Agent) reset() {
	a.q = make(QTable)
	a.epsilon = a.startEpsilon
	a.totalActions = 0
	a.explorationActions = 0
	a.last = nil
}
