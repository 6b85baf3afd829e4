package metrics

import (
	"time"
)

type MoveMetric struct {
	Step     int
	Player   int // Seat index
	Action   string
	Reward   float64
	HandSize int // After the action
	Explored bool
}

type GameMetric struct {
	Players     int
	Winner      string // Empty if the game hit the turn limit
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalMoves  int
	Explored    int
	TotalReward float64
}

// Collector records one game at a time.
type Collector interface {
	Start(players int)
	AddMove(move MoveMetric)
	Complete(winner string) (GameMetric, []MoveMetric)
}

type collector struct {
	players   int
	startTime time.Time
	moves     []MoveMetric
	explored  int
	reward    float64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(players int) {
	m.players = players
	m.startTime = time.Now()
	m.moves = nil
	m.explored = 0
	m.reward = 0
}

// AddMove numbers the move and adds it to the current game.
func (m *collector) AddMove(move MoveMetric) {
	move.Step = len(m.moves) + 1
	m.moves = append(m.moves, move)
	if move.Explored {
		m.explored++
	}
	m.reward += move.Reward
}

func (m *collector) Complete(winner string) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		Players:     m.players,
		Winner:      winner,
		StartTime:   m.startTime,
		EndTime:     end,
		Duration:    end.Sub(m.startTime),
		TotalMoves:  len(m.moves),
		Explored:    m.explored,
		TotalReward: m.reward,
	}, m.moves
}
