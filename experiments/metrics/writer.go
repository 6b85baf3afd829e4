package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RunConfig describes the learning setup of a training run.
type RunConfig struct {
	ID           string
	Games        int
	Players      int
	MaxTurns     int
	Alpha        float64
	Gamma        float64
	Epsilon      float64
	EpsilonDecay float64
	EpsilonMin   float64
}

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<run> for the run's CSV files.
func NewWriter(root, run string) (*Writer, error) {
	baseDir := filepath.Join(root, run)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRunConfig(config RunConfig) error {
	header := []string{"id", "games", "players", "max_turns", "alpha", "gamma", "epsilon", "epsilon_decay", "epsilon_min"}
	rows := [][]string{{
		config.ID,
		strconv.Itoa(config.Games),
		strconv.Itoa(config.Players),
		strconv.Itoa(config.MaxTurns),
		formatFloat(config.Alpha),
		formatFloat(config.Gamma),
		formatFloat(config.Epsilon),
		formatFloat(config.EpsilonDecay),
		formatFloat(config.EpsilonMin),
	}}
	return w.write("run_config.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "players", "winner", "start_time", "end_time", "duration", "total_moves", "explored", "total_reward"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Players),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Explored),
			formatFloat(record.TotalReward),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "reward", "hand_size", "explored"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Action,
			formatFloat(record.Reward),
			strconv.Itoa(record.HandSize),
			strconv.FormatBool(record.Explored),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
