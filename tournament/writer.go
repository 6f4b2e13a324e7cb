package tournament

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists tournament results as CSV files under a timestamped
// directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a result directory under root named by the current UTC
// timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create result directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the directory results are written into.
func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteGameRecords writes one CSV row per game.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "red", "blue", "first", "winner", "turns", "timeout", "duration", "avg_depth"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.RedAgent,
			record.BlueAgent,
			record.First.String(),
			record.Winner.String(),
			strconv.Itoa(record.Turns),
			strconv.FormatBool(record.Timeout),
			record.Duration.String(),
			strconv.FormatFloat(record.AvgDepth, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}
	return nil
}

// WriteSummary writes the aggregate result as a single-row CSV.
func (w *Writer) WriteSummary(result Result) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"games", "red_wins", "blue_wins", "timeouts", "red_win_rate", "avg_turns", "avg_move_time"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	row := []string{
		strconv.Itoa(result.Games),
		strconv.Itoa(result.RedWins),
		strconv.Itoa(result.BlueWins),
		strconv.Itoa(result.Timeouts),
		strconv.FormatFloat(result.RedWinRate(), 'f', 3, 64),
		strconv.FormatFloat(result.AvgTurns, 'f', 1, 64),
		result.AvgMoveTime.String(),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}
	return nil
}
