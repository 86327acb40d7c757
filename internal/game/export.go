package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExportScoreTable writes the board snapshot as JSON for the external score
// table image renderer. The renderer consumes the same structure the
// SendScores intent carries.
func ExportScoreTable(table ScoreTable, filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to serialize score table: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write score table: %w", err)
	}
	return nil
}
