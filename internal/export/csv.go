package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/habitual/internal/store"
)

// ToCSV writes the habit-log history to path, one row per log, with the
// habit name resolved from habits.
func ToCSV(logs []store.HabitLog, habits map[string]*store.Habit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Habit", "Completed", "Completed At", "Skipped", "Notes"}); err != nil {
		return err
	}

	for _, l := range logs {
		habitName := "Unknown"
		if h, ok := habits[l.HabitID]; ok {
			habitName = h.Name
		}
		completedAt := ""
		if l.CompletedAt != nil {
			completedAt = l.CompletedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			l.Date,
			habitName,
			boolLabel(l.Completed),
			completedAt,
			boolLabel(l.Skipped),
			l.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func boolLabel(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
