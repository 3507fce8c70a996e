package store

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// HabitColors is the palette offered when creating a habit.
var HabitColors = []string{
	"#3B82F6", // blue
	"#8B5CF6", // purple
	"#10B981", // green
	"#F59E0B", // yellow
	"#EF4444", // red
	"#6366F1", // indigo
	"#EC4899", // pink
	"#F97316", // orange
	"#84CC16", // lime
	"#06B6D4", // cyan
}

var habitTemplates = []Habit{
	{
		Name:          "Drink 8 glasses of water",
		Icon:          "cup-soda",
		Color:         "#3B82F6",
		Category:      CategoryHealth,
		Description:   "Drink at least 8 glasses of water a day",
		Schedule:      ScheduleDaily,
		Target:        8,
		TargetType:    "daily",
		ReminderTimes: []string{"08:00", "12:00", "16:00", "20:00"},
		IsActive:      true,
	},
	{
		Name:          "Read for 30 minutes",
		Icon:          "book-open",
		Color:         "#8B5CF6",
		Category:      CategoryLearning,
		Description:   "Read a book for at least 30 minutes",
		Schedule:      ScheduleDaily,
		Target:        1,
		TargetType:    "daily",
		ReminderTimes: []string{"19:00"},
		IsActive:      true,
	},
	{
		Name:          "Work out",
		Icon:          "dumbbell",
		Color:         "#F59E0B",
		Category:      CategoryHealth,
		Description:   "Exercise for at least 30 minutes",
		Schedule:      ScheduleCustom,
		CustomDays:    []int{1, 3, 5}, // Monday, Wednesday, Friday
		Target:        3,
		TargetType:    "weekly",
		ReminderTimes: []string{"06:00"},
		IsActive:      true,
	},
	{
		Name:          "Meditate for 10 minutes",
		Icon:          "brain",
		Color:         "#10B981",
		Category:      CategoryMindfulness,
		Description:   "A short meditation or mindfulness session",
		Schedule:      ScheduleDaily,
		Target:        1,
		TargetType:    "daily",
		ReminderTimes: []string{"06:30", "21:00"},
		IsActive:      true,
	},
	{
		Name:          "Journaling",
		Icon:          "pen-tool",
		Color:         "#EF4444",
		Category:      CategoryMindfulness,
		Description:   "Write a daily journal entry",
		Schedule:      ScheduleDaily,
		Target:        1,
		TargetType:    "daily",
		ReminderTimes: []string{"21:30"},
		IsActive:      true,
	},
}

// Templates returns the built-in habit templates. The slice is a copy;
// callers may mutate it freely.
func Templates() []Habit {
	out := make([]Habit, len(habitTemplates))
	copy(out, habitTemplates)
	return out
}

// InitializeSampleData seeds the first three templates plus a week of
// randomized history, but only when no habits exist yet. The completion
// probability decreases the further back a day lies, so recent days look
// better kept. rng is injected so tests can seed deterministically.
func (s *Store) InitializeSampleData(rng *rand.Rand) error {
	if s.CountHabits() > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Op: "seed sample data", Err: err}
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	habits := Templates()[:3]
	for i := range habits {
		habits[i].ID = uuid.NewString()
		habits[i].CreatedAt = now
		habits[i].UpdatedAt = now
		if err := insertHabit(tx, habits[i]); err != nil {
			return &StorageError{Op: "seed sample habits", Err: err}
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, -i)
		for _, h := range habits {
			if rng.Float64() <= float64(i)*0.1 {
				continue
			}
			completedAt := day.Add(time.Duration(rng.Float64() * 24 * float64(time.Hour)))
			l := HabitLog{
				ID:          uuid.NewString(),
				HabitID:     h.ID,
				Date:        day.Format(DateFormat),
				Completed:   true,
				CompletedAt: &completedAt,
			}
			if err := insertLog(tx, l); err != nil {
				return &StorageError{Op: "seed sample logs", Err: err}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "seed sample data", Err: err}
	}
	return nil
}
