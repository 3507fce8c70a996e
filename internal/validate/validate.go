// Package validate checks habit and log payloads against the data-model
// invariants before they reach the store. Failures come back as a
// field-level error list so the UI can highlight each invalid field.
package validate

import (
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sadopc/habitual/internal/store"
)

// FieldError names one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is the full set of validation failures for one payload.
type Errors []FieldError

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(habitScheduleRules, store.Habit{})
	return v
}

// habitScheduleRules enforces the cross-field schedule invariants:
// custom requires a non-empty weekday set, interval a positive day count.
func habitScheduleRules(sl validator.StructLevel) {
	h := sl.Current().Interface().(store.Habit)
	switch h.Schedule {
	case store.ScheduleCustom:
		if len(h.CustomDays) == 0 {
			sl.ReportError(h.CustomDays, "CustomDays", "CustomDays", "customdays", "")
			return
		}
		for _, d := range h.CustomDays {
			if d < 0 || d > 6 {
				sl.ReportError(h.CustomDays, "CustomDays", "CustomDays", "weekday", "")
				return
			}
		}
	case store.ScheduleInterval:
		if h.IntervalDays < 1 {
			sl.ReportError(h.IntervalDays, "IntervalDays", "IntervalDays", "intervaldays", "")
		}
	}
}

// Habit validates a habit create/edit payload. A nil result means valid.
func Habit(h store.Habit) Errors {
	err := v.Struct(h)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "habit", Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldName(fe.Field()), Message: message(fe)})
	}
	return out
}

// HabitLog validates a log payload, chiefly the completedAt-iff-completed
// invariant. Used on bulk import.
func HabitLog(l store.HabitLog) Errors {
	var out Errors
	if l.HabitID == "" {
		out = append(out, FieldError{Field: "habitId", Message: "must not be empty"})
	}
	if _, err := time.Parse(store.DateFormat, l.Date); err != nil {
		out = append(out, FieldError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	if l.Completed && l.CompletedAt == nil {
		out = append(out, FieldError{Field: "completedAt", Message: "must be set when completed is true"})
	}
	if !l.Completed && l.CompletedAt != nil {
		out = append(out, FieldError{Field: "completedAt", Message: "must be empty when completed is false"})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "customdays":
		return "must list at least one weekday for a custom schedule"
	case "weekday":
		return "weekday numbers must be between 0 and 6"
	case "intervaldays":
		return "must be a positive number of days for an interval schedule"
	default:
		return "is invalid"
	}
}

// fieldName lowers the first rune so errors use the json field spelling.
func fieldName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
