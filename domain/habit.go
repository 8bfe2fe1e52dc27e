package domain

import "time"

// DateFormat is the calendar-day key used for habit completions and reviews.
const DateFormat = "2006-01-02"

// Habit tracks a recurring practice by the set of days it was completed on.
type Habit struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CompletedDates []string `json:"completedDates"`
	// Streak is derived from CompletedDates; demo data may seed a static value.
	Streak int `json:"streak,omitempty"`
}

// CompletedOn reports whether the habit was completed on the given day.
func (h *Habit) CompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// ToggleDate adds the day to the completion set, or removes it if present.
func (h *Habit) ToggleDate(date string) {
	for i, d := range h.CompletedDates {
		if d == date {
			h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
			return
		}
	}
	h.CompletedDates = append(h.CompletedDates, date)
}

// ComputeStreak counts consecutive completed days ending at today. A habit not
// yet completed today still counts a streak ending yesterday, so the streak
// does not reset mid-day.
func (h *Habit) ComputeStreak(today time.Time) int {
	day := today
	if !h.CompletedOn(day.Format(DateFormat)) {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for h.CompletedOn(day.Format(DateFormat)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
