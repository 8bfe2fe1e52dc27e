package domain

import "strings"

// User is the minimal profile returned by the auth endpoints and kept client-side.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserData is the single document holding all of one user's data.
type UserData struct {
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	Tasks        []Task        `json:"tasks"`
	Notes        []Note        `json:"notes"`
	Habits       []Habit       `json:"habits"`
	Goals        []Goal        `json:"goals"`
	Areas        []Area        `json:"areas"`
	DailyReviews []DailyReview `json:"dailyReviews"`
	Overview     *Overview     `json:"overview,omitempty"`
}

// Note is a free-form journal entry.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Goal tracks long-term progress as a 0-100 percentage.
type Goal struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Progress   int    `json:"progress"`
	TargetDate string `json:"targetDate,omitempty"`
}

// Area is a life area with a balance score from 0 to 100.
type Area struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Overview holds derived per-category counts. It is never authoritative: it is
// recomputed from the collections whenever the aggregate is loaded or regenerated.
type Overview struct {
	Tasks   int `json:"tasks"`
	Notes   int `json:"notes"`
	Habits  int `json:"habits"`
	Goals   int `json:"goals"`
	Areas   int `json:"areas"`
	Reviews int `json:"reviews"`
}

// ComputeOverview rederives the per-category counts from the collections.
func (d *UserData) ComputeOverview() {
	d.Overview = &Overview{
		Tasks:   len(d.Tasks),
		Notes:   len(d.Notes),
		Habits:  len(d.Habits),
		Goals:   len(d.Goals),
		Areas:   len(d.Areas),
		Reviews: len(d.DailyReviews),
	}
}

// NewSkeleton builds the default empty aggregate for an identity. The display
// name is derived from the local part of the email.
func NewSkeleton(email string) *UserData {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &UserData{
		Email:        email,
		Name:         name,
		Tasks:        []Task{},
		Notes:        []Note{},
		Habits:       []Habit{},
		Goals:        []Goal{},
		Areas:        []Area{},
		DailyReviews: []DailyReview{},
	}
}

// AggregatePatch is a partial aggregate. Top-level keys that are present
// replace the stored value wholesale; absent keys leave it untouched.
type AggregatePatch struct {
	Name         *string        `json:"name"`
	Tasks        *[]Task        `json:"tasks"`
	Notes        *[]Note        `json:"notes"`
	Habits       *[]Habit       `json:"habits"`
	Goals        *[]Goal        `json:"goals"`
	Areas        *[]Area        `json:"areas"`
	DailyReviews *[]DailyReview `json:"dailyReviews"`
	Overview     *Overview      `json:"overview"`
}

// ApplyPatch performs a shallow merge of the patch onto the aggregate.
func (d *UserData) ApplyPatch(p AggregatePatch) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Tasks != nil {
		d.Tasks = *p.Tasks
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.Habits != nil {
		d.Habits = *p.Habits
	}
	if p.Goals != nil {
		d.Goals = *p.Goals
	}
	if p.Areas != nil {
		d.Areas = *p.Areas
	}
	if p.DailyReviews != nil {
		d.DailyReviews = *p.DailyReviews
	}
	if p.Overview != nil {
		d.Overview = p.Overview
	}
}

// Clone returns a deep copy of the aggregate so a snapshot handed to the save
// path cannot be mutated by later edits.
func (d *UserData) Clone() *UserData {
	if d == nil {
		return nil
	}
	cpy := *d
	cpy.Tasks = append([]Task(nil), d.Tasks...)
	cpy.Notes = append([]Note(nil), d.Notes...)
	cpy.Habits = make([]Habit, len(d.Habits))
	for i, h := range d.Habits {
		h.CompletedDates = append([]string(nil), h.CompletedDates...)
		cpy.Habits[i] = h
	}
	cpy.Goals = append([]Goal(nil), d.Goals...)
	cpy.Areas = append([]Area(nil), d.Areas...)
	cpy.DailyReviews = append([]DailyReview(nil), d.DailyReviews...)
	if d.Overview != nil {
		ov := *d.Overview
		cpy.Overview = &ov
	}
	return &cpy
}
