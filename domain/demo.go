package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const demoCollectionSize = 100

var (
	demoVerbs   = []string{"Review", "Plan", "Write", "Clean", "Call", "Read", "Organize", "Prepare", "Update", "Research"}
	demoTopics  = []string{"budget", "workout plan", "journal", "inbox", "project notes", "grocery list", "weekly goals", "bookshelf", "travel plans", "garden"}
	demoHabits  = []string{"Morning run", "Meditation", "Reading", "Drink water", "Stretching", "Journaling", "Early sleep", "No sugar", "Language practice", "Walk outside"}
	demoAreas   = []string{"Health", "Career", "Finance", "Relationships", "Learning", "Fun", "Home", "Mindfulness", "Fitness", "Creativity"}
	demoMoods   = []string{"great", "good", "okay", "low", "stressed"}
	demoPhrases = []string{"Made steady progress", "Kept the routine going", "Caught up on backlog", "Helped a friend", "Learned something new"}
)

// GenerateDemoData builds a fully populated aggregate with placeholder
// collections so a fresh account has something to explore. Collection sizes
// are fixed; contents are randomized on every call.
func GenerateDemoData(email, name string) *UserData {
	data := NewSkeleton(email)
	if name != "" {
		data.Name = name
	}

	now := time.Now().UTC()
	for i := 0; i < demoCollectionSize; i++ {
		created := now.AddDate(0, 0, -rand.Intn(60))
		task := Task{
			ID:        uuid.NewString(),
			Title:     demoVerbs[rand.Intn(len(demoVerbs))] + " " + demoTopics[rand.Intn(len(demoTopics))],
			Completed: rand.Intn(3) == 0,
			CreatedAt: created.Format(time.RFC3339),
		}
		if rand.Intn(2) == 0 {
			task.DueDate = now.AddDate(0, 0, rand.Intn(14)).Format(DateFormat)
		}
		data.Tasks = append(data.Tasks, task)

		data.Notes = append(data.Notes, Note{
			ID:        uuid.NewString(),
			Title:     fmt.Sprintf("Note %d", i+1),
			Content:   demoPhrases[rand.Intn(len(demoPhrases))],
			CreatedAt: created.Format(time.RFC3339),
		})

		habit := Habit{
			ID:     uuid.NewString(),
			Name:   fmt.Sprintf("%s #%d", demoHabits[rand.Intn(len(demoHabits))], i+1),
			Streak: rand.Intn(30),
		}
		for d := 0; d < 30; d++ {
			if rand.Intn(2) == 0 {
				habit.CompletedDates = append(habit.CompletedDates, now.AddDate(0, 0, -d).Format(DateFormat))
			}
		}
		data.Habits = append(data.Habits, habit)

		data.Goals = append(data.Goals, Goal{
			ID:         uuid.NewString(),
			Title:      fmt.Sprintf("Goal %d: %s", i+1, demoTopics[rand.Intn(len(demoTopics))]),
			Progress:   rand.Intn(101),
			TargetDate: now.AddDate(0, rand.Intn(6), 0).Format(DateFormat),
		})

		data.Areas = append(data.Areas, Area{
			ID:    uuid.NewString(),
			Name:  fmt.Sprintf("%s #%d", demoAreas[rand.Intn(len(demoAreas))], i+1),
			Score: rand.Intn(101),
		})
	}

	for d := 0; d < 14; d++ {
		data.DailyReviews = append(data.DailyReviews, DailyReview{
			Date:     now.AddDate(0, 0, -d).Format(DateFormat),
			Rating:   1 + rand.Intn(5),
			Mood:     demoMoods[rand.Intn(len(demoMoods))],
			Wins:     demoPhrases[rand.Intn(len(demoPhrases))],
			Grateful: demoPhrases[rand.Intn(len(demoPhrases))],
			Improve:  demoPhrases[rand.Intn(len(demoPhrases))],
			Energy:   rand.Intn(101),
		})
	}

	data.ComputeOverview()
	return data
}
