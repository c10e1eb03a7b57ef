package state

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder consensus for archived days where no synthesis ran.
const missingConsensus = "No meeting minutes generated for this day."

const archiveDateLayout = "Mon, Jan 2, 2006"

// EndDay freezes the current day into the history archive and resets the
// working fields. A summary is created only when the day holds any data
// (consensus, food, exercise or sleep); the day counter advances either
// way. The successor state is built as one value, so a caller observing
// the result never sees a half-archived day.
func EndDay(s AppState, now time.Time) AppState {
	next := s.Clone()

	if dayHasData(s) {
		summary := DailySummary{
			Date:           now.Format(archiveDateLayout),
			Consensus:      missingConsensus,
			CaloriesIn:     sumCalories(s.FoodLog),
			CaloriesBurned: sumCaloriesBurned(s.ExerciseLog),
			Mood:           cloneStringPtr(s.CurrentEmotion),
			Details:        dayDetails(s),
			FoodLog:        cloneFood(s.FoodLog),
			ExerciseLog:    cloneExercise(s.ExerciseLog),
			SleepLog:       cloneSleepPtr(s.SleepLog),
		}
		if s.DailyConsensus != nil && *s.DailyConsensus != "" {
			summary.Consensus = *s.DailyConsensus
		}
		next.History = append([]DailySummary{summary}, next.History...)
	}

	next.DaysActive = s.DaysActive + 1
	next.FoodLog = []FoodEntry{}
	next.ExerciseLog = []ExerciseEntry{}
	next.SleepLog = nil
	next.ChatHistory = []ChatMessage{}
	next.CurrentEmotion = nil
	next.DailyConsensus = nil
	next.IsSynthesizing = false
	return next
}

func dayHasData(s AppState) bool {
	if s.DailyConsensus != nil && *s.DailyConsensus != "" {
		return true
	}
	return len(s.FoodLog) > 0 || len(s.ExerciseLog) > 0 || s.SleepLog != nil
}

// dayDetails builds the compact per-day recap kept alongside the full
// logs. Only the length of the medical history goes in, never the text.
func dayDetails(s AppState) string {
	foodNames := make([]string, 0, len(s.FoodLog))
	for _, f := range s.FoodLog {
		foodNames = append(foodNames, f.Name)
	}
	exerciseTypes := make([]string, 0, len(s.ExerciseLog))
	for _, e := range s.ExerciseLog {
		exerciseTypes = append(exerciseTypes, e.Type)
	}

	diet := joinOrNone(foodNames)
	activity := joinOrNone(exerciseTypes)
	sleep := "None"
	if s.SleepLog != nil {
		sleep = fmt.Sprintf("%sh (%s)", formatHours(s.SleepLog.DurationHours), s.SleepLog.Quality)
	}

	return fmt.Sprintf("[Diet: %s] [Activity: %s] [Sleep: %s] [Medical Context Len: %d]",
		diet, activity, sleep, len(s.Profile.MedicalHistory))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

// formatHours prints 7 as "7" and 7.5 as "7.5".
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func sumCalories(log []FoodEntry) float64 {
	var total float64
	for _, f := range log {
		total += f.Calories
	}
	return total
}

func sumCaloriesBurned(log []ExerciseEntry) float64 {
	var total float64
	for _, e := range log {
		total += e.CaloriesBurned
	}
	return total
}
