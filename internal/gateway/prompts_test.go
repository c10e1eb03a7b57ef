package gateway

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dailyhealth.app/agent-server/internal/state"
)

func TestSynthesisPromptCarriesTodaysLogs(t *testing.T) {
	t.Parallel()

	mood := "Calm"
	st := state.DefaultState()
	st.Profile.Name = "Ada"
	st.Profile.Age = 34
	st.Profile.Gender = "Female"
	st.Profile.MedicalHistory = "Mild asthma"
	st.FoodLog = []state.FoodEntry{{Name: "Oatmeal", Calories: 300, Protein: 10}}
	st.ExerciseLog = []state.ExerciseEntry{{Type: "Running", DurationMinutes: 30, Intensity: state.IntensityHigh}}
	st.SleepLog = &state.SleepEntry{DurationHours: 7.5, Quality: state.SleepGood}
	st.CurrentEmotion = &mood

	now := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	prompt := synthesisPrompt(st, now)

	require.Contains(t, prompt, "Ada, 34yo Female.")
	require.Contains(t, prompt, "Oatmeal (300kcal, P:10g)")
	require.Contains(t, prompt, "Running (30min, High)")
	require.Contains(t, prompt, "7.5hrs, Quality: Good")
	require.Contains(t, prompt, "Current Emotion: Calm.")
	require.Contains(t, prompt, "**Date:** Monday, March 9, 2026")
	require.Contains(t, prompt, "No previous history recorded.")
}

func TestSynthesisPromptEmptyDayFallbacks(t *testing.T) {
	t.Parallel()

	prompt := synthesisPrompt(state.DefaultState(), time.Now())
	require.Contains(t, prompt, "No food logged")
	require.Contains(t, prompt, "No exercise logged")
	require.Contains(t, prompt, "No sleep logged")
	require.Contains(t, prompt, "Current Emotion: Not recorded.")
}

func TestSynthesisPromptRecentHistoryWindow(t *testing.T) {
	t.Parallel()

	mood := "Happy"
	st := state.DefaultState()
	for _, date := range []string{"Thu, Mar 5, 2026", "Wed, Mar 4, 2026", "Tue, Mar 3, 2026", "Mon, Mar 2, 2026"} {
		st.History = append(st.History, state.DailySummary{
			Date:           date,
			Mood:           &mood,
			CaloriesIn:     2000,
			CaloriesBurned: 500,
			Details:        "[Diet: Eggs] [Activity: None] [Sleep: None] [Medical Context Len: 4]",
		})
	}

	prompt := synthesisPrompt(st, time.Now())
	require.Contains(t, prompt, "Thu, Mar 5, 2026: Happy (1500 net kcal)")
	require.Contains(t, prompt, "Tue, Mar 3, 2026")
	// Only the three most recent archived days make it in.
	require.NotContains(t, prompt, "Mon, Mar 2, 2026")
}

func TestCoordinatorPromptSummarizesState(t *testing.T) {
	t.Parallel()

	st := state.DefaultState()
	st.Profile.Name = "Ada"
	st.FoodLog = []state.FoodEntry{{Name: "Rice", Calories: 200}, {Name: "Beans", Calories: 150}}
	st.SleepLog = &state.SleepEntry{Quality: state.SleepFair}

	prompt := coordinatorPrompt(st, "How am I doing?")
	require.Contains(t, prompt, "- Food: 2 items (350 kcal)")
	require.Contains(t, prompt, "- Sleep: Fair")
	require.Contains(t, prompt, `User Question: "How am I doing?"`)
}

func TestWorkoutPromptIncludesSafetyContext(t *testing.T) {
	t.Parallel()

	profile := state.UserProfile{
		Age:            42,
		Gender:         "Male",
		MedicalHistory: "Knee surgery 2020",
		Goals:          []string{"Lose weight", "Build stamina"},
	}

	prompt := workoutPrompt(profile, "Energized")
	require.Contains(t, prompt, "42yo, Male")
	require.Contains(t, prompt, "Knee surgery 2020")
	require.Contains(t, prompt, "Lose weight, Build stamina")
	require.Contains(t, prompt, "Current Mood: Energized")
}

func TestMedGemmaPromptShape(t *testing.T) {
	t.Parallel()

	profile := state.UserProfile{MedicalHistory: "Hypertension", GeneticRisks: "Family diabetes"}
	prompt := medGemmaPrompt(profile, "Is HIIT safe for me?")

	require.True(t, strings.HasPrefix(prompt, "You are MedGemma"))
	require.Contains(t, prompt, "User Medical Context: Hypertension")
	require.Contains(t, prompt, "Genetic Risks: Family diabetes")
	require.Contains(t, prompt, "Question: Is HIIT safe for me?")
}
