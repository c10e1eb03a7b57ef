package state

import "time"

type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

type SleepQuality string

const (
	SleepPoor      SleepQuality = "Poor"
	SleepFair      SleepQuality = "Fair"
	SleepGood      SleepQuality = "Good"
	SleepExcellent SleepQuality = "Excellent"
)

type UserProfile struct {
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`           // "Male", "Female", "Non-binary", "Other" or empty
	Height         *float64 `json:"height,omitempty"` // cm
	Weight         *float64 `json:"weight,omitempty"` // kg
	Goals          []string `json:"goals"`
	MedicalHistory string   `json:"medicalHistory"` // static long-term context
	GeneticRisks   string   `json:"geneticRisks"`
	Concerns       []string `json:"concerns"`
}

type FoodEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fats      float64   `json:"fats"`
	Timestamp time.Time `json:"timestamp"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type ExerciseEntry struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"durationMinutes"`
	Intensity       Intensity `json:"intensity"`
	CaloriesBurned  float64   `json:"caloriesBurned"`
	Timestamp       time.Time `json:"timestamp"`
	Notes           string    `json:"notes,omitempty"`
}

// SleepEntry is a per-day singleton; saving again overwrites it.
type SleepEntry struct {
	Date             string       `json:"date"`
	BedTime          string       `json:"bedTime"`  // HH:mm
	WakeTime         string       `json:"wakeTime"` // HH:mm
	DurationHours    float64      `json:"durationHours"`
	Quality          SleepQuality `json:"quality"`
	DreamDescription string       `json:"dreamDescription,omitempty"`
	DreamAnalysis    string       `json:"dreamAnalysis,omitempty"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"` // "user" or "agent"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// DailySummary is an immutable archive record created once at day end.
type DailySummary struct {
	Date           string          `json:"date"`
	Consensus      string          `json:"consensus"`
	CaloriesIn     float64         `json:"caloriesIn"`
	CaloriesBurned float64         `json:"caloriesBurned"`
	Mood           *string         `json:"mood"`
	Details        string          `json:"details,omitempty"`
	FoodLog        []FoodEntry     `json:"foodLog,omitempty"`
	ExerciseLog    []ExerciseEntry `json:"exerciseLog,omitempty"`
	SleepLog       *SleepEntry     `json:"sleepLog,omitempty"`
}

// AppState is the single source of truth. The food/exercise logs, sleep
// entry, chat transcript, emotion and consensus always describe the
// current, not-yet-archived day; history holds frozen past days,
// most recent first.
type AppState struct {
	IsAuthenticated    bool            `json:"isAuthenticated"`
	OnboardingComplete bool            `json:"onboardingComplete"`
	DaysActive         int             `json:"daysActive"`
	Profile            UserProfile     `json:"profile"`
	FoodLog            []FoodEntry     `json:"foodLog"`
	ExerciseLog        []ExerciseEntry `json:"exerciseLog"`
	SleepLog           *SleepEntry     `json:"sleepLog"`
	ChatHistory        []ChatMessage   `json:"chatHistory"`
	CurrentEmotion     *string         `json:"currentEmotion"`
	DailyConsensus     *string         `json:"dailyConsensus"`
	History            []DailySummary  `json:"history"`
	IsSynthesizing     bool            `json:"isSynthesizing"`
}

func DefaultProfile() UserProfile {
	return UserProfile{
		Age:            25,
		MedicalHistory: "None",
		Goals:          []string{},
		Concerns:       []string{},
	}
}

func DefaultState() AppState {
	return AppState{
		DaysActive:  1,
		Profile:     DefaultProfile(),
		FoodLog:     []FoodEntry{},
		ExerciseLog: []ExerciseEntry{},
		ChatHistory: []ChatMessage{},
		History:     []DailySummary{},
	}
}

func (e SleepEntry) Clone() SleepEntry {
	return e // no reference fields
}

func (s DailySummary) Clone() DailySummary {
	out := s
	out.Mood = cloneStringPtr(s.Mood)
	out.FoodLog = cloneFood(s.FoodLog)
	out.ExerciseLog = cloneExercise(s.ExerciseLog)
	out.SleepLog = cloneSleepPtr(s.SleepLog)
	return out
}

func (p UserProfile) Clone() UserProfile {
	out := p
	out.Height = cloneFloatPtr(p.Height)
	out.Weight = cloneFloatPtr(p.Weight)
	out.Goals = cloneStrings(p.Goals)
	out.Concerns = cloneStrings(p.Concerns)
	return out
}

// Clone returns a deep copy so readers never alias store-owned slices.
func (s AppState) Clone() AppState {
	out := s
	out.Profile = s.Profile.Clone()
	out.FoodLog = cloneFood(s.FoodLog)
	out.ExerciseLog = cloneExercise(s.ExerciseLog)
	out.SleepLog = cloneSleepPtr(s.SleepLog)
	out.ChatHistory = cloneChat(s.ChatHistory)
	out.CurrentEmotion = cloneStringPtr(s.CurrentEmotion)
	out.DailyConsensus = cloneStringPtr(s.DailyConsensus)
	if s.History != nil {
		out.History = make([]DailySummary, len(s.History))
		for i, h := range s.History {
			out.History[i] = h.Clone()
		}
	}
	return out
}

// The slice helpers preserve empty-vs-nil so a cleared log still
// serializes as [] the way the persisted layout expects.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneFood(in []FoodEntry) []FoodEntry {
	if in == nil {
		return nil
	}
	out := make([]FoodEntry, len(in))
	copy(out, in)
	return out
}

func cloneExercise(in []ExerciseEntry) []ExerciseEntry {
	if in == nil {
		return nil
	}
	out := make([]ExerciseEntry, len(in))
	copy(out, in)
	return out
}

func cloneChat(in []ChatMessage) []ChatMessage {
	if in == nil {
		return nil
	}
	out := make([]ChatMessage, len(in))
	copy(out, in)
	return out
}

func cloneSleepPtr(in *SleepEntry) *SleepEntry {
	if in == nil {
		return nil
	}
	c := in.Clone()
	return &c
}

func cloneStringPtr(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func cloneFloatPtr(in *float64) *float64 {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
