// Package gateway is the boundary to the hosted generative models. Every
// function degrades to a documented fallback on transport or parse
// failure; callers never see an unhandled fault.
package gateway

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"dailyhealth.app/agent-server/internal/state"
)

// FoodAnalysis is the fixed JSON shape of the dietitian calls.
type FoodAnalysis struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Notes    string  `json:"notes,omitempty"`
}

// ExerciseEstimate is the fixed JSON shape of the trainer estimate call.
type ExerciseEstimate struct {
	CaloriesBurned float64         `json:"caloriesBurned"`
	Intensity      state.Intensity `json:"intensity"`
}

// DefaultExerciseEstimate is substituted when the estimate call fails.
func DefaultExerciseEstimate() ExerciseEstimate {
	return ExerciseEstimate{CaloriesBurned: 100, Intensity: state.IntensityMedium}
}

// Agent is the full set of model-backed operations. Free-text methods
// return an already-degraded string on failure; the two food analysis
// calls surface their error so the caller can decide how to fall back.
type Agent interface {
	AnalyzeFoodImage(ctx context.Context, imageBase64 string) (FoodAnalysis, error)
	AnalyzeFoodText(ctx context.Context, description string) (FoodAnalysis, error)
	EstimateExercise(ctx context.Context, description string, durationMinutes int) ExerciseEstimate
	GenerateWorkout(ctx context.Context, profile state.UserProfile, mood string) string
	AnalyzeDream(ctx context.Context, dreamText string) string
	CounselorReply(ctx context.Context, history []state.ChatMessage, message string) string
	GenerateJournal(ctx context.Context, transcript string) string
	ConsultMedical(ctx context.Context, profile state.UserProfile, question string) string
	AnalyzeMedicalDocument(ctx context.Context, imageBase64 string) string
	SynthesizeDailyReport(ctx context.Context, st state.AppState) string
	AskCoordinator(ctx context.Context, st state.AppState, question string) string
}

// decodeStructured unmarshals a model response that was asked for as
// JSON. Models still wrap payloads in code fences or emit slightly
// broken JSON, so the raw text is unfenced first and run through
// jsonrepair before giving up.
func decodeStructured(raw string, v any) error {
	raw = stripFences(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	fixed, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(fixed), v)
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}
