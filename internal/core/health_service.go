package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"dailyhealth.app/agent-server/internal/gateway"
	"dailyhealth.app/agent-server/internal/state"
)

// HealthService sits between the HTTP shell and the state store,
// running the gateway flows and recording their results.
type HealthService struct {
	store *state.Store
	agent gateway.Agent
}

func NewHealthService(store *state.Store, agent gateway.Agent) *HealthService {
	return &HealthService{store: store, agent: agent}
}

func (s *HealthService) State() state.AppState {
	return s.store.Snapshot()
}

func (s *HealthService) Login() state.AppState {
	return s.store.Apply(state.Login)
}

func (s *HealthService) CompleteOnboarding(update state.ProfileUpdate) state.AppState {
	return s.store.Apply(state.CompleteOnboarding(update))
}

func (s *HealthService) UpdateProfile(update state.ProfileUpdate) state.AppState {
	return s.store.Apply(state.UpdateProfile(update))
}

func (s *HealthService) SetEmotion(emotion string) state.AppState {
	return s.store.Apply(state.SetEmotion(emotion))
}

// LogFoodFromText runs the dietitian analysis over a description and
// appends the resulting entry to today's food log.
func (s *HealthService) LogFoodFromText(ctx context.Context, description string) (state.FoodEntry, error) {
	analysis, err := s.agent.AnalyzeFoodText(ctx, description)
	if err != nil {
		return state.FoodEntry{}, fmt.Errorf("failed to analyze food: %w", err)
	}
	entry := s.recordFood(analysis)
	return entry, nil
}

func (s *HealthService) LogFoodFromImage(ctx context.Context, imageBase64 string) (state.FoodEntry, error) {
	analysis, err := s.agent.AnalyzeFoodImage(ctx, imageBase64)
	if err != nil {
		return state.FoodEntry{}, fmt.Errorf("failed to analyze food: %w", err)
	}
	entry := s.recordFood(analysis)
	return entry, nil
}

func (s *HealthService) recordFood(analysis gateway.FoodAnalysis) state.FoodEntry {
	entry := state.FoodEntry{
		ID:        uuid.NewString(),
		Name:      analysis.Name,
		Calories:  analysis.Calories,
		Protein:   analysis.Protein,
		Carbs:     analysis.Carbs,
		Fats:      analysis.Fats,
		Notes:     analysis.Notes,
		Timestamp: time.Now(),
	}
	s.store.Apply(state.AddFood(entry))
	return entry
}

// LogExercise records an activity, with the trainer agent estimating
// calories and intensity. The estimate degrades internally, so logging
// an exercise never fails.
func (s *HealthService) LogExercise(ctx context.Context, activity string, durationMinutes int) state.ExerciseEntry {
	estimate := s.agent.EstimateExercise(ctx, activity, durationMinutes)
	entry := state.ExerciseEntry{
		ID:              uuid.NewString(),
		Type:            activity,
		DurationMinutes: durationMinutes,
		Intensity:       estimate.Intensity,
		CaloriesBurned:  estimate.CaloriesBurned,
		Timestamp:       time.Now(),
	}
	s.store.Apply(state.AddExercise(entry))
	return entry
}

type SleepInput struct {
	BedTime  string             `json:"bedTime"`
	WakeTime string             `json:"wakeTime"`
	Quality  state.SleepQuality `json:"quality"`
	Dream    string             `json:"dream,omitempty"`
}

// RecordSleep saves the day's singleton sleep entry. Duration is derived
// from the bed/wake times, wrapping past midnight. A dream description
// of any substance also gets an interpretation attached.
func (s *HealthService) RecordSleep(ctx context.Context, in SleepInput) (state.SleepEntry, error) {
	duration, err := sleepDuration(in.BedTime, in.WakeTime)
	if err != nil {
		return state.SleepEntry{}, err
	}

	entry := state.SleepEntry{
		Date:             time.Now().Format(time.RFC3339),
		BedTime:          in.BedTime,
		WakeTime:         in.WakeTime,
		DurationHours:    duration,
		Quality:          in.Quality,
		DreamDescription: in.Dream,
	}
	if len(in.Dream) > 5 {
		entry.DreamAnalysis = s.agent.AnalyzeDream(ctx, in.Dream)
	}

	s.store.Apply(state.SetSleep(&entry))
	return entry, nil
}

// ClearSleep removes the sleep entry so it can be re-entered.
func (s *HealthService) ClearSleep() state.AppState {
	return s.store.Apply(state.SetSleep(nil))
}

// CounselorChat appends the user's message, asks the counselor agent for
// a reply with the prior transcript as history, and appends that too.
func (s *HealthService) CounselorChat(ctx context.Context, message string) state.ChatMessage {
	history := s.store.Snapshot().ChatHistory

	userMsg := state.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    "user",
		Text:      message,
		Timestamp: time.Now(),
	}
	s.store.Apply(state.AddChatMessage(userMsg))

	reply := s.agent.CounselorReply(ctx, history, message)

	agentMsg := state.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    "agent",
		Text:      reply,
		Timestamp: time.Now(),
	}
	s.store.Apply(state.AddChatMessage(agentMsg))
	return agentMsg
}

// DailyJournal turns today's counseling transcript into a journal entry.
func (s *HealthService) DailyJournal(ctx context.Context) string {
	snap := s.store.Snapshot()
	if len(snap.ChatHistory) == 0 {
		return "No conversations recorded today."
	}

	var transcript strings.Builder
	for _, msg := range snap.ChatHistory {
		transcript.WriteString(msg.Sender)
		transcript.WriteString(": ")
		transcript.WriteString(msg.Text)
		transcript.WriteString("\n")
	}
	return s.agent.GenerateJournal(ctx, transcript.String())
}

func (s *HealthService) Workout(ctx context.Context) string {
	snap := s.store.Snapshot()
	mood := "Neutral"
	if snap.CurrentEmotion != nil && *snap.CurrentEmotion != "" {
		mood = *snap.CurrentEmotion
	}
	return s.agent.GenerateWorkout(ctx, snap.Profile, mood)
}

func (s *HealthService) MedicalConsult(ctx context.Context, question string) string {
	return s.agent.ConsultMedical(ctx, s.store.Snapshot().Profile, question)
}

func (s *HealthService) MedicalDocument(ctx context.Context, imageBase64 string) string {
	return s.agent.AnalyzeMedicalDocument(ctx, imageBase64)
}

// Synthesize runs the coordinator board meeting over the full current
// state and stores the consensus. The busy flag gates duplicate submits
// in the view layer only; overlapping calls are last-write-wins.
func (s *HealthService) Synthesize(ctx context.Context) state.AppState {
	s.store.Apply(state.BeginSynthesis)
	snap := s.store.Snapshot()
	consensus := s.agent.SynthesizeDailyReport(ctx, snap)
	return s.store.Apply(state.FinishSynthesis(consensus))
}

func (s *HealthService) AskTeam(ctx context.Context, question string) string {
	return s.agent.AskCoordinator(ctx, s.store.Snapshot(), question)
}

// EndDay archives today into history and resets the working fields.
func (s *HealthService) EndDay() state.AppState {
	return s.store.Apply(func(st state.AppState) state.AppState {
		return state.EndDay(st, time.Now())
	})
}

func sleepDuration(bedTime, wakeTime string) (float64, error) {
	start, err := time.Parse("15:04", bedTime)
	if err != nil {
		return 0, fmt.Errorf("invalid bed time %q: %w", bedTime, err)
	}
	end, err := time.Parse("15:04", wakeTime)
	if err != nil {
		return 0, fmt.Errorf("invalid wake time %q: %w", wakeTime, err)
	}

	diff := end.Sub(start)
	if diff < 0 {
		diff += 24 * time.Hour
	}
	return math.Round(diff.Hours()*10) / 10, nil
}
