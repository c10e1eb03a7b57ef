package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dailyhealth.app/agent-server/internal/config"
	"dailyhealth.app/agent-server/internal/core"
	"dailyhealth.app/agent-server/internal/gateway"
	"dailyhealth.app/agent-server/internal/kv"
	"dailyhealth.app/agent-server/internal/state"
)

// stubAgent returns fixed values for every gateway call.
type stubAgent struct{}

func (stubAgent) AnalyzeFoodImage(ctx context.Context, imageBase64 string) (gateway.FoodAnalysis, error) {
	return gateway.FoodAnalysis{Name: "Apple", Calories: 95}, nil
}

func (stubAgent) AnalyzeFoodText(ctx context.Context, description string) (gateway.FoodAnalysis, error) {
	return gateway.FoodAnalysis{Name: "Oatmeal", Calories: 300}, nil
}

func (stubAgent) EstimateExercise(ctx context.Context, description string, durationMinutes int) gateway.ExerciseEstimate {
	return gateway.ExerciseEstimate{CaloriesBurned: 200, Intensity: state.IntensityMedium}
}

func (stubAgent) GenerateWorkout(ctx context.Context, profile state.UserProfile, mood string) string {
	return "1. Squats"
}

func (stubAgent) AnalyzeDream(ctx context.Context, dreamText string) string { return "A dream." }

func (stubAgent) CounselorReply(ctx context.Context, history []state.ChatMessage, message string) string {
	return "I hear you."
}

func (stubAgent) GenerateJournal(ctx context.Context, transcript string) string { return "Dear diary." }

func (stubAgent) ConsultMedical(ctx context.Context, profile state.UserProfile, question string) string {
	return "Clinical answer."
}

func (stubAgent) AnalyzeMedicalDocument(ctx context.Context, imageBase64 string) string {
	return "Findings."
}

func (stubAgent) SynthesizeDailyReport(ctx context.Context, st state.AppState) string {
	return "Meeting minutes."
}

func (stubAgent) AskCoordinator(ctx context.Context, st state.AppState, question string) string {
	return "Team answer."
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"

	store := state.NewStore(kv.NewMemory())
	service := core.NewHealthService(store, stubAgent{})
	server := httptest.NewServer(NewRouter(NewAPIHandler(service)))
	t.Cleanup(server.Close)
	return server
}

func loginToken(t *testing.T, server *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/login", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func doJSON(t *testing.T, server *httptest.Server, method, path, token, payload string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, server.URL+path, bytes.NewBufferString(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAuthRequired(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/state")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginSetsAuthenticated(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodGet, "/api/state", token, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st state.AppState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.True(t, st.IsAuthenticated)
	require.Equal(t, 1, st.DaysActive)
}

func TestOnboardingAndProfileUpdate(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodPost, "/api/onboarding", token,
		`{"name":"Ada","age":34,"goals":["Sleep better"]}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st state.AppState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.True(t, st.OnboardingComplete)
	require.Equal(t, "Ada", st.Profile.Name)

	resp = doJSON(t, server, http.MethodPatch, "/api/profile", token, `{"weight":70}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile state.UserProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	require.Equal(t, "Ada", profile.Name)
	require.NotNil(t, profile.Weight)
	require.Equal(t, 70.0, *profile.Weight)
}

func TestLogFoodText(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodPost, "/api/food/text", token, `{"description":"a bowl of oatmeal"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var entry state.FoodEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	require.Equal(t, "Oatmeal", entry.Name)
	require.NotEmpty(t, entry.ID)
}

func TestLogFoodTextRejectsEmptyBody(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodPost, "/api/food/text", token, `{"description":""}`)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogExerciseAndSynthesisAndReset(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodPost, "/api/exercise", token, `{"activity":"Running","durationMinutes":30}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, server, http.MethodPost, "/api/synthesis", token, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st state.AppState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.NotNil(t, st.DailyConsensus)
	require.Equal(t, "Meeting minutes.", *st.DailyConsensus)
	require.False(t, st.IsSynthesizing)

	resp = doJSON(t, server, http.MethodPost, "/api/day/reset", token, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.Len(t, st.History, 1)
	require.Equal(t, "Meeting minutes.", st.History[0].Consensus)
	require.Empty(t, st.ExerciseLog)
	require.Equal(t, 2, st.DaysActive)
}

func TestSleepLifecycle(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodPut, "/api/sleep", token,
		`{"bedTime":"23:00","wakeTime":"07:30","quality":"Good"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry state.SleepEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	require.Equal(t, 8.5, entry.DurationHours)

	resp = doJSON(t, server, http.MethodDelete, "/api/sleep", token, "")
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCounselorChatEndpoint(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodPost, "/api/chat", token, `{"message":"Rough day"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var msg state.ChatMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	require.Equal(t, "agent", msg.Sender)
	require.Equal(t, "I hear you.", msg.Text)
}

func TestMedicalConsultEndpoint(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	resp := doJSON(t, server, http.MethodPost, "/api/medical/consult", token, `{"question":"Is HIIT safe?"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Clinical answer.", body["answer"])
}
