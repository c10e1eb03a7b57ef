package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"dailyhealth.app/agent-server/internal/auth"
	"dailyhealth.app/agent-server/internal/core"
	"dailyhealth.app/agent-server/internal/state"
)

type APIHandler struct {
	healthService *core.HealthService
}

func NewAPIHandler(hs *core.HealthService) *APIHandler {
	return &APIHandler{healthService: hs}
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if _, err := auth.ValidateJWT(tokenString); err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type LoginRequest struct {
	UserID string `json:"user_id"`
}

// LoginHandler is the auth stub: it flips the authenticated flag and
// issues a token for the middleware to check. There is no user database.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if r.Body != http.NoBody {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.UserID == "" {
		req.UserID = "local"
	}

	token, err := auth.GenerateJWT(req.UserID)
	if err != nil {
		log.Printf("Error generating JWT for user %s: %v", req.UserID, err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.healthService.Login()
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *APIHandler) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.healthService.State())
}

func (h *APIHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.healthService.State().History)
}

func (h *APIHandler) OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	var req state.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(h.healthService.CompleteOnboarding(req))
}

func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req state.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(h.healthService.UpdateProfile(req).Profile)
}

type EmotionRequest struct {
	Emotion string `json:"emotion"`
}

func (h *APIHandler) SetEmotionHandler(w http.ResponseWriter, r *http.Request) {
	var req EmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Emotion == "" {
		http.Error(w, "Emotion cannot be empty", http.StatusBadRequest)
		return
	}
	h.healthService.SetEmotion(req.Emotion)
	w.WriteHeader(http.StatusNoContent)
}

type LogFoodTextRequest struct {
	Description string `json:"description"`
}

func (h *APIHandler) LogFoodTextHandler(w http.ResponseWriter, r *http.Request) {
	var req LogFoodTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Description == "" {
		http.Error(w, "Food description cannot be empty", http.StatusBadRequest)
		return
	}

	entry, err := h.healthService.LogFoodFromText(r.Context(), req.Description)
	if err != nil {
		log.Printf("Error analyzing food text: %v", err)
		http.Error(w, "Failed to analyze food. Please try again.", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

type LogFoodImageRequest struct {
	Image string `json:"image"` // base64 JPEG
}

func (h *APIHandler) LogFoodImageHandler(w http.ResponseWriter, r *http.Request) {
	var req LogFoodImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Image == "" {
		http.Error(w, "Image payload cannot be empty", http.StatusBadRequest)
		return
	}

	entry, err := h.healthService.LogFoodFromImage(r.Context(), req.Image)
	if err != nil {
		log.Printf("Error analyzing food image: %v", err)
		http.Error(w, "Failed to analyze food. Please try again.", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

type LogExerciseRequest struct {
	Activity        string `json:"activity"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (h *APIHandler) LogExerciseHandler(w http.ResponseWriter, r *http.Request) {
	var req LogExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Activity == "" || req.DurationMinutes <= 0 {
		http.Error(w, "Activity and a positive duration are required", http.StatusBadRequest)
		return
	}

	entry := h.healthService.LogExercise(r.Context(), req.Activity, req.DurationMinutes)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

func (h *APIHandler) WorkoutHandler(w http.ResponseWriter, r *http.Request) {
	workout := h.healthService.Workout(r.Context())
	json.NewEncoder(w).Encode(map[string]string{"workout": workout})
}

func (h *APIHandler) RecordSleepHandler(w http.ResponseWriter, r *http.Request) {
	var req core.SleepInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.healthService.RecordSleep(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(entry)
}

func (h *APIHandler) ClearSleepHandler(w http.ResponseWriter, r *http.Request) {
	h.healthService.ClearSleep()
	w.WriteHeader(http.StatusNoContent)
}

type ChatRequest struct {
	Message string `json:"message"`
}

func (h *APIHandler) CounselorChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	reply := h.healthService.CounselorChat(r.Context(), req.Message)
	json.NewEncoder(w).Encode(reply)
}

func (h *APIHandler) JournalHandler(w http.ResponseWriter, r *http.Request) {
	journal := h.healthService.DailyJournal(r.Context())
	json.NewEncoder(w).Encode(map[string]string{"journal": journal})
}

type MedicalConsultRequest struct {
	Question string `json:"question"`
}

func (h *APIHandler) MedicalConsultHandler(w http.ResponseWriter, r *http.Request) {
	var req MedicalConsultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "Question cannot be empty", http.StatusBadRequest)
		return
	}

	answer := h.healthService.MedicalConsult(r.Context(), req.Question)
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

type MedicalDocumentRequest struct {
	Image string `json:"image"` // base64 JPEG
}

func (h *APIHandler) MedicalDocumentHandler(w http.ResponseWriter, r *http.Request) {
	var req MedicalDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Image == "" {
		http.Error(w, "Image payload cannot be empty", http.StatusBadRequest)
		return
	}

	summary := h.healthService.MedicalDocument(r.Context(), req.Image)
	json.NewEncoder(w).Encode(map[string]string{"summary": summary})
}

type CoordinatorRequest struct {
	Question string `json:"question"`
}

func (h *APIHandler) AskCoordinatorHandler(w http.ResponseWriter, r *http.Request) {
	var req CoordinatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "Question cannot be empty", http.StatusBadRequest)
		return
	}

	answer := h.healthService.AskTeam(r.Context(), req.Question)
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

func (h *APIHandler) SynthesisHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.healthService.Synthesize(r.Context()))
}

func (h *APIHandler) ResetDayHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.healthService.EndDay())
}
