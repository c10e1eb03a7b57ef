package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/login", apiHandler.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Get("/state", apiHandler.GetStateHandler)
			r.Get("/history", apiHandler.GetHistoryHandler)

			r.Post("/onboarding", apiHandler.OnboardingHandler)
			r.Patch("/profile", apiHandler.UpdateProfileHandler)
			r.Post("/emotion", apiHandler.SetEmotionHandler)

			r.Post("/food/text", apiHandler.LogFoodTextHandler)
			r.Post("/food/image", apiHandler.LogFoodImageHandler)
			r.Post("/exercise", apiHandler.LogExerciseHandler)
			r.Get("/workout", apiHandler.WorkoutHandler)

			r.Put("/sleep", apiHandler.RecordSleepHandler)
			r.Delete("/sleep", apiHandler.ClearSleepHandler)

			r.Post("/chat", apiHandler.CounselorChatHandler)
			r.Get("/chat/journal", apiHandler.JournalHandler)

			r.Post("/medical/consult", apiHandler.MedicalConsultHandler)
			r.Post("/medical/document", apiHandler.MedicalDocumentHandler)

			r.Post("/coordinator", apiHandler.AskCoordinatorHandler)
			r.Post("/synthesis", apiHandler.SynthesisHandler)
			r.Post("/day/reset", apiHandler.ResetDayHandler)
		})
	})

	return r
}
