package gateway

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dailyhealth.app/agent-server/internal/state"
)

// Swappable for tests that pin the meeting date.
var nowFunc = time.Now

const foodImagePrompt = "Analyze this food image. Estimate the name, calories, protein (g), carbs (g), and fats (g). Return strictly JSON."

const medicalDocPrompt = "Analyze this medical document. Provide a clinical summary of key findings."

const counselorSystemInstruction = "You are a compassionate, empathetic mental health counselor agent. " +
	"Keep responses concise, warm, and supportive. Do not give medical prescriptions."

func foodTextPrompt(description string) string {
	return fmt.Sprintf("Analyze this food description: %q. Estimate the name, calories, protein (g), carbs (g), and fats (g). Return strictly JSON.", description)
}

func workoutPrompt(profile state.UserProfile, mood string) string {
	context := fmt.Sprintf("User: %dyo, %s. History: %s. Goals: %s",
		profile.Age, profile.Gender, profile.MedicalHistory, strings.Join(profile.Goals, ", "))
	return fmt.Sprintf("Design a quick 20-minute home workout for this user. Context: %s. Current Mood: %s. "+
		"Ensure exercises are safe for their medical history. Format as a clear list.", context, mood)
}

func exercisePrompt(description string, durationMinutes int) string {
	return fmt.Sprintf("Calculate estimated calories burned for: %q performed for %d minutes. Return JSON.",
		description, durationMinutes)
}

func dreamPrompt(dreamText string) string {
	return fmt.Sprintf("Act as a Jungian dream analyst. Briefly interpret this dream: %q. Keep it under 100 words.", dreamText)
}

func journalPrompt(transcript string) string {
	return fmt.Sprintf("Based on this chat history, write a reflective daily journal entry from the user's perspective. "+
		"Capture the key emotions and thoughts discussed.\n\nChat: %s", transcript)
}

func medGemmaPrompt(profile state.UserProfile, question string) string {
	return fmt.Sprintf(`You are MedGemma, a specialized clinical AI assistant.
User Medical Context: %s
Genetic Risks: %s
Question: %s

Provide a concise, evidence-based clinical response.`, profile.MedicalHistory, profile.GeneticRisks, question)
}

func medicalConsultPrompt(profile state.UserProfile, question string) string {
	return fmt.Sprintf(`[SYSTEM: YOU ARE ACTING AS THE MEDGEMMA SPECIALIST AGENT]
User Context:
- Medical History: %s
- Genetic Risks: %s
- Goals: %s

User Question: %s

Provide a safe, clinical-style informative answer.
DISCLAIMER: State you are an AI and this is not professional medical advice.`,
		profile.MedicalHistory, profile.GeneticRisks, strings.Join(profile.Goals, ", "), question)
}

// synthesisPrompt lays out the whole current day plus a short window of
// archived days for the coordinator "board meeting".
func synthesisPrompt(st state.AppState, now time.Time) string {
	var recent []string
	for i, h := range st.History {
		if i >= 3 {
			break
		}
		mood := "Neutral"
		if h.Mood != nil && *h.Mood != "" {
			mood = *h.Mood
		}
		details := h.Details
		if details == "" {
			details = "No details"
		}
		recent = append(recent, fmt.Sprintf("- %s: %s (%s net kcal)\n  Details: %s",
			h.Date, mood, formatNumber(h.CaloriesIn-h.CaloriesBurned), details))
	}
	recentHistory := strings.Join(recent, "\n")
	if recentHistory == "" {
		recentHistory = "No previous history recorded."
	}

	var foods []string
	for _, f := range st.FoodLog {
		foods = append(foods, fmt.Sprintf("%s (%skcal, P:%sg)", f.Name, formatNumber(f.Calories), formatNumber(f.Protein)))
	}
	dietReport := joinOr(foods, "No food logged")

	var exercises []string
	for _, e := range st.ExerciseLog {
		exercises = append(exercises, fmt.Sprintf("%s (%dmin, %s)", e.Type, e.DurationMinutes, e.Intensity))
	}
	physicalReport := joinOr(exercises, "No exercise logged")

	sleepReport := "No sleep logged"
	if st.SleepLog != nil {
		sleepReport = fmt.Sprintf("%shrs, Quality: %s", formatNumber(st.SleepLog.DurationHours), st.SleepLog.Quality)
	}

	emotion := "Not recorded"
	if st.CurrentEmotion != nil && *st.CurrentEmotion != "" {
		emotion = *st.CurrentEmotion
	}

	today := now.Format("Monday, January 2, 2006")

	return fmt.Sprintf(`Act as a Lead Health Coordinator conducting a daily board meeting for DailyHealth AI MedGemma.

User Profile: %s, %dyo %s.
Medical Context (Long-term Memory): %s
Genetic Risks: %s

Recent Days Context (Short-term Memory):
%s

Review the data from the specialist agents TODAY:
1. **Dietitian Report**: %s
2. **Physical Report**: %s
3. **Sleep Report**: %s
4. **Mental Health**: Current Emotion: %s.

Task:
Synthesize this information into a cohesive "Daily Health Board Meeting Summary".

CRITICAL: You must include a "Medical Specialist (MedGemma)" perspective in the meeting.

Structure the response as follows:

**Meeting Minutes: Daily Health Board Review**
**Date:** %s
**Attendees:** Lead Coordinator, Dietitian, Trainer, Sleep Specialist, Counselor, *Medical Specialist (MedGemma)*

**1. Executive Summary**
(A brief holistic overview of the day).

**2. Specialist Insights & Medical Cross-Check**
- **Medical Specialist**: Analyze today's logs against the user's Medical History and Genetic Risks using MedGemma clinical knowledge. Are there any contraindications? (e.g., High sugar intake vs Diabetes risk, or High Intensity Cardio vs Heart condition). References specific past memory if relevant.
- **Diet & Activity**: How did nutrition fuel movement today?
- **Rest & Recovery**: Is sleep supporting the user's goals?

**3. Strategy for Tomorrow**
- Bullet point 1
- Bullet point 2
- Bullet point 3`,
		st.Profile.Name, st.Profile.Age, st.Profile.Gender,
		st.Profile.MedicalHistory, st.Profile.GeneticRisks,
		recentHistory, dietReport, physicalReport, sleepReport, emotion, today)
}

func coordinatorPrompt(st state.AppState, question string) string {
	sleep := "Unknown"
	if st.SleepLog != nil {
		sleep = string(st.SleepLog.Quality)
	}
	mood := "Not recorded"
	if st.CurrentEmotion != nil && *st.CurrentEmotion != "" {
		mood = *st.CurrentEmotion
	}

	var calories float64
	for _, f := range st.FoodLog {
		calories += f.Calories
	}

	return fmt.Sprintf(`You are the Health Team Coordinator for DailyHealth AI MedGemma.

User: %s.
Logs Today:
- Food: %d items (%s kcal)
- Exercise: %d items
- Sleep: %s
- Medical History: %s
- Current Mood: %s

User Question: %q

Answer as the team representative. Consult the data above and specialized medical insights from MedGemma. Be helpful, concise, and collaborative.`,
		st.Profile.Name, len(st.FoodLog), formatNumber(calories), len(st.ExerciseLog),
		sleep, st.Profile.MedicalHistory, mood, question)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// formatNumber prints 350 as "350" and 7.5 as "7.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
