package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"dailyhealth.app/agent-server/internal/config"
	"dailyhealth.app/agent-server/internal/state"
)

const (
	defaultAgentModelName       = "gemini-1.5-flash-latest"
	defaultCoordinatorModelName = "gemini-1.5-pro-latest"
)

// Canned degradations, one per flow.
const (
	fallbackWorkout       = "Error generating workout."
	emptyWorkout          = "Could not generate workout."
	fallbackDream         = "Could not interpret dream."
	emptyDream            = "No interpretation available."
	fallbackCounselor     = "I am having trouble connecting right now. Please try again."
	emptyCounselor        = "..."
	fallbackJournal       = "Error generating journal."
	emptyJournal          = "Could not generate journal."
	fallbackMedical       = "The medical model is currently offline. Please check your endpoint configuration."
	emptyMedical          = "Unable to consult at this time."
	fallbackMedicalDoc    = "Error analyzing medical document."
	emptyMedicalDoc       = "Could not analyze the document."
	fallbackSynthesis     = "The agents could not meet at this time."
	emptySynthesis        = "Unable to generate consensus."
	fallbackCoordinator   = "The team is currently offline."
	emptyCoordinatorReply = "I couldn't reach the team right now."
)

// Client implements Agent on top of the Gemini API, optionally routing
// medical consults to a dedicated MedGemma HTTP endpoint.
type Client struct {
	client   *genai.Client
	medGemma *MedGemmaClient
}

func NewClient() *Client {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}

	var medGemma *MedGemmaClient
	if config.AppConfig.MedGemmaURL != "" {
		medGemma = NewMedGemmaClient(config.AppConfig.MedGemmaURL)
	}

	return &Client{client: client, medGemma: medGemma}
}

func (c *Client) Close() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

func foodSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":     {Type: genai.TypeString},
			"calories": {Type: genai.TypeNumber},
			"protein":  {Type: genai.TypeNumber},
			"carbs":    {Type: genai.TypeNumber},
			"fats":     {Type: genai.TypeNumber},
			"notes":    {Type: genai.TypeString, Description: "Brief healthy observation"},
		},
	}
}

func exerciseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"caloriesBurned": {Type: genai.TypeNumber},
			"intensity":      {Type: genai.TypeString, Enum: []string{"Low", "Medium", "High"}},
		},
	}
}

func (c *Client) AnalyzeFoodImage(ctx context.Context, imageBase64 string) (FoodAnalysis, error) {
	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("invalid image payload: %w", err)
	}

	raw, err := c.generateJSON(ctx, defaultAgentModelName, foodSchema(),
		genai.ImageData("jpeg", image), genai.Text(foodImagePrompt))
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("food image analysis failed: %w", err)
	}

	var analysis FoodAnalysis
	if err := decodeStructured(raw, &analysis); err != nil {
		return FoodAnalysis{}, fmt.Errorf("food image analysis returned unusable JSON: %w", err)
	}
	return analysis, nil
}

func (c *Client) AnalyzeFoodText(ctx context.Context, description string) (FoodAnalysis, error) {
	raw, err := c.generateJSON(ctx, defaultAgentModelName, foodSchema(), genai.Text(foodTextPrompt(description)))
	if err != nil {
		return FoodAnalysis{}, fmt.Errorf("food text analysis failed: %w", err)
	}

	var analysis FoodAnalysis
	if err := decodeStructured(raw, &analysis); err != nil {
		return FoodAnalysis{}, fmt.Errorf("food text analysis returned unusable JSON: %w", err)
	}
	return analysis, nil
}

func (c *Client) EstimateExercise(ctx context.Context, description string, durationMinutes int) ExerciseEstimate {
	raw, err := c.generateJSON(ctx, defaultAgentModelName, exerciseSchema(),
		genai.Text(exercisePrompt(description, durationMinutes)))
	if err != nil {
		log.Printf("Exercise estimate failed, using default: %v", err)
		return DefaultExerciseEstimate()
	}

	var estimate ExerciseEstimate
	if err := decodeStructured(raw, &estimate); err != nil {
		log.Printf("Exercise estimate returned unusable JSON, using default: %v", err)
		return DefaultExerciseEstimate()
	}
	if estimate.CaloriesBurned <= 0 {
		estimate.CaloriesBurned = DefaultExerciseEstimate().CaloriesBurned
	}
	if estimate.Intensity == "" {
		estimate.Intensity = state.IntensityMedium
	}
	return estimate
}

func (c *Client) GenerateWorkout(ctx context.Context, profile state.UserProfile, mood string) string {
	return c.freeText(ctx, defaultAgentModelName, workoutPrompt(profile, mood), emptyWorkout, fallbackWorkout)
}

func (c *Client) AnalyzeDream(ctx context.Context, dreamText string) string {
	return c.freeText(ctx, defaultAgentModelName, dreamPrompt(dreamText), emptyDream, fallbackDream)
}

func (c *Client) CounselorReply(ctx context.Context, history []state.ChatMessage, message string) string {
	model := c.client.GenerativeModel(defaultAgentModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(counselorSystemInstruction)},
	}

	session := model.StartChat()
	for _, msg := range history {
		role := "user"
		if msg.Sender == "agent" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		log.Printf("Counselor reply failed: %v", err)
		return fallbackCounselor
	}
	text := flattenResponse(resp)
	if text == "" {
		return emptyCounselor
	}
	return text
}

func (c *Client) GenerateJournal(ctx context.Context, transcript string) string {
	return c.freeText(ctx, defaultAgentModelName, journalPrompt(transcript), emptyJournal, fallbackJournal)
}

func (c *Client) ConsultMedical(ctx context.Context, profile state.UserProfile, question string) string {
	if c.medGemma != nil {
		reply, err := c.medGemma.Generate(ctx, medGemmaPrompt(profile, question))
		if err != nil {
			log.Printf("MedGemma endpoint failed: %v", err)
			return fallbackMedical
		}
		return reply
	}
	return c.freeText(ctx, defaultCoordinatorModelName, medicalConsultPrompt(profile, question), emptyMedical, fallbackMedical)
}

func (c *Client) AnalyzeMedicalDocument(ctx context.Context, imageBase64 string) string {
	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		log.Printf("Medical document payload invalid: %v", err)
		return fallbackMedicalDoc
	}

	model := c.client.GenerativeModel(defaultCoordinatorModelName)
	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", image), genai.Text(medicalDocPrompt))
	if err != nil {
		log.Printf("Medical document analysis failed: %v", err)
		return fallbackMedicalDoc
	}
	text := flattenResponse(resp)
	if text == "" {
		return emptyMedicalDoc
	}
	return text
}

func (c *Client) SynthesizeDailyReport(ctx context.Context, st state.AppState) string {
	return c.freeText(ctx, defaultCoordinatorModelName, synthesisPrompt(st, nowFunc()), emptySynthesis, fallbackSynthesis)
}

func (c *Client) AskCoordinator(ctx context.Context, st state.AppState, question string) string {
	return c.freeText(ctx, defaultCoordinatorModelName, coordinatorPrompt(st, question), emptyCoordinatorReply, fallbackCoordinator)
}

func (c *Client) freeText(ctx context.Context, modelName, prompt, emptyFallback, errorFallback string) string {
	model := c.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Gemini request failed: %v", err)
		return errorFallback
	}
	text := flattenResponse(resp)
	if text == "" {
		log.Println("Gemini response was empty or had no valid candidates/parts.")
		return emptyFallback
	}
	return text
}

func (c *Client) generateJSON(ctx context.Context, modelName string, schema *genai.Schema, parts ...genai.Part) (string, error) {
	model := c.client.GenerativeModel(modelName)
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := flattenResponse(resp)
	if text == "" {
		return "", fmt.Errorf("no data returned from gemini")
	}
	return text, nil
}

func flattenResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}
	return strings.TrimSpace(out.String())
}
