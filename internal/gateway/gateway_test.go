package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeStructuredPlainJSON(t *testing.T) {
	t.Parallel()

	var analysis FoodAnalysis
	err := decodeStructured(`{"name":"Oatmeal","calories":300,"protein":10,"carbs":54,"fats":5,"notes":"Whole grain"}`, &analysis)
	require.NoError(t, err)
	require.Equal(t, "Oatmeal", analysis.Name)
	require.Equal(t, 300.0, analysis.Calories)
	require.Equal(t, "Whole grain", analysis.Notes)
}

func TestDecodeStructuredCodeFenced(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"caloriesBurned\": 250, \"intensity\": \"High\"}\n```"
	var estimate ExerciseEstimate
	require.NoError(t, decodeStructured(raw, &estimate))
	require.Equal(t, 250.0, estimate.CaloriesBurned)
	require.Equal(t, "High", string(estimate.Intensity))
}

func TestDecodeStructuredRepairsSloppyJSON(t *testing.T) {
	t.Parallel()

	// Trailing comma and single quotes are the usual model sins.
	raw := `{'name': 'Banana', 'calories': 105,}`
	var analysis FoodAnalysis
	require.NoError(t, decodeStructured(raw, &analysis))
	require.Equal(t, "Banana", analysis.Name)
	require.Equal(t, 105.0, analysis.Calories)
}

func TestDecodeStructuredGarbageFails(t *testing.T) {
	t.Parallel()

	var analysis FoodAnalysis
	err := decodeStructured("I would rather describe the meal in prose.", &analysis)
	require.Error(t, err)
}

func TestDefaultExerciseEstimate(t *testing.T) {
	t.Parallel()

	estimate := DefaultExerciseEstimate()
	require.Equal(t, 100.0, estimate.CaloriesBurned)
	require.Equal(t, "Medium", string(estimate.Intensity))
}
