package state

// Mutations are pure transforms over an AppState value. The Store applies
// them under its lock; they are also directly unit-testable without any
// store or transport around them. Each transform leaves its input intact
// and returns the successor state.

type Transform func(AppState) AppState

func Login(s AppState) AppState {
	s.IsAuthenticated = true
	return s
}

func CompleteOnboarding(update ProfileUpdate) Transform {
	return func(s AppState) AppState {
		s.Profile = update.applyTo(s.Profile)
		s.OnboardingComplete = true
		return s
	}
}

func AddFood(entry FoodEntry) Transform {
	return func(s AppState) AppState {
		s.FoodLog = append(cloneFood(s.FoodLog), entry)
		return s
	}
}

func AddExercise(entry ExerciseEntry) Transform {
	return func(s AppState) AppState {
		s.ExerciseLog = append(cloneExercise(s.ExerciseLog), entry)
		return s
	}
}

// SetSleep replaces the singleton sleep entry; nil clears it so the day
// can be re-entered.
func SetSleep(entry *SleepEntry) Transform {
	return func(s AppState) AppState {
		s.SleepLog = cloneSleepPtr(entry)
		return s
	}
}

func AddChatMessage(msg ChatMessage) Transform {
	return func(s AppState) AppState {
		s.ChatHistory = append(cloneChat(s.ChatHistory), msg)
		return s
	}
}

func UpdateProfile(update ProfileUpdate) Transform {
	return func(s AppState) AppState {
		s.Profile = update.applyTo(s.Profile)
		return s
	}
}

func SetEmotion(emotion string) Transform {
	return func(s AppState) AppState {
		s.CurrentEmotion = &emotion
		return s
	}
}

func BeginSynthesis(s AppState) AppState {
	s.IsSynthesizing = true
	return s
}

// FinishSynthesis stores the consensus text and drops the busy flag in a
// single step, mirroring how the synthesis flow completes.
func FinishSynthesis(consensus string) Transform {
	return func(s AppState) AppState {
		s.DailyConsensus = &consensus
		s.IsSynthesizing = false
		return s
	}
}

// ProfileUpdate is a partial profile: nil fields are left untouched by
// the merge, so updating the weight never clobbers the name.
type ProfileUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Age            *int     `json:"age,omitempty"`
	Gender         *string  `json:"gender,omitempty"`
	Height         *float64 `json:"height,omitempty"`
	Weight         *float64 `json:"weight,omitempty"`
	Goals          []string `json:"goals,omitempty"`
	MedicalHistory *string  `json:"medicalHistory,omitempty"`
	GeneticRisks   *string  `json:"geneticRisks,omitempty"`
	Concerns       []string `json:"concerns,omitempty"`
}

func (u ProfileUpdate) applyTo(p UserProfile) UserProfile {
	out := p.Clone()
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Age != nil {
		out.Age = *u.Age
	}
	if u.Gender != nil {
		out.Gender = *u.Gender
	}
	if u.Height != nil {
		out.Height = cloneFloatPtr(u.Height)
	}
	if u.Weight != nil {
		out.Weight = cloneFloatPtr(u.Weight)
	}
	if u.Goals != nil {
		out.Goals = cloneStrings(u.Goals)
	}
	if u.MedicalHistory != nil {
		out.MedicalHistory = *u.MedicalHistory
	}
	if u.GeneticRisks != nil {
		out.GeneticRisks = *u.GeneticRisks
	}
	if u.Concerns != nil {
		out.Concerns = cloneStrings(u.Concerns)
	}
	return out
}
