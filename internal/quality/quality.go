package quality

// Weights applied to each normalized feedback dimension. They sum to 1.
const (
	WeightUnderstanding = 0.35
	WeightDifficulty    = 0.15
	WeightMood          = 0.20
	WeightCompletion    = 0.30
)

// Input is the raw feedback a learner gives after a session.
type Input struct {
	Understanding  int     `json:"understanding"`   // 1-5
	Difficulty     int     `json:"difficulty"`      // 1-5, lower is easier
	MoodAfter      int     `json:"mood_after"`      // 1-5
	CompletionRate float64 `json:"completion_rate"` // 0-100
}

// Score combines the session feedback into a single quality value in [0, 1].
// Inputs are expected to be validated upstream; each dimension is still
// clamped so that out-of-range values cannot push the result outside [0, 1].
func Score(in Input) float64 {
	understanding := clamp01(float64(in.Understanding-1) / 4)
	difficulty := clamp01(float64(6-in.Difficulty) / 4)
	mood := clamp01(float64(in.MoodAfter-1) / 4)
	completion := clamp01(in.CompletionRate / 100)

	score := understanding*WeightUnderstanding +
		difficulty*WeightDifficulty +
		mood*WeightMood +
		completion*WeightCompletion
	return clamp01(score)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
