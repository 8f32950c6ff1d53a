// Package input validates learner-supplied requests before they reach the
// scheduling core.
package input

// PlanRequest asks for a day plan.
type PlanRequest struct {
	Energy    float64 `json:"energy"`
	TimeBlock int     `json:"time_block,omitempty"` // 0 means the configured base
	Topic     string  `json:"topic,omitempty"`
	Phase     string  `json:"phase,omitempty"`
	Day       string  `json:"day,omitempty"`

	// RespectUserInput overrides the configured default when set.
	RespectUserInput *bool `json:"respect_user_input,omitempty"`
}

// SessionFeedback reports a finished study session.
type SessionFeedback struct {
	Topic          string  `json:"topic,omitempty"`
	Phase          string  `json:"phase,omitempty"`
	Understanding  int     `json:"understanding"`
	Difficulty     int     `json:"difficulty"`
	MoodAfter      int     `json:"mood_after"`
	CompletionRate float64 `json:"completion_rate"`

	// DayType overrides the tier recorded by the day's plan.
	DayType string `json:"day_type,omitempty"`
}

// ReviewGrade grades one review item.
type ReviewGrade struct {
	ItemID string `json:"item_id"`
	Grade  int    `json:"grade"`
}

// Schema names.
const (
	SchemaPlanRequest     = "plan-request"
	SchemaSessionFeedback = "session-feedback"
	SchemaReviewGrade     = "review-grade"
)

func scale(description string) map[string]any {
	return map[string]any{
		"type":        "integer",
		"minimum":     1,
		"maximum":     5,
		"description": description,
	}
}

var label = map[string]any{"type": "string", "maxLength": 200}

// schemas maps a schema name to its JSON Schema definition.
var schemas = map[string]map[string]any{
	SchemaPlanRequest: {
		"type": "object",
		"properties": map[string]any{
			"energy":             map[string]any{"type": "number", "minimum": 1, "maximum": 5},
			"time_block":         map[string]any{"type": "integer", "minimum": 0, "maximum": 1440},
			"topic":              label,
			"phase":              label,
			"day":                map[string]any{"type": "string", "pattern": `^([A-Za-z]+|\d{4}-\d{2}-\d{2})$`},
			"respect_user_input": map[string]any{"type": "boolean"},
		},
		"required":             []any{"energy"},
		"additionalProperties": false,
	},
	SchemaSessionFeedback: {
		"type": "object",
		"properties": map[string]any{
			"topic":           label,
			"phase":           label,
			"understanding":   scale("how well the material was understood"),
			"difficulty":      scale("how hard the session felt"),
			"mood_after":      scale("mood after the session"),
			"completion_rate": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"day_type":        map[string]any{"type": "string", "enum": []any{"minimum", "normal", "beast", "recovery"}},
		},
		"required":             []any{"understanding", "difficulty", "mood_after", "completion_rate"},
		"additionalProperties": false,
	},
	SchemaReviewGrade: {
		"type": "object",
		"properties": map[string]any{
			"item_id": map[string]any{"type": "string", "minLength": 1, "maxLength": 200},
			"grade":   map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
		},
		"required":             []any{"item_id", "grade"},
		"additionalProperties": false,
	},
}
