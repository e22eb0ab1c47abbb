package domain

// CoachConfig is the script handed to the voice-interview engine: the opening
// line, the hidden interviewer instructions, and the areas the interviewer
// should probe.
type CoachConfig struct {
	FirstMessage string   `json:"firstMessage"`
	SystemPrompt string   `json:"systemPrompt"`
	FocusAreas   []string `json:"focusAreas"`
}
