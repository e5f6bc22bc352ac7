package mcq

// Blank replaces the answer in a question stem.
const Blank = "_________"

// DefaultDistractors is the number of wrong options per question.
const DefaultDistractors = 3

// Question is a single-blank cloze question. Options[CorrectOptionIndex] == CorrectAnswer.
type Question struct {
	Stem               string   `json:"Question"`
	Options            []string `json:"Options"`
	CorrectAnswer      string   `json:"CorrectAnswer"`
	CorrectOptionIndex int      `json:"CorrectOptionIndex"`
}
