package models

type GenerateRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	ReferenceURLs []string `json:"referenceUrls"`
}

type CourseStructure struct {
	Modules []GeneratedModule `json:"modules"`
}

type GeneratedModule struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Materials   []GeneratedMaterial `json:"materials"`
}

// GeneratedMaterial holds quiz content as a JSON-encoded Quiz.
type GeneratedMaterial struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

const QuestionMultipleChoice = "multiple-choice"
