package models

import "time"

type Quiz struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	CourseID  uint       `gorm:"not null;index" json:"course_id"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Question struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	QuizID        uint     `gorm:"not null;index" json:"quiz_id"`
	Text          string   `gorm:"not null" json:"text"`
	Options       []string `gorm:"serializer:json" json:"options"`
	CorrectAnswer string   `gorm:"not null" json:"correct_answer"`
}

// ScoreAnswers counts how many questions were answered with exactly the
// correct option. Comparison is a case-sensitive string match. Answers
// for unknown question ids and questions left unanswered score zero and
// are never an error.
func ScoreAnswers(questions []Question, answers []QuizAnswer) int {
	score := 0
	for _, q := range questions {
		for _, a := range answers {
			if a.QuestionID == q.ID {
				if a.SelectedAnswer == q.CorrectAnswer {
					score++
				}
				break
			}
		}
	}
	return score
}
