package models

import "time"

type QuizAnswer struct {
	QuestionID     uint   `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// QuizAttempt is the single immutable record of one student's pass at
// one quiz. The composite unique index is what guarantees exactly one
// attempt per (quiz, student) pair even under concurrent submissions.
type QuizAttempt struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	QuizID    uint         `gorm:"not null;uniqueIndex:idx_attempt_quiz_student" json:"quiz_id"`
	Quiz      *Quiz        `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StudentID uint         `gorm:"not null;uniqueIndex:idx_attempt_quiz_student" json:"student_id"`
	Student   *User        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Answers   []QuizAnswer `gorm:"serializer:json" json:"answers"`
	Score     int          `gorm:"not null" json:"score"`
	CreatedAt time.Time    `json:"created_at"`
}
