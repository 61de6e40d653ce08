package models

import "time"

// Course is owned by exactly one trainer. TrainerID is set at creation
// and never reassigned. Enrollment lives in the course_students join
// table; quizzes hang off the course via their CourseID.
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	TrainerID   uint      `gorm:"not null;index" json:"trainer_id"`
	Trainer     *User     `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Students    []User    `gorm:"many2many:course_students" json:"students"`
	Quizzes     []Quiz    `gorm:"foreignKey:CourseID" json:"quizzes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
