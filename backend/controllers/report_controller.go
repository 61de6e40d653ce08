package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/authz"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/middleware"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewReportController(db *gorm.DB, cfg *config.Config) *ReportController {
	return &ReportController{DB: db, Cfg: cfg}
}

// GetStudentProgressReport aggregates one student's attempts within one
// course for the owning trainer. Read-only; scores were fixed at
// submission time and are never recomputed here.
func (rc *ReportController) GetStudentProgressReport(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	studentID, err := c.ParamsInt("studentId")
	if err != nil {
		return utils.BadRequest(c, "Invalid student ID")
	}
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := rc.DB.Preload("Quizzes").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	if err := authz.CanManageCourse(caller, &course); err != nil {
		return utils.Forbidden(c, "Not authorized to view this report")
	}

	var student models.User
	if err := rc.DB.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Student not found")
		}
		return utils.InternalServerError(c)
	}

	quizIDs := make([]uint, 0, len(course.Quizzes))
	for _, quiz := range course.Quizzes {
		quizIDs = append(quizIDs, quiz.ID)
	}

	attempts := []models.QuizAttempt{}
	if len(quizIDs) > 0 {
		if err := rc.DB.Preload("Quiz.Questions").
			Where("student_id = ? AND quiz_id IN ?", student.ID, quizIDs).
			Find(&attempts).Error; err != nil {
			return utils.InternalServerError(c)
		}
	}

	return c.JSON(fiber.Map{
		"student": fiber.Map{
			"id":    student.ID,
			"name":  student.Name,
			"email": student.Email,
		},
		"course":   course,
		"attempts": attempts,
	})
}
