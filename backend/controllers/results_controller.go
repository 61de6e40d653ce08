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

type ResultsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewResultsController(db *gorm.DB, cfg *config.Config) *ResultsController {
	return &ResultsController{DB: db, Cfg: cfg}
}

// GetMyResults lists the calling student's attempts with quiz titles.
func (rc *ResultsController) GetMyResults(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	var attempts []models.QuizAttempt
	if err := rc.DB.Preload("Quiz").Where("student_id = ?", caller.ID).Find(&attempts).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(attempts)
}

// GetResultsForCourse lists every attempt across all of a course's
// quizzes for the owning trainer.
func (rc *ResultsController) GetResultsForCourse(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := rc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	if err := authz.CanManageCourse(caller, &course); err != nil {
		return utils.Forbidden(c, "Not authorized")
	}

	var quizIDs []uint
	if err := rc.DB.Model(&models.Quiz{}).Where("course_id = ?", course.ID).Pluck("id", &quizIDs).Error; err != nil {
		return utils.InternalServerError(c)
	}

	attempts := []models.QuizAttempt{}
	if len(quizIDs) > 0 {
		if err := rc.DB.Preload("Student").Preload("Quiz").
			Where("quiz_id IN ?", quizIDs).
			Find(&attempts).Error; err != nil {
			return utils.InternalServerError(c)
		}
	}

	return c.JSON(attempts)
}
