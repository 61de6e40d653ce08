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

type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCourseController(db *gorm.DB, cfg *config.Config) *CourseController {
	return &CourseController{DB: db, Cfg: cfg}
}

// coursePreloads expands a course with its trainer, enrolled students
// and full quizzes the way every course read returns it.
func coursePreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Trainer").Preload("Students").Preload("Quizzes.Questions")
}

// CreateCourse creates a course owned by the calling trainer, with
// empty student and quiz lists.
func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	var input struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		TrainerID:   caller.ID,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// GetCourses lists the courses relevant to the caller: a trainer sees
// the courses they own, a student the courses they are enrolled in.
func (cc *CourseController) GetCourses(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	var courses []models.Course
	var err error

	switch caller.Role {
	case models.RoleTrainer:
		err = coursePreloads(cc.DB).Where("trainer_id = ?", caller.ID).Find(&courses).Error
	case models.RoleStudent, models.RoleAdmin:
		// Admins own no courses and enroll in none, so the enrollment
		// branch yields an empty list for them.
		err = coursePreloads(cc.DB).
			Joins("JOIN course_students ON course_students.course_id = courses.id").
			Where("course_students.user_id = ?", caller.ID).
			Find(&courses).Error
	default:
		return utils.Forbidden(c, "Access denied.")
	}

	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(courses)
}

// GetCourseByID fetches a single course with the full expansion. Any
// authenticated caller who can resolve the id may read it; single-course
// reads carry no ownership filter.
func (cc *CourseController) GetCourseByID(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := coursePreloads(cc.DB).First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	return c.JSON(course)
}

// UpdateCourse replaces a course's title, description and entire
// student set. Only the owning trainer may, and the existence check
// runs before the ownership check.
func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Students    []uint `json:"students"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	if err := authz.CanManageCourse(caller, &course); err != nil {
		return utils.Forbidden(c, "Not authorized")
	}

	course.Title = input.Title
	course.Description = input.Description

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&course).Error; err != nil {
			return err
		}

		// Full replacement of the enrollment set, no incremental
		// add/remove semantics. Unknown ids are dropped by the lookup.
		var students []models.User
		if len(input.Students) > 0 {
			if err := tx.Find(&students, input.Students).Error; err != nil {
				return err
			}
		}
		return tx.Model(&course).Association("Students").Replace(&students)
	})
	if err != nil {
		return utils.InternalServerError(c)
	}

	var updated models.Course
	if err := coursePreloads(cc.DB).First(&updated, course.ID).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(updated)
}

// DeleteCourse removes a course together with its quizzes and every
// attempt on those quizzes. The cascade runs in one transaction and
// each child delete is a no-op when the rows are already gone.
func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	if err := authz.CanManageCourse(caller, &course); err != nil {
		return utils.Forbidden(c, "Not authorized")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&models.Quiz{}).Where("course_id = ?", course.ID).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}

		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.QuizAttempt{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", course.ID).Delete(&models.Quiz{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&course).Association("Students").Clear(); err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"msg": "Course and associated data removed",
	})
}
