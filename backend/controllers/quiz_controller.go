package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/authz"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/middleware"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"gorm.io/gorm"
)

type QuizController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config) *QuizController {
	return &QuizController{DB: db, Cfg: cfg}
}

type QuestionInput struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=1"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
}

// validateQuestions checks what the schema cannot: the correct answer
// of every question must be one of its own options.
func validateQuestions(questions []QuestionInput) map[string]string {
	for i, q := range questions {
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return map[string]string{
				fmt.Sprintf("questions[%d].correct_answer", i): "Must be one of the question's options",
			}
		}
	}
	return nil
}

func buildQuestions(inputs []QuestionInput) []models.Question {
	questions := make([]models.Question, 0, len(inputs))
	for _, q := range inputs {
		questions = append(questions, models.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return questions
}

type CreateQuizInput struct {
	Title     string          `json:"title" validate:"required"`
	CourseID  uint            `json:"course_id" validate:"required"`
	Questions []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// CreateQuiz creates a quiz under a course the caller owns. The quiz
// and its questions are written in a single transaction, so the course
// never references a half-created quiz.
func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	var input CreateQuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if fields := validateQuestions(input.Questions); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := qc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	if err := authz.CanManageQuiz(caller, &course); err != nil {
		return utils.Forbidden(c, "Not authorized to add a quiz to this course")
	}

	quiz := models.Quiz{
		Title:     input.Title,
		CourseID:  course.ID,
		Questions: buildQuestions(input.Questions),
	}

	if err := qc.DB.Create(&quiz).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// loadQuizWithCourse fetches a quiz and its parent course. On failure
// it writes the error response itself and returns a nil quiz; callers
// must bail out when quiz is nil. The parent course is loaded fresh on
// every call so that ownership is always checked against the current
// trainer.
func (qc *QuizController) loadQuizWithCourse(c *fiber.Ctx) (*models.Quiz, *models.Course, error) {
	quizID, err := c.ParamsInt("quizId")
	if err != nil {
		return nil, nil, utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.Preload("Questions").First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, utils.NotFound(c, "Quiz not found")
		}
		return nil, nil, utils.InternalServerError(c)
	}

	var course models.Course
	if err := qc.DB.First(&course, quiz.CourseID).Error; err != nil {
		return nil, nil, utils.InternalServerError(c)
	}

	return &quiz, &course, nil
}

// GetQuizByID returns the complete quiz, correct answers included, to
// the owning trainer.
func (qc *QuizController) GetQuizByID(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	quiz, course, err := qc.loadQuizWithCourse(c)
	if quiz == nil {
		return err
	}

	if err := authz.CanManageQuiz(caller, course); err != nil {
		return utils.Forbidden(c, "Not authorized to view this quiz")
	}

	return c.JSON(quiz)
}

// UpdateQuiz replaces the quiz's title and full question list.
func (qc *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	var input struct {
		Title     string          `json:"title" validate:"required"`
		Questions []QuestionInput `json:"questions" validate:"required,min=1,dive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if fields := validateQuestions(input.Questions); fields != nil {
		return utils.ValidationError(c, fields)
	}

	quiz, course, err := qc.loadQuizWithCourse(c)
	if quiz == nil {
		return err
	}

	if err := authz.CanManageQuiz(caller, course); err != nil {
		return utils.Forbidden(c, "Not authorized to update this quiz")
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}

		quiz.Title = input.Title
		quiz.Questions = buildQuestions(input.Questions)
		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
		}
		return tx.Save(quiz).Error
	})
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(quiz)
}

// DeleteQuiz removes a quiz together with its questions and every
// attempt on it, in one transaction.
func (qc *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	quiz, course, err := qc.loadQuizWithCourse(c)
	if quiz == nil {
		return err
	}

	if err := authz.CanManageQuiz(caller, course); err != nil {
		return utils.Forbidden(c, "Not authorized to delete this quiz")
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(quiz).Error
	})
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"msg": "Quiz removed",
	})
}

// TakeQuiz serves a quiz to a student with the correct answer stripped
// from every question. The redaction is field-level: the questions are
// rebuilt without the answer rather than filtered as records.
func (qc *QuizController) TakeQuiz(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("quizId")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.Preload("Questions").First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c)
	}

	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, fiber.Map{
			"id":      q.ID,
			"quiz_id": q.QuizID,
			"text":    q.Text,
			"options": q.Options,
		})
	}

	return c.JSON(fiber.Map{
		"id":         quiz.ID,
		"title":      quiz.Title,
		"course_id":  quiz.CourseID,
		"questions":  questions,
		"created_at": quiz.CreatedAt,
	})
}

// SubmitQuiz records a student's one and only attempt at a quiz and
// returns the score. A second submission is a conflict; under two
// concurrent submissions the unique index lets exactly one through.
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	quizID, err := c.ParamsInt("quizId")
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var input struct {
		Answers []models.QuizAnswer `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var existing int64
	if err := qc.DB.Model(&models.QuizAttempt{}).
		Where("quiz_id = ? AND student_id = ?", quizID, caller.ID).
		Count(&existing).Error; err != nil {
		return utils.InternalServerError(c)
	}
	if existing > 0 {
		return utils.Conflict(c, "You have already submitted this quiz")
	}

	var quiz models.Quiz
	if err := qc.DB.Preload("Questions").First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c)
	}

	attempt := models.QuizAttempt{
		QuizID:    quiz.ID,
		StudentID: caller.ID,
		Answers:   input.Answers,
		Score:     models.ScoreAnswers(quiz.Questions, input.Answers),
	}

	if err := qc.DB.Create(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "You have already submitted this quiz")
		}
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"score":          attempt.Score,
		"totalQuestions": len(quiz.Questions),
	})
}

// GetQuizResults lists all attempts on a quiz for the owning trainer,
// expanded with each student's name and email.
func (qc *QuizController) GetQuizResults(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	quiz, course, err := qc.loadQuizWithCourse(c)
	if quiz == nil {
		return err
	}

	if err := authz.CanManageQuiz(caller, course); err != nil {
		return utils.Forbidden(c, "Not authorized to view these results")
	}

	var attempts []models.QuizAttempt
	if err := qc.DB.Preload("Student").Where("quiz_id = ?", quiz.ID).Find(&attempts).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(attempts)
}

// GetMyResults lists all of the calling student's attempts across every
// quiz, expanded with quiz title and questions. The student owns these
// completed attempts, so the answer key is fair game for review.
func (qc *QuizController) GetMyResults(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	var attempts []models.QuizAttempt
	if err := qc.DB.Preload("Quiz.Questions").
		Where("student_id = ?", caller.ID).
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(attempts)
}
