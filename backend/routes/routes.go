package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/controllers"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/middleware"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	protect := middleware.Protect(db, cfg)
	trainerOnly := middleware.RequireRole(models.RoleTrainer)
	studentOnly := middleware.RequireRole(models.RoleStudent)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	auth := app.Group("/api/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/me", protect, authController.Me)
	auth.Get("/check-trainer", authController.CheckTrainerExists)

	// Trainer-managed student accounts
	userController := controllers.NewUserController(db, cfg)
	users := app.Group("/api/users", protect, trainerOnly)
	users.Post("/students", userController.CreateStudent)
	users.Get("/students", userController.GetStudents)

	// Courses
	courseController := controllers.NewCourseController(db, cfg)
	courses := app.Group("/api/courses", protect)
	courses.Post("/", trainerOnly, courseController.CreateCourse)
	courses.Get("/", courseController.GetCourses)
	courses.Get("/:id", courseController.GetCourseByID)
	courses.Put("/:id", trainerOnly, courseController.UpdateCourse)
	courses.Delete("/:id", trainerOnly, courseController.DeleteCourse)

	// Quizzes
	quizController := controllers.NewQuizController(db, cfg)
	quizzes := app.Group("/api/quizzes", protect)
	quizzes.Post("/", trainerOnly, quizController.CreateQuiz)
	quizzes.Get("/my-results", studentOnly, quizController.GetMyResults)
	quizzes.Get("/:quizId", trainerOnly, quizController.GetQuizByID)
	quizzes.Put("/:quizId", trainerOnly, quizController.UpdateQuiz)
	quizzes.Delete("/:quizId", trainerOnly, quizController.DeleteQuiz)
	quizzes.Get("/:quizId/take", studentOnly, quizController.TakeQuiz)
	quizzes.Post("/:quizId/submit", studentOnly, quizController.SubmitQuiz)
	quizzes.Get("/:quizId/results", trainerOnly, quizController.GetQuizResults)

	// Results
	resultsController := controllers.NewResultsController(db, cfg)
	results := app.Group("/api/results", protect)
	results.Get("/my-results", studentOnly, resultsController.GetMyResults)
	results.Get("/course/:courseId", trainerOnly, resultsController.GetResultsForCourse)

	// Admin user management
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", protect, adminOnly)
	admin.Get("/users", adminController.GetAllUsers)
	admin.Post("/users", adminController.CreateUser)
	admin.Put("/users/:userId", adminController.UpdateUser)
	admin.Delete("/users/:userId", adminController.DeleteUser)
	admin.Put("/users/:userId/change-password", adminController.ChangeUserPassword)

	// Reports
	reportController := controllers.NewReportController(db, cfg)
	reports := app.Group("/api/reports", protect, trainerOnly)
	reports.Get("/student/:studentId/course/:courseId", reportController.GetStudentProgressReport)
}
