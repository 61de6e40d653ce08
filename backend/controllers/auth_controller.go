package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/middleware"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account. The first registrant while no trainer
// exists becomes the trainer; everyone after is a student. Role is
// fixed at creation and never recomputed, so deleting the trainer later
// does not promote anyone.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c)
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}

	// The count and the insert share a transaction. Two truly
	// concurrent first registrations can still both observe zero
	// trainers; the bootstrap keeps the count-then-decide shape on
	// purpose and accepts that window.
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		var trainerCount int64
		if err := tx.Model(&models.User{}).Where("role = ?", models.RoleTrainer).Count(&trainerCount).Error; err != nil {
			return err
		}
		if trainerCount == 0 {
			user.Role = models.RoleTrainer
		} else {
			user.Role = models.RoleStudent
		}

		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "User with this email already exists")
		}
		return utils.InternalServerError(c)
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
	})
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password return the same generic message so accounts cannot be
// enumerated.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(&user, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// Me returns the authenticated user's own record.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)

	var user models.User
	if err := ac.DB.First(&user, caller.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c)
	}

	return c.JSON(user)
}

// CheckTrainerExists reports whether any trainer account exists yet.
// The frontend uses it to decide between the bootstrap and the normal
// registration flow.
func (ac *AuthController) CheckTrainerExists(c *fiber.Ctx) error {
	var trainerCount int64
	if err := ac.DB.Model(&models.User{}).Where("role = ?", models.RoleTrainer).Count(&trainerCount).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"hasTrainer": trainerCount > 0,
	})
}
