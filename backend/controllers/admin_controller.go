package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// GetAllUsers lists every non-admin account, newest first.
func (ac *AdminController) GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := ac.DB.Where("role <> ?", models.RoleAdmin).Order("created_at DESC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(users)
}

type CreateUserInput struct {
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role" validate:"required"`
}

// CreateUser creates an account of any role.
func (ac *AdminController) CreateUser(c *fiber.Ctx) error {
	var input CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.Role.Valid() {
		return utils.ValidationError(c, map[string]string{"role": "Must be one of student, trainer, admin"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c)
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "User with this email already exists")
		}
		return utils.InternalServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser changes a user's name, email, or role. Empty fields keep
// their current values.
func (ac *AdminController) UpdateUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Name  string      `json:"name"`
		Email string      `json:"email"`
		Role  models.Role `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Role != "" && !input.Role.Valid() {
		return utils.ValidationError(c, map[string]string{"role": "Must be one of student, trainer, admin"})
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		user.Role = input.Role
	}

	if err := ac.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Conflict(c, "User with this email already exists")
		}
		return utils.InternalServerError(c)
	}

	return c.JSON(user)
}

// DeleteUser removes an account of any role. Courses and attempts that
// reference the user are left in place; user deletion never cascades.
func (ac *AdminController) DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c)
	}

	if err := ac.DB.Delete(&user).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"msg": "User removed successfully",
	})
}

// ChangeUserPassword resets a user's password.
func (ac *AdminController) ChangeUserPassword(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c)
	}
	user.PasswordHash = string(hashedPassword)

	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"msg": "Password updated successfully",
	})
}
