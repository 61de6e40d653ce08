package cli

import (
	"errors"

	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminName     = "Admin User"
	defaultAdminEmail    = "admin@learnix.com"
	defaultAdminPassword = "admin"
)

// NewSeedCmd builds the subcommand that creates the default admin
// account. With --destroy it removes every admin account instead.
func NewSeedCmd() *cobra.Command {
	var destroy bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			db, err := utils.InitDB(cfg)
			if err != nil {
				return err
			}
			if destroy {
				return destroyAdmins(db)
			}
			return seedAdmin(db)
		},
	}

	cmd.Flags().BoolVarP(&destroy, "destroy", "d", false, "remove all admin accounts")
	return cmd
}

func seedAdmin(db *gorm.DB) error {
	// Replace any previous admin seeded with the same email.
	if err := db.Where("email = ?", defaultAdminEmail).Delete(&models.User{}).Error; err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         defaultAdminName,
		Email:        defaultAdminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("admin user already exists")
		}
		return err
	}
	return nil
}

func destroyAdmins(db *gorm.DB) error {
	return db.Where("role = ?", models.RoleAdmin).Delete(&models.User{}).Error
}
