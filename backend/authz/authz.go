// Package authz is the authorization gate: pure decisions over an
// already-loaded resource plus the caller identity, no store access.
// Handlers look resources up first, so an absent resource is reported
// as not-found before ownership is ever considered.
package authz

import (
	"errors"
	"fmt"

	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
)

var (
	// ErrRoleDenied rejects a caller whose role does not match the
	// endpoint's required role.
	ErrRoleDenied = errors.New("access denied for role")
	// ErrNotOwner rejects a correctly-roled caller who does not own
	// the target resource.
	ErrNotOwner = errors.New("not authorized")
)

// Caller is the authenticated identity threaded explicitly through
// every authorization and store call.
type Caller struct {
	ID   uint
	Name string
	Role models.Role
}

// RequireRole checks the caller's role against the one the endpoint
// demands. The switch is exhaustive over the role set.
func RequireRole(caller Caller, want models.Role) error {
	switch caller.Role {
	case models.RoleStudent, models.RoleTrainer, models.RoleAdmin:
		if caller.Role != want {
			return fmt.Errorf("%w: %s required", ErrRoleDenied, want)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", ErrRoleDenied, caller.Role)
	}
}

// CanManageCourse decides whether the caller may mutate or delete the
// course. Only the owning trainer may.
func CanManageCourse(caller Caller, course *models.Course) error {
	if err := RequireRole(caller, models.RoleTrainer); err != nil {
		return err
	}
	if course.TrainerID != caller.ID {
		return ErrNotOwner
	}
	return nil
}

// CanManageQuiz decides whether the caller may mutate, delete, or view
// results of a quiz. Quiz ownership is transitive through the parent
// course's trainer, re-checked live against the loaded course.
func CanManageQuiz(caller Caller, course *models.Course) error {
	return CanManageCourse(caller, course)
}
