package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminEnv(t *testing.T) (*testEnv, string) {
	t.Helper()
	env := newTestEnv(t)
	env.createUser(t, "Admin", "admin@x.com", "adminpass", models.RoleAdmin)
	return env, env.login(t, "admin@x.com", "adminpass")
}

func TestAdminEndpointsForbiddenForOtherRoles(t *testing.T) {
	env, _ := newAdminEnv(t)

	trainerToken := env.register(t, "Trainer", "trainer@x.com", "password123")
	studentToken := env.register(t, "Student", "student@x.com", "password123")

	for _, token := range []string{trainerToken, studentToken} {
		resp := env.request(t, "GET", "/api/admin/users", token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	}
}

func TestAdminListsOnlyNonAdminUsers(t *testing.T) {
	env, adminToken := newAdminEnv(t)

	env.register(t, "Trainer", "trainer@x.com", "password123")
	env.register(t, "Student", "student@x.com", "password123")

	resp := env.request(t, "GET", "/api/admin/users", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	users := decodeList(t, resp)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, string(models.RoleAdmin), u["role"])
	}
}

func TestAdminCreateUserAnyRole(t *testing.T) {
	env, adminToken := newAdminEnv(t)

	resp := env.request(t, "POST", "/api/admin/users", adminToken, map[string]string{
		"name":     "New Trainer",
		"email":    "nt@x.com",
		"password": "password123",
		"role":     "trainer",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "trainer", decodeMap(t, resp)["role"])

	// Duplicate email is a conflict.
	resp = env.request(t, "POST", "/api/admin/users", adminToken, map[string]string{
		"name":     "Dup",
		"email":    "nt@x.com",
		"password": "password123",
		"role":     "student",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Unknown roles are rejected.
	resp = env.request(t, "POST", "/api/admin/users", adminToken, map[string]string{
		"name":     "Weird",
		"email":    "weird@x.com",
		"password": "password123",
		"role":     "superuser",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAdminUpdateUserKeepsEmptyFields(t *testing.T) {
	env, adminToken := newAdminEnv(t)

	user := env.createUser(t, "Old Name", "old@x.com", "password123", models.RoleStudent)

	resp := env.request(t, "PUT", fmt.Sprintf("/api/admin/users/%d", user.ID), adminToken, map[string]string{
		"name": "New Name",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := decodeMap(t, resp)
	assert.Equal(t, "New Name", updated["name"])
	assert.Equal(t, "old@x.com", updated["email"])
	assert.Equal(t, "student", updated["role"])
}

func TestAdminDeleteUser(t *testing.T) {
	env, adminToken := newAdminEnv(t)

	user := env.createUser(t, "Victim", "victim@x.com", "password123", models.RoleStudent)

	resp := env.request(t, "DELETE", fmt.Sprintf("/api/admin/users/%d", user.ID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "DELETE", fmt.Sprintf("/api/admin/users/%d", user.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminChangePassword(t *testing.T) {
	env, adminToken := newAdminEnv(t)

	user := env.createUser(t, "User", "user@x.com", "oldpassword", models.RoleStudent)

	resp := env.request(t, "PUT", fmt.Sprintf("/api/admin/users/%d/change-password", user.ID), adminToken, map[string]string{
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.request(t, "PUT", fmt.Sprintf("/api/admin/users/%d/change-password", user.ID), adminToken, map[string]string{
		"password": "newpassword",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The old password no longer works, the new one does.
	resp = env.request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "user@x.com",
		"password": "oldpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	env.login(t, "user@x.com", "newpassword")
}

func TestTrainerCreatesAndListsStudents(t *testing.T) {
	env := newTestEnv(t)

	trainerToken := env.register(t, "Trainer", "trainer@x.com", "password123")
	env.register(t, "Enrolled", "enrolled@x.com", "password123")

	resp := env.request(t, "POST", "/api/users/students", trainerToken, map[string]string{
		"name":     "Provisioned",
		"email":    "prov@x.com",
		"password": "password123",
		"role":     "trainer",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	// The role field in the request is ignored; students come out
	// students.
	assert.Equal(t, "student", decodeMap(t, resp)["role"])

	// The listing is unscoped: every student in the system, not just
	// the trainer's own enrollments.
	resp = env.request(t, "GET", "/api/users/students", trainerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	students := decodeList(t, resp)
	assert.Len(t, students, 2)

	// Students cannot reach trainer endpoints.
	studentToken := env.login(t, "prov@x.com", "password123")
	resp = env.request(t, "GET", "/api/users/students", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
