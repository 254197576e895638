package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/app/repository"
	"github.com/ticketar/ticketar/internal/pkg/usercontext"
)

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleCreateUser registers an operator account. Admin only.
func HandleCreateUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(req.Email); err == nil {
		return respondConflict(c, "El email ya está registrado")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := repo.Create(user); err != nil {
		return respondInternalError(c, "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleListUsers returns all operator accounts. Admin only.
func HandleListUsers(c *fiber.Ctx) error {
	users, err := repository.GetGlobalFactory().GetUserRepository().List()
	if err != nil {
		return respondInternalError(c, "Failed to load users")
	}
	return c.JSON(users)
}

// HandleGetUser returns a single account by id. Admin only.
func HandleGetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid user id")
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Usuario no encontrado")
		}
		return respondInternalError(c, "Failed to load user")
	}
	return c.JSON(user)
}

// HandleUpdateUser changes name, role or password of an account. Admin only.
func HandleUpdateUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid user id")
	}

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Usuario no encontrado")
		}
		return respondInternalError(c, "Failed to load user")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := models.HashPassword(req.Password)
		if err != nil {
			return respondInternalError(c, "Failed to hash password")
		}
		user.Password = hash
	}

	if err := user.Validate(); err != nil {
		return respondBadRequest(c, err.Error())
	}
	if err := repo.Update(user); err != nil {
		return respondInternalError(c, "Failed to update user")
	}
	return c.JSON(user)
}

// HandleDeleteUser soft-deletes an account. An admin cannot remove itself.
func HandleDeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid user id")
	}

	if uc := usercontext.GetUserContext(c); uc.UserID == id {
		return respondConflict(c, "No puede eliminar su propia cuenta")
	}

	if err := repository.GetGlobalFactory().GetUserRepository().Delete(id); err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Usuario no encontrado")
		}
		return respondInternalError(c, "Failed to delete user")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMe returns the account behind the current token.
func HandleMe(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uc.UserID)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Usuario no encontrado")
		}
		return respondInternalError(c, "Failed to load user")
	}
	return c.JSON(user)
}
