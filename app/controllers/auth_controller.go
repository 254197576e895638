package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/app/repository"
	"github.com/ticketar/ticketar/internal/pkg/token"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates an operator and issues a bearer token.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return respondBadRequest(c, "email and password are required")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil {
		// Same response for unknown user and wrong password.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Credenciales inválidas"})
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Credenciales inválidas"})
	}

	signed, err := token.Generate(user)
	if err != nil {
		return respondInternalError(c, "Failed to issue token")
	}

	if err := repo.TouchLastLogin(user.ID); err != nil {
		log.Warnf("failed to update last login for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"token": signed,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
