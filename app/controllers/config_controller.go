package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/app/repository"
)

type settingRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Descripcion string `json:"descripcion"`
}

// HandleCreateSetting adds a configuration row.
func HandleCreateSetting(c *fiber.Ctx) error {
	var req settingRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	setting := &models.Setting{Key: req.Key, Value: req.Value, Descripcion: req.Descripcion}
	if err := setting.Validate(); err != nil {
		return respondBadRequest(c, err.Error())
	}

	repo := repository.GetGlobalFactory().GetSettingRepository()
	if _, err := repo.GetByKey(setting.Key); err == nil {
		return respondConflict(c, "La clave ya existe")
	}

	if err := repo.Create(setting); err != nil {
		return respondInternalError(c, "Failed to create setting")
	}
	return c.Status(fiber.StatusCreated).JSON(setting)
}

// HandleListSettings returns all configuration rows.
func HandleListSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalFactory().GetSettingRepository().List()
	if err != nil {
		return respondInternalError(c, "Failed to load settings")
	}
	return c.JSON(settings)
}

// HandleGetSetting returns one configuration row by key.
func HandleGetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	setting, err := repository.GetGlobalFactory().GetSettingRepository().GetByKey(key)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Configuración no encontrada")
		}
		return respondInternalError(c, "Failed to load setting")
	}
	return c.JSON(setting)
}

// HandleUpdateSetting writes a configuration value, creating the key when
// missing.
func HandleUpdateSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	var req settingRequest
	if err := c.BodyParser(&req); err != nil || req.Value == "" {
		return respondBadRequest(c, "value is required")
	}

	repo := repository.GetGlobalFactory().GetSettingRepository()
	if err := repo.SetValue(key, req.Value); err != nil {
		return respondInternalError(c, "Failed to store setting")
	}

	setting, err := repo.GetByKey(key)
	if err != nil {
		return respondInternalError(c, "Failed to reload setting")
	}
	return c.JSON(setting)
}

// HandleDeleteSetting removes a configuration row.
func HandleDeleteSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if err := repository.GetGlobalFactory().GetSettingRepository().Delete(key); err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Configuración no encontrada")
		}
		return respondInternalError(c, "Failed to delete setting")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
