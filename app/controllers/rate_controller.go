package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/app/repository"
)

type rateRequest struct {
	Nombre      string   `json:"nombre"`
	Tipo        string   `json:"tipo"`
	Precio      *float64 `json:"precio"`
	FraccionMin *int     `json:"fraccion_min"`
	FraccionMax *int     `json:"fraccion_max"`
	HoraInicio  *int     `json:"hora_inicio"`
	HoraFin     *int     `json:"hora_fin"`
	DiaSemana   *int     `json:"dia_semana"`
	Activo      *bool    `json:"activo"`
}

// HandleCreateRate adds a tariff rule to the catalog.
func HandleCreateRate(c *fiber.Ctx) error {
	var req rateRequest
	if err := c.BodyParser(&req); err != nil || req.Precio == nil {
		return respondBadRequest(c, "nombre, tipo and precio are required")
	}

	rate := &models.Rate{
		Nombre:      req.Nombre,
		Tipo:        req.Tipo,
		Precio:      *req.Precio,
		FraccionMin: req.FraccionMin,
		FraccionMax: req.FraccionMax,
		HoraInicio:  req.HoraInicio,
		HoraFin:     req.HoraFin,
		DiaSemana:   req.DiaSemana,
		Activo:      true,
	}
	if req.Activo != nil {
		rate.Activo = *req.Activo
	}
	if rate.Tipo == "" {
		rate.Tipo = models.RATE_TYPE_POR_HORA
	}
	if err := rate.Validate(); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetRateRepository().Create(rate); err != nil {
		return respondInternalError(c, "Failed to create rate")
	}
	return c.Status(fiber.StatusCreated).JSON(rate)
}

// HandleListRates returns the active tariff catalog.
func HandleListRates(c *fiber.Ctx) error {
	rates, err := repository.GetGlobalFactory().GetRateRepository().ListActive()
	if err != nil {
		return respondInternalError(c, "Failed to load rates")
	}
	return c.JSON(rates)
}

// HandleGetRate returns one rate by ID, active or not.
func HandleGetRate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid rate id")
	}

	rate, err := repository.GetGlobalFactory().GetRateRepository().GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Tarifa no encontrada")
		}
		return respondInternalError(c, "Failed to load rate")
	}
	return c.JSON(rate)
}

// HandleUpdateRate edits a tariff rule.
func HandleUpdateRate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid rate id")
	}

	repo := repository.GetGlobalFactory().GetRateRepository()
	rate, err := repo.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Tarifa no encontrada")
		}
		return respondInternalError(c, "Failed to load rate")
	}

	var req rateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}
	if req.Nombre != "" {
		rate.Nombre = req.Nombre
	}
	if req.Tipo != "" {
		rate.Tipo = req.Tipo
	}
	if req.Precio != nil {
		rate.Precio = *req.Precio
	}
	if req.FraccionMin != nil {
		rate.FraccionMin = req.FraccionMin
	}
	if req.FraccionMax != nil {
		rate.FraccionMax = req.FraccionMax
	}
	if req.HoraInicio != nil {
		rate.HoraInicio = req.HoraInicio
	}
	if req.HoraFin != nil {
		rate.HoraFin = req.HoraFin
	}
	if req.DiaSemana != nil {
		rate.DiaSemana = req.DiaSemana
	}
	if req.Activo != nil {
		rate.Activo = *req.Activo
	}
	if err := rate.Validate(); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := repo.Update(rate); err != nil {
		return respondInternalError(c, "Failed to update rate")
	}
	return c.JSON(rate)
}

// HandleDeleteRate soft-disables a rate. Finished tickets keep referencing
// it, so rates are never actually removed.
func HandleDeleteRate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid rate id")
	}

	if err := repository.GetGlobalFactory().GetRateRepository().Deactivate(id); err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Tarifa no encontrada")
		}
		return respondInternalError(c, "Failed to deactivate rate")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
