package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/repository"
	"github.com/ticketar/ticketar/internal/pkg/parking"
	"github.com/ticketar/ticketar/internal/pkg/usercontext"
)

type createAbonoRequest struct {
	VehicleID   uint     `json:"vehicle_id"`
	RateID      uint     `json:"rate_id"`
	Precio      *float64 `json:"precio"`
	FechaInicio string   `json:"fecha_inicio"`
	FechaFin    string   `json:"fecha_fin"`
}

// parseAbonoDate accepts full timestamps or plain dates.
func parseAbonoDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// HandleCreateAbono sells a prepaid coverage period. Creation goes through
// the parking engine, which guards against overlapping periods per vehicle.
func HandleCreateAbono(c *fiber.Ctx) error {
	var req createAbonoRequest
	if err := c.BodyParser(&req); err != nil || req.VehicleID == 0 || req.RateID == 0 || req.Precio == nil {
		return respondBadRequest(c, "vehicle_id, rate_id and precio are required")
	}

	inicio, err := parseAbonoDate(req.FechaInicio)
	if err != nil {
		return respondBadRequest(c, "Invalid fecha_inicio")
	}
	fin, err := parseAbonoDate(req.FechaFin)
	if err != nil {
		return respondBadRequest(c, "Invalid fecha_fin")
	}

	operator := usercontext.GetUserID(c)
	input := parking.CreateAbonoInput{
		VehicleID:   req.VehicleID,
		RateID:      req.RateID,
		Precio:      *req.Precio,
		FechaInicio: inicio,
		FechaFin:    fin,
	}
	if operator != 0 {
		input.UserID = &operator
	}

	abono, err := getEngine().CreateAbono(c.Context(), input)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(abono)
}

// HandleListAbonos returns all abonos, newest first.
func HandleListAbonos(c *fiber.Ctx) error {
	abonos, err := repository.GetGlobalFactory().GetAbonoRepository().List()
	if err != nil {
		return respondInternalError(c, "Failed to load abonos")
	}
	return c.JSON(abonos)
}

// HandleActiveAbonos returns abonos whose period covers the current instant.
func HandleActiveAbonos(c *fiber.Ctx) error {
	abonos, err := repository.GetGlobalFactory().GetAbonoRepository().ListCovering(time.Now())
	if err != nil {
		return respondInternalError(c, "Failed to load abonos")
	}
	return c.JSON(abonos)
}

// HandleGetAbono returns one abono by ID.
func HandleGetAbono(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid abono id")
	}

	abono, err := repository.GetGlobalFactory().GetAbonoRepository().GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Abono no encontrado")
		}
		return respondInternalError(c, "Failed to load abono")
	}
	return c.JSON(abono)
}

// HandleDeleteAbono soft-disables an abono; history is never deleted.
func HandleDeleteAbono(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid abono id")
	}

	if err := repository.GetGlobalFactory().GetAbonoRepository().Deactivate(id); err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Abono no encontrado")
		}
		return respondInternalError(c, "Failed to deactivate abono")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
