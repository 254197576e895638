package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/app/repository"
)

type createVehicleRequest struct {
	Patente string `json:"patente"`
	Tipo    string `json:"tipo"`
}

// HandleCreateVehicle registers a vehicle. The plate must be unique.
func HandleCreateVehicle(c *fiber.Ctx) error {
	var req createVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}

	vehicle := &models.Vehicle{Patente: req.Patente, Tipo: req.Tipo}
	if vehicle.Tipo == "" {
		vehicle.Tipo = models.VEHICLE_TYPE_AUTO
	}
	if err := vehicle.Validate(); err != nil {
		return respondBadRequest(c, err.Error())
	}

	repo := repository.GetGlobalFactory().GetVehicleRepository()
	exists, err := repo.PatenteExists(vehicle.Patente)
	if err != nil {
		return respondInternalError(c, "Failed to check plate")
	}
	if exists {
		return respondConflict(c, "La patente ya está registrada")
	}

	if err := repo.Create(vehicle); err != nil {
		return respondInternalError(c, "Failed to create vehicle")
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// HandleListVehicles returns all vehicles, newest first.
func HandleListVehicles(c *fiber.Ctx) error {
	vehicles, err := repository.GetGlobalFactory().GetVehicleRepository().List()
	if err != nil {
		return respondInternalError(c, "Failed to load vehicles")
	}
	return c.JSON(vehicles)
}

// HandleGetVehicle returns one vehicle by ID.
func HandleGetVehicle(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid vehicle id")
	}

	vehicle, err := repository.GetGlobalFactory().GetVehicleRepository().GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Vehículo no encontrado")
		}
		return respondInternalError(c, "Failed to load vehicle")
	}
	return c.JSON(vehicle)
}

// HandleGetVehicleByPatente looks a vehicle up by plate, used by the
// entry/exit operator screen.
func HandleGetVehicleByPatente(c *fiber.Ctx) error {
	patente := c.Params("patente")
	if patente == "" {
		return respondBadRequest(c, "Missing plate")
	}

	vehicle, err := repository.GetGlobalFactory().GetVehicleRepository().GetByPatente(patente)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Vehículo no encontrado")
		}
		return respondInternalError(c, "Failed to load vehicle")
	}
	return c.JSON(vehicle)
}

// HandleUpdateVehicle applies administrative edits to a vehicle record.
// Tickets keep the plate/type snapshot taken at entry time.
func HandleUpdateVehicle(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid vehicle id")
	}

	repo := repository.GetGlobalFactory().GetVehicleRepository()
	vehicle, err := repo.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Vehículo no encontrado")
		}
		return respondInternalError(c, "Failed to load vehicle")
	}

	var req createVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body")
	}
	if req.Patente != "" && req.Patente != vehicle.Patente {
		exists, err := repo.PatenteExists(req.Patente)
		if err != nil {
			return respondInternalError(c, "Failed to check plate")
		}
		if exists {
			return respondConflict(c, "La patente ya está registrada")
		}
		vehicle.Patente = req.Patente
	}
	if req.Tipo != "" {
		vehicle.Tipo = req.Tipo
	}
	if err := vehicle.Validate(); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := repo.Update(vehicle); err != nil {
		return respondInternalError(c, "Failed to update vehicle")
	}
	return c.JSON(vehicle)
}

// HandleDeleteVehicle removes a vehicle from the registry.
func HandleDeleteVehicle(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid vehicle id")
	}

	repo := repository.GetGlobalFactory().GetVehicleRepository()
	if _, err := repo.GetByID(id); err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Vehículo no encontrado")
		}
		return respondInternalError(c, "Failed to load vehicle")
	}

	if err := repo.Delete(id); err != nil {
		return respondInternalError(c, "Failed to delete vehicle")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
