package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/repository"
	"github.com/ticketar/ticketar/internal/pkg/parking"
	"github.com/ticketar/ticketar/internal/pkg/statistics"
	"github.com/ticketar/ticketar/internal/pkg/usercontext"
)

// The ticket engine is constructed once at startup and injected here; the
// controllers never reach for a DB handle to mutate tickets themselves.
var engine *parking.Service

// InitTicketEngine wires the parking engine into the ticket controllers.
func InitTicketEngine(svc *parking.Service) {
	engine = svc
}

func getEngine() *parking.Service {
	if engine == nil {
		panic("Ticket engine not initialized. Call InitTicketEngine first.")
	}
	return engine
}

type ticketRequest struct {
	VehicleID uint `json:"vehicle_id"`
}

// HandleTicketEntry registers a vehicle entry and opens a session.
func HandleTicketEntry(c *fiber.Ctx) error {
	var req ticketRequest
	if err := c.BodyParser(&req); err != nil || req.VehicleID == 0 {
		return respondBadRequest(c, "vehicle_id is required")
	}

	ticket, err := getEngine().OpenSession(c.Context(), req.VehicleID, usercontext.GetUserID(c))
	if err != nil {
		return respondEngineError(c, err)
	}

	go statistics.RefreshOccupancy()

	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// HandleTicketExit closes the vehicle's active session and returns the
// finished ticket with the computed amount.
func HandleTicketExit(c *fiber.Ctx) error {
	var req ticketRequest
	if err := c.BodyParser(&req); err != nil || req.VehicleID == 0 {
		return respondBadRequest(c, "vehicle_id is required")
	}

	ticket, err := getEngine().CloseSession(c.Context(), req.VehicleID, usercontext.GetUserID(c))
	if err != nil {
		return respondEngineError(c, err)
	}

	go statistics.RefreshOccupancy()

	return c.JSON(ticket)
}

// HandleListTickets returns all tickets, newest first.
func HandleListTickets(c *fiber.Ctx) error {
	tickets, err := repository.GetGlobalFactory().GetTicketRepository().List()
	if err != nil {
		return respondInternalError(c, "Failed to load tickets")
	}
	return c.JSON(tickets)
}

// HandleActiveTickets returns the currently open sessions.
func HandleActiveTickets(c *fiber.Ctx) error {
	tickets, err := getEngine().ActiveSessions(c.Context())
	if err != nil {
		return respondInternalError(c, "Failed to load active tickets")
	}
	return c.JSON(tickets)
}

// HandleGetTicket returns one ticket by ID.
func HandleGetTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondBadRequest(c, "Invalid ticket id")
	}

	ticket, err := repository.GetGlobalFactory().GetTicketRepository().GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return respondNotFound(c, "Ticket no encontrado")
		}
		return respondInternalError(c, "Failed to load ticket")
	}
	return c.JSON(ticket)
}
