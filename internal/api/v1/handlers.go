package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/ticketar/ticketar/app/controllers"
	"github.com/ticketar/ticketar/internal/pkg/middleware"
)

// APIServer groups the v1 JSON handlers.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// RegisterHandlers wires the v1 routes onto the given group. Everything past
// /auth/login requires a bearer token; destructive admin surfaces additionally
// require the ADMIN role.
func RegisterHandlers(v1 fiber.Router, s *APIServer) {
	v1.Get("/ping", s.GetPing)
	v1.Post("/auth/login", controllers.HandleLogin)

	auth := middleware.JWTAuthMiddleware()
	admin := middleware.RequireAdmin()

	v1.Get("/auth/me", auth, controllers.HandleMe)

	tickets := v1.Group("/tickets", auth)
	tickets.Post("/entry", controllers.HandleTicketEntry)
	tickets.Post("/exit", controllers.HandleTicketExit)
	tickets.Get("/", controllers.HandleListTickets)
	tickets.Get("/active", controllers.HandleActiveTickets)
	tickets.Get("/:id", controllers.HandleGetTicket)

	vehicles := v1.Group("/vehicles", auth)
	vehicles.Post("/", controllers.HandleCreateVehicle)
	vehicles.Get("/", controllers.HandleListVehicles)
	vehicles.Get("/patente/:patente", controllers.HandleGetVehicleByPatente)
	vehicles.Get("/:id", controllers.HandleGetVehicle)
	vehicles.Patch("/:id", controllers.HandleUpdateVehicle)
	vehicles.Delete("/:id", controllers.HandleDeleteVehicle)

	rates := v1.Group("/rates", auth)
	rates.Post("/", admin, controllers.HandleCreateRate)
	rates.Get("/", controllers.HandleListRates)
	rates.Get("/:id", controllers.HandleGetRate)
	rates.Patch("/:id", admin, controllers.HandleUpdateRate)
	rates.Delete("/:id", admin, controllers.HandleDeleteRate)

	abonos := v1.Group("/abonos", auth)
	abonos.Post("/", controllers.HandleCreateAbono)
	abonos.Get("/", controllers.HandleListAbonos)
	abonos.Get("/active", controllers.HandleActiveAbonos)
	abonos.Get("/:id", controllers.HandleGetAbono)
	abonos.Delete("/:id", controllers.HandleDeleteAbono)

	dashboard := v1.Group("/dashboard", auth)
	dashboard.Get("/stats", controllers.HandleDashboardStats)
	dashboard.Get("/recent", controllers.HandleDashboardRecent)

	config := v1.Group("/config", auth, admin)
	config.Post("/", controllers.HandleCreateSetting)
	config.Get("/", controllers.HandleListSettings)
	config.Get("/:key", controllers.HandleGetSetting)
	config.Patch("/:key", controllers.HandleUpdateSetting)
	config.Delete("/:key", controllers.HandleDeleteSetting)

	users := v1.Group("/users", auth, admin)
	users.Post("/", controllers.HandleCreateUser)
	users.Get("/", controllers.HandleListUsers)
	users.Get("/:id", controllers.HandleGetUser)
	users.Patch("/:id", controllers.HandleUpdateUser)
	users.Delete("/:id", controllers.HandleDeleteUser)
}
