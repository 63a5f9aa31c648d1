package routes

import (
	"courseschedule_go/controllers"
	"courseschedule_go/services/websocket"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, wsHub *websocket.Hub) {
	// Initialize controllers
	healthController := &controllers.HealthController{}
	programController := controllers.NewProgramController(wsHub)
	blockController := controllers.NewBlockController(wsHub)
	courseController := controllers.NewCourseController(wsHub)
	instructorController := controllers.NewInstructorController(wsHub)
	sessionController := controllers.NewSessionController(wsHub)
	scheduleController := controllers.NewScheduleController()
	importController := controllers.NewImportController(wsHub)
	exportController := controllers.NewExportController(wsHub)
	wsController := controllers.NewWebSocketController(wsHub)

	app.Get("/health", healthController.GetHealthStatus)

	// API group
	api := app.Group("/api")

	// Program management routes
	programs := api.Group("/programs")
	programs.Get("/", programController.GetPrograms)
	programs.Get("/:id", programController.GetProgram)
	programs.Post("/", programController.CreateProgram)
	programs.Put("/:id", programController.UpdateProgram)
	programs.Put("/:id/activate", programController.ActivateProgram)
	programs.Delete("/:id", programController.DeleteProgram)

	// Block registry routes
	blocks := api.Group("/blocks")
	blocks.Get("/", blockController.GetBlocks)
	blocks.Post("/", blockController.CreateBlock)
	blocks.Put("/reorder", blockController.ReorderBlocks)

	// Course management routes
	courses := api.Group("/courses")
	courses.Get("/", courseController.GetCourses)
	courses.Get("/:id", courseController.GetCourse)
	courses.Post("/", courseController.CreateCourse)
	courses.Put("/:id", courseController.UpdateCourse)
	courses.Delete("/:id", courseController.DeleteCourse)

	// Instructor management routes
	instructors := api.Group("/instructors")
	instructors.Get("/", instructorController.GetInstructors)
	instructors.Get("/:id", instructorController.GetInstructor)
	instructors.Post("/", instructorController.CreateInstructor)
	instructors.Put("/:id", instructorController.UpdateInstructor)
	instructors.Delete("/:id", instructorController.DeleteInstructor)

	// Session management routes
	sessions := api.Group("/sessions")
	sessions.Get("/", sessionController.GetSessions)
	sessions.Get("/:id", sessionController.GetSession)
	sessions.Post("/", sessionController.CreateSession)
	sessions.Put("/:id", sessionController.UpdateSession)
	sessions.Delete("/:id", sessionController.DeleteSession)

	// Projected schedule views
	schedule := api.Group("/schedule")
	schedule.Get("/", scheduleController.GetSchedule)
	schedule.Get("/instructors", scheduleController.GetInstructorSchedules)
	schedule.Get("/conflicts", scheduleController.GetConflicts)

	// Dataset export/import
	api.Get("/export", exportController.ExportDataset)
	api.Post("/import/backup", exportController.ImportBackup)
	api.Post("/import/instructors", importController.ImportInstructors)
	api.Post("/import/courses", importController.ImportCourses)

	// WebSocket stats
	api.Get("/ws/stats", wsController.GetWebSocketStats)

	// WebSocket connection endpoint - use websocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", wsController.WebSocketHandler())
}
