package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/defect-service/internal/api/http/handlers"
	"github.com/spec-kit/defect-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Projects       *handlers.ProjectsHandler
	Objects        *handlers.ObjectsHandler
	Defects        *handlers.DefectsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/userinfo", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.UserInfo)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	api.Get("/projects", cfg.Projects.ListProjects)
	api.Post("/projects", cfg.Projects.CreateProject)
	api.Get("/projects/:id", cfg.Projects.GetProject)
	api.Put("/projects/:id", cfg.Projects.UpdateProject)
	api.Delete("/projects/:id", cfg.Projects.DeleteProject)
	api.Get("/projects/:id/members", cfg.Projects.ListMembers)
	api.Post("/projects/:id/members", cfg.Projects.AddMember)
	api.Delete("/projects/:id/members/:userID", cfg.Projects.RemoveMember)

	api.Get("/projects/:id/objects", cfg.Objects.ListObjects)
	api.Post("/projects/:id/objects", cfg.Objects.CreateObject)
	api.Get("/objects/:id", cfg.Objects.GetObject)
	api.Put("/objects/:id", cfg.Objects.UpdateObject)
	api.Delete("/objects/:id", cfg.Objects.DeleteObject)

	api.Get("/objects/:id/defects", cfg.Defects.ListDefects)
	api.Post("/objects/:id/defects", cfg.Defects.CreateDefect)
	api.Get("/defects/:id", cfg.Defects.GetDefect)
	api.Put("/defects/:id", cfg.Defects.UpdateDefect)
	api.Delete("/defects/:id", cfg.Defects.DeleteDefect)
	api.Post("/defects/:id/comments", cfg.Defects.AddComment)
	api.Post("/defects/:id/photo", cfg.Defects.SetPhoto)
	api.Post("/defects/:id/images", cfg.Defects.AddImage)
	api.Get("/defects/:id/images/:imageID", cfg.Defects.GetImage)

	api.Get("/reports/projects/:id/defects.csv", cfg.Reports.ProjectDefectsCSV)
}
