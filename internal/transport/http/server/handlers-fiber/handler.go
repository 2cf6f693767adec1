// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"github.com/k13lucien/Kollab/internal/transport/http/middleware"
	"github.com/k13lucien/Kollab/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the HTTP API using service layer interfaces.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  usecase,
	}
}

// RegisterHandlers mounts every route on router. Everything except register
// and login sits behind bearer authentication.
func RegisterHandlers(router fiber.Router, h *Handler) {
	router.Post("/auth/register", h.PostAuthRegister)
	router.Post("/auth/login", h.PostAuthLogin)

	// Bearer auth is attached per route so unknown paths still answer 404.
	auth := middleware.BearerAuth(h.log, h.uc)

	router.Post("/auth/logout", auth, h.PostAuthLogout)
	router.Get("/auth/profile", auth, h.GetAuthProfile)

	router.Get("/teams", auth, h.GetTeams)
	router.Post("/teams", auth, h.PostTeams)
	router.Get("/teams/:id", auth, h.GetTeam)
	router.Patch("/teams/:id", auth, h.PatchTeam)
	router.Delete("/teams/:id", auth, h.DeleteTeam)
	router.Post("/teams/:id/members", auth, h.PostTeamMember)
	router.Delete("/teams/:id/members/:userId", auth, h.DeleteTeamMember)

	router.Get("/projects", auth, h.GetProjects)
	router.Post("/projects", auth, h.PostProjects)
	router.Get("/projects/:id", auth, h.GetProject)
	router.Patch("/projects/:id", auth, h.PatchProject)
	router.Delete("/projects/:id", auth, h.DeleteProject)

	router.Get("/tasks", auth, h.GetTasks)
	router.Post("/tasks", auth, h.PostTasks)
	router.Get("/tasks/:id", auth, h.GetTask)
	router.Patch("/tasks/:id", auth, h.PatchTask)
	router.Post("/tasks/:id/complete", auth, h.PostTaskComplete)
	router.Post("/tasks/:id/suspend", auth, h.PostTaskSuspend)
	router.Delete("/tasks/:id", auth, h.DeleteTask)
}
