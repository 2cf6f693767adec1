package handlers_fiber

import (
	"net/http"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/mapper"
	"github.com/k13lucien/Kollab/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// GetProjects lists projects across the caller's teams.
func (h *Handler) GetProjects(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	projects, err := h.uc.ListProjects(c.UserContext(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOProjectList(projects))
}

// PostProjects creates a project under one of the caller's teams.
func (h *Handler) PostProjects(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.CreateProjectRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	project, err := h.uc.CreateProject(c.UserContext(), userID, mapper.FromDTOProject(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.ProjectResponse{Project: mapper.ToDTOProject(*project)})
}

// GetProject returns a project with its team and tasks.
func (h *Handler) GetProject(c *fiber.Ctx) error {
	userID, projectID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	details, err := h.uc.Project(c.UserContext(), userID, projectID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOProjectDetails(*details))
}

// PatchProject updates name, label and deadline.
func (h *Handler) PatchProject(c *fiber.Ctx) error {
	userID, projectID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.UpdateProjectRequest
	if err := c.BodyParser(&body); err != nil {
		if _, err := h.uc.UpdateProject(c.UserContext(), userID, projectID, entities.ProjectPatch{}); err != nil {
			return h.writeError(c, err)
		}
		return badBody(c)
	}

	project, err := h.uc.UpdateProject(c.UserContext(), userID, projectID, mapper.FromDTOProjectPatch(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.ProjectResponse{Project: mapper.ToDTOProject(*project)})
}

// DeleteProject removes a project with its tasks.
func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	userID, projectID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.uc.DeleteProject(c.UserContext(), userID, projectID); err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.Message{Message: "project deleted"})
}
