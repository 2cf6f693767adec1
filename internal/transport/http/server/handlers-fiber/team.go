package handlers_fiber

import (
	"net/http"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/mapper"
	"github.com/k13lucien/Kollab/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// GetTeams lists the caller's teams.
func (h *Handler) GetTeams(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	teams, err := h.uc.ListTeams(c.UserContext(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTeamList(teams))
}

// PostTeams creates a team led by the caller.
func (h *Handler) PostTeams(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	team, err := h.uc.CreateTeam(c.UserContext(), userID, body.Name, body.Label)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.TeamResponse{Team: mapper.ToDTOTeam(*team)})
}

// GetTeam returns a team with its leader, members and projects.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	userID, teamID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	details, err := h.uc.TeamDetails(c.UserContext(), userID, teamID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTeamDetails(*details))
}

// PatchTeam updates name and label.
func (h *Handler) PatchTeam(c *fiber.Ctx) error {
	userID, teamID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.UpdateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		if _, err := h.uc.UpdateTeam(c.UserContext(), userID, teamID, entities.TeamPatch{}); err != nil {
			return h.writeError(c, err)
		}
		return badBody(c)
	}

	team, err := h.uc.UpdateTeam(c.UserContext(), userID, teamID, mapper.FromDTOTeamPatch(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TeamResponse{Team: mapper.ToDTOTeam(*team)})
}

// DeleteTeam removes a team with its projects.
func (h *Handler) DeleteTeam(c *fiber.Ctx) error {
	userID, teamID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.uc.DeleteTeam(c.UserContext(), userID, teamID); err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.Message{Message: "team deleted"})
}

// PostTeamMember adds a user, looked up by email, to the team.
func (h *Handler) PostTeamMember(c *fiber.Ctx) error {
	userID, teamID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.AddMemberRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	user, err := h.uc.AddMemberByEmail(c.UserContext(), teamID, userID, body.Email)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.UserResponse{User: mapper.ToDTOUser(*user)})
}

// DeleteTeamMember removes a non-leader member.
func (h *Handler) DeleteTeamMember(c *fiber.Ctx) error {
	userID, teamID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	memberID, err := pathID(c, "userId")
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.uc.RemoveMember(c.UserContext(), teamID, userID, memberID); err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.Message{Message: "member removed"})
}
