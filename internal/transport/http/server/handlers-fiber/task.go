package handlers_fiber

import (
	"context"
	"net/http"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/mapper"
	"github.com/k13lucien/Kollab/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// GetTasks lists the caller's assigned tasks, newest first.
func (h *Handler) GetTasks(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	tasks, err := h.uc.ListTasks(c.UserContext(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToDTOTaskList(tasks))
}

// PostTasks creates a task, by default assigned to the caller.
func (h *Handler) PostTasks(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}

	task, err := h.uc.CreateTask(c.UserContext(), userID, mapper.FromDTOTask(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.TaskResponse{Task: mapper.ToDTOTask(*task)})
}

// GetTask returns a task to its assignee or the project team leader.
func (h *Handler) GetTask(c *fiber.Ctx) error {
	return h.taskAction(c, h.uc.Task)
}

// PatchTask applies a partial update.
// A malformed body is reported only to callers allowed to update the task.
func (h *Handler) PatchTask(c *fiber.Ctx) error {
	userID, taskID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		if _, err := h.uc.UpdateTask(c.UserContext(), userID, taskID, entities.TaskPatch{}); err != nil {
			return h.writeError(c, err)
		}
		return badBody(c)
	}

	task, err := h.uc.UpdateTask(c.UserContext(), userID, taskID, mapper.FromDTOTaskPatch(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TaskResponse{Task: mapper.ToDTOTask(*task)})
}

// PostTaskComplete marks a task completed.
func (h *Handler) PostTaskComplete(c *fiber.Ctx) error {
	return h.taskAction(c, h.uc.CompleteTask)
}

// PostTaskSuspend moves a task back to pending.
func (h *Handler) PostTaskSuspend(c *fiber.Ctx) error {
	return h.taskAction(c, h.uc.SuspendTask)
}

// DeleteTask removes a task.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	userID, taskID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	if err := h.uc.DeleteTask(c.UserContext(), userID, taskID); err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.Message{Message: "task deleted"})
}

type taskFn func(ctx context.Context, userID entities.UserID, taskID int64) (*entities.Task, error)

func (h *Handler) taskAction(c *fiber.Ctx, fn taskFn) error {
	userID, taskID, err := target(c)
	if err != nil {
		return h.writeError(c, err)
	}
	task, err := fn(c.UserContext(), userID, taskID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(dto.TaskResponse{Task: mapper.ToDTOTask(*task)})
}
