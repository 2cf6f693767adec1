// Package lifecycle owns task states, transitions and field update rules.
//
// Every transition keeps CompletedAt non-nil exactly when Status is
// completed: entering completed stamps the clock, leaving it clears the stamp.
package lifecycle

import (
	"strings"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"
)

const maxTitleLen = 255

// Engine applies lifecycle rules to task values. It does not persist.
type Engine struct {
	now func() time.Time
}

// New constructs an Engine; a nil clock means time.Now.
func New(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Create validates input and builds a new task with defaults filled in.
func (e *Engine) Create(creator entities.UserID, in entities.NewTask) (entities.Task, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return entities.Task{}, err
	}
	if in.Deadline.IsZero() {
		return entities.Task{}, entities.Invalid("deadline is required")
	}

	status := in.Status
	if status == "" {
		status = entities.TaskPending
	}
	if !status.Valid() {
		return entities.Task{}, entities.Invalid("unknown status %q", status)
	}
	priority := in.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.Valid() {
		return entities.Task{}, entities.Invalid("unknown priority %q", priority)
	}

	assignee := creator
	if in.AssignedTo != nil {
		assignee = *in.AssignedTo
	}

	task := entities.Task{
		ProjectID:  in.ProjectID,
		Title:      title,
		Label:      in.Label,
		Priority:   priority,
		Deadline:   in.Deadline,
		AssignedTo: assignee,
	}
	e.moveTo(&task, status)
	return task, nil
}

// Complete moves the task to completed from any state and stamps it now.
func (e *Engine) Complete(task *entities.Task) {
	task.Status = entities.TaskCompleted
	now := e.now()
	task.CompletedAt = &now
}

// Suspend moves the task back to pending from any state.
func (e *Engine) Suspend(task *entities.Task) {
	e.moveTo(task, entities.TaskPending)
}

// Apply validates patch and writes its fields onto task.
// On error task is left unchanged.
func (e *Engine) Apply(task *entities.Task, patch entities.TaskPatch) error {
	next := *task

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
		next.Title = title
	}
	if patch.SetLabel {
		next.Label = patch.Label
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return entities.Invalid("unknown priority %q", *patch.Priority)
		}
		next.Priority = *patch.Priority
	}
	if patch.Deadline != nil {
		if patch.Deadline.IsZero() {
			return entities.Invalid("deadline must not be empty")
		}
		next.Deadline = *patch.Deadline
	}
	if patch.AssignedTo != nil {
		next.AssignedTo = *patch.AssignedTo
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return entities.Invalid("unknown status %q", *patch.Status)
		}
		e.moveTo(&next, *patch.Status)
	}

	*task = next
	return nil
}

// moveTo sets status and keeps CompletedAt in step. Re-entering completed
// from completed keeps the original stamp.
func (e *Engine) moveTo(task *entities.Task, status entities.TaskStatus) {
	switch {
	case status == entities.TaskCompleted && task.CompletedAt == nil:
		now := e.now()
		task.CompletedAt = &now
	case status != entities.TaskCompleted:
		task.CompletedAt = nil
	}
	task.Status = status
}

func validateTitle(title string) error {
	if title == "" {
		return entities.Invalid("title is required")
	}
	if len(title) > maxTitleLen {
		return entities.Invalid("title is longer than %d characters", maxTitleLen)
	}
	return nil
}
