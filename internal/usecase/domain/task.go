// Package domain contains application Usecases orchestrating domain logic by task.
package domain

import (
	"context"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/policy"
)

// ListTasks returns the caller's assigned tasks, newest first.
func (u *Usecase) ListTasks(ctx context.Context, caller entities.UserID) ([]entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListAssignedTasks(ctx, caller)
}

// CreateTask creates a task; the assignee defaults to the caller. No team or
// project membership is required.
func (u *Usecase) CreateTask(ctx context.Context, caller entities.UserID, in entities.NewTask) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	task, err := u.tasks.Create(caller, in)
	if err != nil {
		return nil, err
	}
	if err := validateLabel(task.Label); err != nil {
		return nil, err
	}
	if err := policy.Decide(caller, policy.ActionCreate, policy.TaskTarget{AssigneeID: task.AssignedTo}); err != nil {
		return nil, err
	}

	if task.ProjectID != nil {
		if _, err := u.repo.GetProject(ctx, *task.ProjectID); err != nil {
			return nil, err
		}
	}
	if task.AssignedTo != caller {
		if _, err := u.repo.GetUser(ctx, task.AssignedTo); err != nil {
			return nil, err
		}
	}
	return u.repo.CreateTask(ctx, task)
}

// Task returns a task to its assignee or to the leader of its project team.
func (u *Usecase) Task(ctx context.Context, caller entities.UserID, taskID int64) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	access, err := u.authorizedTask(ctx, caller, policy.ActionView, taskID)
	if err != nil {
		return nil, err
	}
	return &access.Task, nil
}

// UpdateTask applies a whitelisted patch; assignee only.
func (u *Usecase) UpdateTask(ctx context.Context, caller entities.UserID, taskID int64, patch entities.TaskPatch) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	access, err := u.authorizedTask(ctx, caller, policy.ActionUpdate, taskID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return &access.Task, nil
	}
	if patch.SetLabel {
		if err := validateLabel(patch.Label); err != nil {
			return nil, err
		}
	}
	if patch.AssignedTo != nil && *patch.AssignedTo != access.Task.AssignedTo {
		if _, err := u.repo.GetUser(ctx, *patch.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := access.Task
	if err := u.tasks.Apply(&task, patch); err != nil {
		return nil, err
	}
	return u.repo.SaveTask(ctx, task)
}

// CompleteTask marks the task completed now; assignee only.
func (u *Usecase) CompleteTask(ctx context.Context, caller entities.UserID, taskID int64) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	access, err := u.authorizedTask(ctx, caller, policy.ActionComplete, taskID)
	if err != nil {
		return nil, err
	}
	task := access.Task
	u.tasks.Complete(&task)
	return u.repo.SaveTask(ctx, task)
}

// SuspendTask moves the task back to pending; assignee only.
func (u *Usecase) SuspendTask(ctx context.Context, caller entities.UserID, taskID int64) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	access, err := u.authorizedTask(ctx, caller, policy.ActionSuspend, taskID)
	if err != nil {
		return nil, err
	}
	task := access.Task
	u.tasks.Suspend(&task)
	return u.repo.SaveTask(ctx, task)
}

// DeleteTask removes the task; assignee only.
func (u *Usecase) DeleteTask(ctx context.Context, caller entities.UserID, taskID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorizedTask(ctx, caller, policy.ActionDelete, taskID); err != nil {
		return err
	}
	return u.repo.DeleteTask(ctx, taskID)
}

func (u *Usecase) authorizedTask(ctx context.Context, caller entities.UserID, action policy.Action, taskID int64) (*entities.TaskAccess, error) {
	access, err := u.repo.GetTaskAccess(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.Task(caller, action, *access); err != nil {
		return nil, err
	}
	return access, nil
}
