// Package domain contains application Usecases orchestrating domain logic by project.
package domain

import (
	"context"
	"strings"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/policy"
)

// ListProjects returns projects across all of the caller's teams.
func (u *Usecase) ListProjects(ctx context.Context, caller entities.UserID) ([]entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListUserProjects(ctx, caller)
}

// CreateProject creates a project under a team the caller belongs to.
func (u *Usecase) CreateProject(ctx context.Context, caller entities.UserID, in entities.NewProject) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	in.Name = strings.TrimSpace(in.Name)
	if err := validateName("name", in.Name); err != nil {
		return nil, err
	}
	if err := validateLabel(in.Label); err != nil {
		return nil, err
	}
	if in.Deadline.IsZero() {
		return nil, entities.Invalid("deadline is required")
	}
	if in.TeamID <= 0 {
		return nil, entities.Invalid("team_id is required")
	}

	if _, err := u.repo.GetTeam(ctx, in.TeamID); err != nil {
		return nil, err
	}
	if err := u.policy.Project(ctx, caller, policy.ActionCreate, in.TeamID); err != nil {
		return nil, err
	}
	return u.repo.CreateProject(ctx, in)
}

// Project returns a project with its team and tasks.
func (u *Usecase) Project(ctx context.Context, caller entities.UserID, projectID int64) (*entities.ProjectDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	project, err := u.authorizedProject(ctx, caller, policy.ActionView, projectID)
	if err != nil {
		return nil, err
	}
	team, err := u.repo.GetTeam(ctx, project.TeamID)
	if err != nil {
		return nil, err
	}
	tasks, err := u.repo.ListProjectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &entities.ProjectDetails{Project: *project, Team: *team, Tasks: tasks}, nil
}

// UpdateProject changes name/label/deadline; any team member may.
func (u *Usecase) UpdateProject(ctx context.Context, caller entities.UserID, projectID int64, patch entities.ProjectPatch) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	project, err := u.authorizedProject(ctx, caller, policy.ActionUpdate, projectID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateName("name", name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if err := validateLabel(patch.Label); err != nil {
		return nil, err
	}
	if patch.Deadline != nil && patch.Deadline.IsZero() {
		return nil, entities.Invalid("deadline must not be empty")
	}
	if patch.Name == nil && !patch.SetLabel && patch.Deadline == nil {
		return project, nil
	}
	return u.repo.UpdateProject(ctx, projectID, patch)
}

// DeleteProject removes a project; any team member may.
func (u *Usecase) DeleteProject(ctx context.Context, caller entities.UserID, projectID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.authorizedProject(ctx, caller, policy.ActionDelete, projectID); err != nil {
		return err
	}
	return u.repo.DeleteProject(ctx, projectID)
}

func (u *Usecase) authorizedProject(ctx context.Context, caller entities.UserID, action policy.Action, projectID int64) (*entities.Project, error) {
	project, err := u.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.Project(ctx, caller, action, project.TeamID); err != nil {
		return nil, err
	}
	return project, nil
}
