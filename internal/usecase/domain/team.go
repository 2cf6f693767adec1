// Package domain contains application Usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"strings"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/policy"
)

// ListTeams returns the teams the caller is a member of.
func (u *Usecase) ListTeams(ctx context.Context, caller entities.UserID) ([]entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.ListUserTeams(ctx, caller)
}

// TeamDetails returns a team with its leader, members and projects.
func (u *Usecase) TeamDetails(ctx context.Context, caller entities.UserID, teamID int64) (*entities.TeamDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.Team(ctx, caller, policy.ActionView, *team); err != nil {
		return nil, err
	}

	leader, err := u.repo.GetUser(ctx, team.LeaderID)
	if err != nil {
		return nil, err
	}
	members, err := u.repo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	projects, err := u.repo.ListTeamProjects(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &entities.TeamDetails{
		Team:     *team,
		Leader:   *leader,
		Members:  members,
		Projects: projects,
	}, nil
}

// UpdateTeam changes name/label; leader only.
func (u *Usecase) UpdateTeam(ctx context.Context, caller entities.UserID, teamID int64, patch entities.TeamPatch) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.Team(ctx, caller, policy.ActionUpdate, *team); err != nil {
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
	if patch.Empty() {
		return team, nil
	}
	return u.repo.UpdateTeam(ctx, teamID, patch)
}

// DeleteTeam removes the team and, through storage cascades, its projects; leader only.
func (u *Usecase) DeleteTeam(ctx context.Context, caller entities.UserID, teamID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err := u.policy.Team(ctx, caller, policy.ActionDelete, *team); err != nil {
		return err
	}
	return u.repo.DeleteTeam(ctx, teamID)
}
