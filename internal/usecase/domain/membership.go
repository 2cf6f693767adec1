// Package domain contains application Usecases orchestrating domain logic by membership.
package domain

import (
	"context"
	"strings"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/policy"
)

// CreateTeam creates a team led by leaderID; the leader becomes a member in
// the same storage transaction.
func (u *Usecase) CreateTeam(ctx context.Context, leaderID entities.UserID, name string, label *string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if err := validateName("name", name); err != nil {
		u.log.Errorw("failed to create team: bad name", "leader_id", leaderID)
		return nil, err
	}
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	return u.repo.CreateTeam(ctx, entities.Team{Name: name, Label: label, LeaderID: leaderID})
}

// AddMember lets the team leader add target to the team.
func (u *Usecase) AddMember(ctx context.Context, teamID int64, caller, target entities.UserID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err := u.policy.Team(ctx, caller, policy.ActionAddMember, *team); err != nil {
		return err
	}
	if _, err := u.repo.GetUser(ctx, target); err != nil {
		return err
	}
	return u.repo.AddMember(ctx, teamID, target)
}

// AddMemberByEmail resolves email to a user and adds them to the team.
func (u *Usecase) AddMemberByEmail(ctx context.Context, teamID int64, caller entities.UserID, email string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.Team(ctx, caller, policy.ActionAddMember, *team); err != nil {
		return nil, err
	}

	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := u.repo.GetUserByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if err := u.repo.AddMember(ctx, teamID, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveMember lets the team leader remove a non-leader member. Removing the
// leader is rejected before the caller is even considered.
func (u *Usecase) RemoveMember(ctx context.Context, teamID int64, caller, target entities.UserID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	team, err := u.repo.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if target == team.LeaderID {
		return entities.ErrLeaderRemoval
	}
	if err := u.policy.Team(ctx, caller, policy.ActionRemoveMember, *team); err != nil {
		return err
	}
	return u.repo.RemoveMember(ctx, teamID, target)
}

// IsMember reports whether userID belongs to teamID.
func (u *Usecase) IsMember(ctx context.Context, teamID int64, userID entities.UserID) (bool, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.IsMember(ctx, teamID, userID)
}

func validateName(field, v string) error {
	if v == "" {
		return entities.Invalid("%s is required", field)
	}
	if len(v) > maxNameLen {
		return entities.Invalid("%s is longer than %d characters", field, maxNameLen)
	}
	return nil
}

func validateLabel(label *string) error {
	if label != nil && len(*label) > maxNameLen {
		return entities.Invalid("label is longer than %d characters", maxNameLen)
	}
	return nil
}
