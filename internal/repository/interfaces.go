// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user-related operations.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.NewUser) (*entities.User, error)
	GetUser(ctx context.Context, id entities.UserID) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TokenInterface stores issued credentials so they can be revoked.
type TokenInterface interface {
	CreateToken(ctx context.Context, token entities.AccessToken) error
	TokenActive(ctx context.Context, id string, userID entities.UserID, now time.Time) (bool, error)
	DeleteUserTokens(ctx context.Context, userID entities.UserID) (int64, error)
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// TeamInterface exposes team-related operations. CreateTeam inserts the
// leader membership in the same transaction as the team row.
type TeamInterface interface {
	CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error)
	GetTeam(ctx context.Context, id int64) (*entities.Team, error)
	ListUserTeams(ctx context.Context, userID entities.UserID) ([]entities.Team, error)
	UpdateTeam(ctx context.Context, id int64, patch entities.TeamPatch) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id int64) error
}

// MembershipInterface owns the team/user relation. RemoveMember never
// deletes the leader's membership.
type MembershipInterface interface {
	AddMember(ctx context.Context, teamID int64, userID entities.UserID) error
	RemoveMember(ctx context.Context, teamID int64, userID entities.UserID) error
	IsMember(ctx context.Context, teamID int64, userID entities.UserID) (bool, error)
	ListMembers(ctx context.Context, teamID int64) ([]entities.Member, error)
}

// ProjectInterface exposes project-related operations.
type ProjectInterface interface {
	CreateProject(ctx context.Context, project entities.NewProject) (*entities.Project, error)
	GetProject(ctx context.Context, id int64) (*entities.Project, error)
	ListTeamProjects(ctx context.Context, teamID int64) ([]entities.Project, error)
	ListUserProjects(ctx context.Context, userID entities.UserID) ([]entities.Project, error)
	UpdateProject(ctx context.Context, id int64, patch entities.ProjectPatch) (*entities.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// TaskInterface exposes task-related operations.
type TaskInterface interface {
	CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	GetTaskAccess(ctx context.Context, id int64) (*entities.TaskAccess, error)
	ListAssignedTasks(ctx context.Context, userID entities.UserID) ([]entities.Task, error)
	ListProjectTasks(ctx context.Context, projectID int64) ([]entities.Task, error)
	SaveTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
