package usecase

import (
	"context"

	"github.com/k13lucien/Kollab/internal/entities"
)

// AuthUsecaseInterface abstracts session operations for the delivery layer.
type AuthUsecaseInterface interface {
	Register(ctx context.Context, in entities.Registration) (*entities.Session, error)
	Login(ctx context.Context, email, password string) (*entities.Session, error)
	Authenticate(ctx context.Context, token string) (entities.UserID, error)
	Logout(ctx context.Context, caller entities.UserID) error
	Profile(ctx context.Context, caller entities.UserID) (*entities.User, error)
	PruneExpiredTokens(ctx context.Context) (int64, error)
}

// MembershipUsecaseInterface abstracts the team membership registry.
type MembershipUsecaseInterface interface {
	CreateTeam(ctx context.Context, leaderID entities.UserID, name string, label *string) (*entities.Team, error)
	AddMember(ctx context.Context, teamID int64, caller, target entities.UserID) error
	AddMemberByEmail(ctx context.Context, teamID int64, caller entities.UserID, email string) (*entities.User, error)
	RemoveMember(ctx context.Context, teamID int64, caller, target entities.UserID) error
	IsMember(ctx context.Context, teamID int64, userID entities.UserID) (bool, error)
}

// TeamUsecaseInterface abstracts team-related operations.
type TeamUsecaseInterface interface {
	ListTeams(ctx context.Context, caller entities.UserID) ([]entities.Team, error)
	TeamDetails(ctx context.Context, caller entities.UserID, teamID int64) (*entities.TeamDetails, error)
	UpdateTeam(ctx context.Context, caller entities.UserID, teamID int64, patch entities.TeamPatch) (*entities.Team, error)
	DeleteTeam(ctx context.Context, caller entities.UserID, teamID int64) error
}

// ProjectUsecaseInterface abstracts project-related operations.
type ProjectUsecaseInterface interface {
	ListProjects(ctx context.Context, caller entities.UserID) ([]entities.Project, error)
	CreateProject(ctx context.Context, caller entities.UserID, in entities.NewProject) (*entities.Project, error)
	Project(ctx context.Context, caller entities.UserID, projectID int64) (*entities.ProjectDetails, error)
	UpdateProject(ctx context.Context, caller entities.UserID, projectID int64, patch entities.ProjectPatch) (*entities.Project, error)
	DeleteProject(ctx context.Context, caller entities.UserID, projectID int64) error
}

// TaskUsecaseInterface abstracts task-related operations.
type TaskUsecaseInterface interface {
	ListTasks(ctx context.Context, caller entities.UserID) ([]entities.Task, error)
	CreateTask(ctx context.Context, caller entities.UserID, in entities.NewTask) (*entities.Task, error)
	Task(ctx context.Context, caller entities.UserID, taskID int64) (*entities.Task, error)
	UpdateTask(ctx context.Context, caller entities.UserID, taskID int64, patch entities.TaskPatch) (*entities.Task, error)
	CompleteTask(ctx context.Context, caller entities.UserID, taskID int64) (*entities.Task, error)
	SuspendTask(ctx context.Context, caller entities.UserID, taskID int64) (*entities.Task, error)
	DeleteTask(ctx context.Context, caller entities.UserID, taskID int64) error
}
