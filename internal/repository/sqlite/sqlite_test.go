package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/k13lucien/Kollab/config"
	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	repo := New(zap.NewNop().Sugar(), &config.Config{SQLite: config.SQLiteConfig{DSN: ":memory:"}})
	require.NoError(t, repo.OnStart(context.Background()))
	t.Cleanup(func() { _ = repo.OnStop(context.Background()) })
	return repo
}

func createUser(t *testing.T, repo *SQLite, email string) *entities.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), entities.NewUser{Email: email, PasswordHash: "x"})
	require.NoError(t, err)
	return u
}

func TestSQLite_UserUniqueness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	nick := "alice"

	_, err := repo.CreateUser(ctx, entities.NewUser{Email: "a@example.com", Username: &nick, PasswordHash: "x"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, entities.NewUser{Email: "a@example.com", PasswordHash: "x"})
	require.ErrorIs(t, err, entities.ErrEmailTaken)

	_, err = repo.CreateUser(ctx, entities.NewUser{Email: "b@example.com", Username: &nick, PasswordHash: "x"})
	require.ErrorIs(t, err, entities.ErrUsernameTaken)

	got, err := repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, &nick, got.Username)

	_, err = repo.GetUser(ctx, 999)
	require.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestSQLite_Tokens(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, repo, "a@example.com")
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.CreateToken(ctx, entities.AccessToken{
		ID: "live", UserID: u.ID, Name: "kollab_token", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, repo.CreateToken(ctx, entities.AccessToken{
		ID: "stale", UserID: u.ID, Name: "kollab_token", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}))

	ok, err := repo.TokenActive(ctx, "live", u.ID, now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.TokenActive(ctx, "live", u.ID+1, now)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.TokenActive(ctx, "stale", u.ID, now)
	require.NoError(t, err)
	require.False(t, ok)

	n, err := repo.DeleteExpiredTokens(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = repo.DeleteUserTokens(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestSQLite_TeamMembership(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	leader := createUser(t, repo, "lead@example.com")
	member := createUser(t, repo, "member@example.com")

	team, err := repo.CreateTeam(ctx, entities.Team{Name: "core", LeaderID: leader.ID})
	require.NoError(t, err)

	ok, err := repo.IsMember(ctx, team.ID, leader.ID)
	require.NoError(t, err)
	require.True(t, ok, "leader is a member from creation")

	require.NoError(t, repo.AddMember(ctx, team.ID, member.ID))
	require.ErrorIs(t, repo.AddMember(ctx, team.ID, member.ID), entities.ErrAlreadyMember)

	members, err := repo.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, leader.ID, members[0].User.ID)
	require.Equal(t, "lead@example.com", members[0].User.Email)
	require.Equal(t, member.ID, members[1].User.ID)
	require.Equal(t, "member@example.com", members[1].User.Email)
	require.False(t, members[1].JoinedAt.IsZero())

	require.ErrorIs(t, repo.RemoveMember(ctx, team.ID, leader.ID), entities.ErrMemberNotFound)
	require.NoError(t, repo.RemoveMember(ctx, team.ID, member.ID))
	require.ErrorIs(t, repo.RemoveMember(ctx, team.ID, member.ID), entities.ErrMemberNotFound)

	members, err = repo.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, leader.ID, members[0].User.ID)

	teams, err := repo.ListUserTeams(ctx, leader.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	label := "platform"
	updated, err := repo.UpdateTeam(ctx, team.ID, entities.TeamPatch{Label: &label, SetLabel: true})
	require.NoError(t, err)
	require.Equal(t, "core", updated.Name)
	require.Equal(t, &label, updated.Label)
}

func TestSQLite_DeleteTeamCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	leader := createUser(t, repo, "lead@example.com")

	team, err := repo.CreateTeam(ctx, entities.Team{Name: "core", LeaderID: leader.ID})
	require.NoError(t, err)
	project, err := repo.CreateProject(ctx, entities.NewProject{TeamID: team.ID, Name: "p", Deadline: time.Now()})
	require.NoError(t, err)
	task, err := repo.CreateTask(ctx, entities.Task{
		ProjectID:  &project.ID,
		Title:      "t",
		Status:     entities.TaskPending,
		Priority:   entities.PriorityMedium,
		Deadline:   time.Now(),
		AssignedTo: leader.ID,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTeam(ctx, team.ID))

	_, err = repo.GetProject(ctx, project.ID)
	require.ErrorIs(t, err, entities.ErrProjectNotFound)
	_, err = repo.GetTaskAccess(ctx, task.ID)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
	require.ErrorIs(t, repo.DeleteTeam(ctx, team.ID), entities.ErrTeamNotFound)
}

func TestSQLite_TaskAccessCarriesLeader(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	leader := createUser(t, repo, "lead@example.com")
	worker := createUser(t, repo, "worker@example.com")

	team, err := repo.CreateTeam(ctx, entities.Team{Name: "core", LeaderID: leader.ID})
	require.NoError(t, err)
	project, err := repo.CreateProject(ctx, entities.NewProject{TeamID: team.ID, Name: "p", Deadline: time.Now()})
	require.NoError(t, err)

	inProject, err := repo.CreateTask(ctx, entities.Task{
		ProjectID: &project.ID, Title: "a", Status: entities.TaskPending,
		Priority: entities.PriorityHigh, Deadline: time.Now(), AssignedTo: worker.ID,
	})
	require.NoError(t, err)
	standalone, err := repo.CreateTask(ctx, entities.Task{
		Title: "b", Status: entities.TaskPending,
		Priority: entities.PriorityLow, Deadline: time.Now(), AssignedTo: worker.ID,
	})
	require.NoError(t, err)

	access, err := repo.GetTaskAccess(ctx, inProject.ID)
	require.NoError(t, err)
	require.NotNil(t, access.TeamLeaderID)
	require.Equal(t, leader.ID, *access.TeamLeaderID)

	access, err = repo.GetTaskAccess(ctx, standalone.ID)
	require.NoError(t, err)
	require.Nil(t, access.TeamLeaderID)

	done := time.Now().UTC().Truncate(time.Second)
	saved := access.Task
	saved.Status = entities.TaskCompleted
	saved.CompletedAt = &done
	got, err := repo.SaveTask(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, entities.TaskCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)

	tasks, err := repo.ListAssignedTasks(ctx, worker.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	tasks, err = repo.ListProjectTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}
