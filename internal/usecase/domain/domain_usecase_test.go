package domain

import (
	"context"
	"testing"
	"time"

	"github.com/k13lucien/Kollab/internal/auth"
	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) CreateUser(ctx context.Context, u entities.NewUser) (*entities.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) GetUser(ctx context.Context, id entities.UserID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) CreateToken(ctx context.Context, t entities.AccessToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *repoMock) TokenActive(ctx context.Context, id string, userID entities.UserID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *repoMock) DeleteUserTokens(ctx context.Context, userID entities.UserID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) GetTeam(ctx context.Context, id int64) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) ListUserTeams(ctx context.Context, userID entities.UserID) ([]entities.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Team), args.Error(1)
}

func (m *repoMock) UpdateTeam(ctx context.Context, id int64, patch entities.TeamPatch) (*entities.Team, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *repoMock) DeleteTeam(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) AddMember(ctx context.Context, teamID int64, userID entities.UserID) error {
	return m.Called(ctx, teamID, userID).Error(0)
}

func (m *repoMock) RemoveMember(ctx context.Context, teamID int64, userID entities.UserID) error {
	return m.Called(ctx, teamID, userID).Error(0)
}

func (m *repoMock) IsMember(ctx context.Context, teamID int64, userID entities.UserID) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *repoMock) ListMembers(ctx context.Context, teamID int64) ([]entities.Member, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Member), args.Error(1)
}

func (m *repoMock) CreateProject(ctx context.Context, p entities.NewProject) (*entities.Project, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *repoMock) GetProject(ctx context.Context, id int64) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *repoMock) ListTeamProjects(ctx context.Context, teamID int64) ([]entities.Project, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Project), args.Error(1)
}

func (m *repoMock) ListUserProjects(ctx context.Context, userID entities.UserID) ([]entities.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Project), args.Error(1)
}

func (m *repoMock) UpdateProject(ctx context.Context, id int64, patch entities.ProjectPatch) (*entities.Project, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *repoMock) DeleteProject(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) CreateTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) GetTaskAccess(ctx context.Context, id int64) (*entities.TaskAccess, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TaskAccess), args.Error(1)
}

func (m *repoMock) ListAssignedTasks(ctx context.Context, userID entities.UserID) ([]entities.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Task), args.Error(1)
}

func (m *repoMock) ListProjectTasks(ctx context.Context, projectID int64) ([]entities.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Task), args.Error(1)
}

func (m *repoMock) SaveTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *repoMock) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newTestUsecase(repo repository.Repository) *Usecase {
	return New(
		zap.NewNop().Sugar(),
		context.Background(),
		repo,
		time.Second,
		auth.NewTokens(testSecret, time.Hour, nil),
		auth.NewPasswords(4),
	)
}

func ptr[T any](v T) *T { return &v }

func TestUsecase_CreateTeamValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.CreateTeam(context.Background(), 1, "   ", nil)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateTeam", mock.Anything, mock.Anything)
}

func TestUsecase_CreateTeamDelegates(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	expected := &entities.Team{ID: 5, Name: "core", LeaderID: 1}
	repo.On("CreateTeam", mock.Anything, entities.Team{Name: "core", LeaderID: 1}).Return(expected, nil)

	team, err := uc.CreateTeam(context.Background(), 1, " core ", nil)
	require.NoError(t, err)
	require.Equal(t, expected, team)
	repo.AssertExpectations(t)
}

func TestUsecase_AddMemberByNonLeaderIsForbidden(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	repo.On("GetTeam", mock.Anything, int64(5)).Return(&entities.Team{ID: 5, LeaderID: 1}, nil)

	err := uc.AddMember(context.Background(), 5, 2, 3)
	require.ErrorIs(t, err, entities.ErrForbidden)
	repo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_AddMemberConflict(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	repo.On("GetTeam", mock.Anything, int64(5)).Return(&entities.Team{ID: 5, LeaderID: 1}, nil)
	repo.On("GetUser", mock.Anything, entities.UserID(2)).Return(&entities.User{ID: 2}, nil)
	repo.On("AddMember", mock.Anything, int64(5), entities.UserID(2)).Return(entities.ErrAlreadyMember)

	err := uc.AddMember(context.Background(), 5, 1, 2)
	require.ErrorIs(t, err, entities.ErrConflict)
}

func TestUsecase_RemoveLeaderIsInvalidForAnyCaller(t *testing.T) {
	for _, caller := range []entities.UserID{1, 2} {
		repo := &repoMock{}
		uc := newTestUsecase(repo)
		repo.On("GetTeam", mock.Anything, int64(5)).Return(&entities.Team{ID: 5, LeaderID: 1}, nil)

		err := uc.RemoveMember(context.Background(), 5, caller, 1)
		require.ErrorIs(t, err, entities.ErrInvalidOperation)
		repo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestUsecase_RemoveMemberByNonLeaderIsForbidden(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	repo.On("GetTeam", mock.Anything, int64(5)).Return(&entities.Team{ID: 5, LeaderID: 1}, nil)

	err := uc.RemoveMember(context.Background(), 5, 2, 3)
	require.ErrorIs(t, err, entities.ErrForbidden)
	repo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_TeamUpdateRequiresLeader(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	repo.On("GetTeam", mock.Anything, int64(5)).Return(&entities.Team{ID: 5, LeaderID: 1}, nil)

	_, err := uc.UpdateTeam(context.Background(), 2, 5, entities.TeamPatch{Name: ptr("x")})
	require.ErrorIs(t, err, entities.ErrForbidden)

	err = uc.DeleteTeam(context.Background(), 2, 5)
	require.ErrorIs(t, err, entities.ErrForbidden)
	repo.AssertNotCalled(t, "DeleteTeam", mock.Anything, mock.Anything)
}

func TestUsecase_CreateProjectForbiddenForOutsider(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	repo.On("GetTeam", mock.Anything, int64(5)).Return(&entities.Team{ID: 5, LeaderID: 1}, nil)
	repo.On("IsMember", mock.Anything, int64(5), entities.UserID(9)).Return(false, nil)

	_, err := uc.CreateProject(context.Background(), 9, entities.NewProject{TeamID: 5, Name: "p", Deadline: time.Now()})
	require.ErrorIs(t, err, entities.ErrForbidden)
	repo.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
}

func TestUsecase_CreateProjectValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.CreateProject(context.Background(), 1, entities.NewProject{TeamID: 5, Name: "p"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "GetTeam", mock.Anything, mock.Anything)
}

func TestUsecase_TaskMutationDeniedToLeader(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	access := &entities.TaskAccess{
		Task:         entities.Task{ID: 8, AssignedTo: 2, Status: entities.TaskPending, Priority: entities.PriorityLow},
		TeamLeaderID: ptr(entities.UserID(1)),
	}
	repo.On("GetTaskAccess", mock.Anything, int64(8)).Return(access, nil)

	task, err := uc.Task(context.Background(), 1, 8)
	require.NoError(t, err)
	require.Equal(t, int64(8), task.ID)

	_, err = uc.SuspendTask(context.Background(), 1, 8)
	require.ErrorIs(t, err, entities.ErrForbidden)
	_, err = uc.CompleteTask(context.Background(), 1, 8)
	require.ErrorIs(t, err, entities.ErrForbidden)
	err = uc.DeleteTask(context.Background(), 1, 8)
	require.ErrorIs(t, err, entities.ErrForbidden)
	repo.AssertNotCalled(t, "SaveTask", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteTask", mock.Anything, mock.Anything)
}

func TestUsecase_EmptyTaskPatchAuthorizesWithoutWriting(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	access := &entities.TaskAccess{
		Task:         entities.Task{ID: 8, Title: "ship", AssignedTo: 2, Status: entities.TaskPending},
		TeamLeaderID: ptr(entities.UserID(1)),
	}
	repo.On("GetTaskAccess", mock.Anything, int64(8)).Return(access, nil)

	_, err := uc.UpdateTask(context.Background(), 1, 8, entities.TaskPatch{})
	require.ErrorIs(t, err, entities.ErrForbidden)

	task, err := uc.UpdateTask(context.Background(), 2, 8, entities.TaskPatch{})
	require.NoError(t, err)
	require.Equal(t, "ship", task.Title)
	repo.AssertNotCalled(t, "SaveTask", mock.Anything, mock.Anything)
}

func TestUsecase_CompleteTaskStampsCompletion(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	access := &entities.TaskAccess{Task: entities.Task{ID: 8, AssignedTo: 2, Status: entities.TaskInProgress}}
	repo.On("GetTaskAccess", mock.Anything, int64(8)).Return(access, nil)
	repo.On("SaveTask", mock.Anything, mock.MatchedBy(func(t entities.Task) bool {
		return t.Status == entities.TaskCompleted && t.CompletedAt != nil
	})).Return(&entities.Task{ID: 8, AssignedTo: 2, Status: entities.TaskCompleted, CompletedAt: ptr(time.Now())}, nil)

	task, err := uc.CompleteTask(context.Background(), 2, 8)
	require.NoError(t, err)
	require.Equal(t, entities.TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	repo.AssertExpectations(t)
}

func TestUsecase_CreateTaskDefaultsAssignee(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	repo.On("CreateTask", mock.Anything, mock.MatchedBy(func(t entities.Task) bool {
		return t.AssignedTo == 4 && t.Status == entities.TaskPending
	})).Return(&entities.Task{ID: 1, AssignedTo: 4, Status: entities.TaskPending}, nil)

	task, err := uc.CreateTask(context.Background(), 4, entities.NewTask{Title: "t", Deadline: time.Now()})
	require.NoError(t, err)
	require.Equal(t, entities.UserID(4), task.AssignedTo)
	repo.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestUsecase_AuthenticateRejectsRevokedToken(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	raw, rec, err := uc.tokens.Issue(3)
	require.NoError(t, err)
	repo.On("TokenActive", mock.Anything, rec.ID, entities.UserID(3), mock.Anything).Return(false, nil)

	_, err = uc.Authenticate(context.Background(), raw)
	require.ErrorIs(t, err, entities.ErrUnauthenticated)
}

func TestUsecase_LoginUnknownEmail(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, entities.ErrUserNotFound)

	_, err := uc.Login(context.Background(), "Ghost@Example.com", "pw")
	require.ErrorIs(t, err, entities.ErrUnauthenticated)
}

func TestUsecase_RegisterValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo)

	_, err := uc.Register(context.Background(), entities.Registration{Email: "not-an-email", Password: "pw"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	_, err = uc.Register(context.Background(), entities.Registration{Email: "a@b.co"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}
