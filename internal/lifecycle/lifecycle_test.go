package lifecycle

import (
	"testing"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	deadline = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func newEngine() *Engine {
	return New(func() time.Time { return fixedNow })
}

func TestCreateDefaults(t *testing.T) {
	task, err := newEngine().Create(7, entities.NewTask{Title: "  write report ", Deadline: deadline})
	require.NoError(t, err)

	want := entities.Task{
		Title:      "write report",
		Status:     entities.TaskPending,
		Priority:   entities.PriorityMedium,
		Deadline:   deadline,
		AssignedTo: 7,
	}
	if diff := cmp.Diff(want, task); diff != "" {
		t.Fatalf("task mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateExplicitFields(t *testing.T) {
	task, err := newEngine().Create(7, entities.NewTask{
		ProjectID:  ptr(int64(3)),
		Title:      "ship",
		Status:     entities.TaskCompleted,
		Priority:   entities.PriorityHigh,
		Deadline:   deadline,
		AssignedTo: ptr(entities.UserID(9)),
	})
	require.NoError(t, err)
	require.Equal(t, entities.UserID(9), task.AssignedTo)
	require.Equal(t, entities.TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	require.Equal(t, fixedNow, *task.CompletedAt)
}

func TestCreateValidation(t *testing.T) {
	e := newEngine()
	cases := map[string]entities.NewTask{
		"empty title":  {Title: " ", Deadline: deadline},
		"no deadline":  {Title: "a"},
		"bad status":   {Title: "a", Deadline: deadline, Status: "archived"},
		"bad priority": {Title: "a", Deadline: deadline, Priority: "urgent"},
	}
	for name, in := range cases {
		_, err := e.Create(1, in)
		require.ErrorIs(t, err, entities.ErrInvalidArgument, name)
	}
}

func TestCompleteFromAnyState(t *testing.T) {
	e := newEngine()
	for _, status := range []entities.TaskStatus{entities.TaskPending, entities.TaskInProgress, entities.TaskCompleted} {
		task := entities.Task{Status: status}
		e.Complete(&task)
		require.Equal(t, entities.TaskCompleted, task.Status)
		require.NotNil(t, task.CompletedAt)
	}
}

func TestSuspendClearsCompletion(t *testing.T) {
	e := newEngine()
	task := entities.Task{Status: entities.TaskInProgress}
	e.Complete(&task)
	e.Suspend(&task)
	require.Equal(t, entities.TaskPending, task.Status)
	require.Nil(t, task.CompletedAt)
}

func TestApplyKeepsCompletionInSync(t *testing.T) {
	e := newEngine()
	task := entities.Task{Title: "a", Status: entities.TaskPending, Priority: entities.PriorityLow}

	require.NoError(t, e.Apply(&task, entities.TaskPatch{Status: ptr(entities.TaskCompleted)}))
	require.NotNil(t, task.CompletedAt)

	require.NoError(t, e.Apply(&task, entities.TaskPatch{Status: ptr(entities.TaskInProgress)}))
	require.Nil(t, task.CompletedAt)
}

func TestApplyIsAllOrNothing(t *testing.T) {
	e := newEngine()
	task := entities.Task{Title: "a", Status: entities.TaskPending, Priority: entities.PriorityLow}
	before := task

	err := e.Apply(&task, entities.TaskPatch{
		Title:    ptr("b"),
		Priority: ptr(entities.TaskPriority("urgent")),
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	require.Equal(t, before, task)
}

func TestApplyFields(t *testing.T) {
	e := newEngine()
	task := entities.Task{Title: "a", Label: ptr("x"), Status: entities.TaskPending, Priority: entities.PriorityLow, AssignedTo: 1}
	newDeadline := deadline.Add(24 * time.Hour)

	require.NoError(t, e.Apply(&task, entities.TaskPatch{
		Title:      ptr("b"),
		SetLabel:   true,
		Priority:   ptr(entities.PriorityHigh),
		Deadline:   &newDeadline,
		AssignedTo: ptr(entities.UserID(2)),
	}))
	require.Equal(t, "b", task.Title)
	require.Nil(t, task.Label)
	require.Equal(t, entities.PriorityHigh, task.Priority)
	require.Equal(t, newDeadline, task.Deadline)
	require.Equal(t, entities.UserID(2), task.AssignedTo)
	require.Equal(t, entities.TaskPending, task.Status)
}
