package entities

import "time"

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	// TaskPending is the initial state.
	TaskPending TaskStatus = "pending"
	// TaskInProgress marks work started.
	TaskInProgress TaskStatus = "in_progress"
	// TaskCompleted marks work done; completed_at is set.
	TaskCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority enumerates task priorities.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the enumerated priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work assigned to exactly one user.
type Task struct {
	ID          int64
	ProjectID   *int64
	Title       string
	Label       *string
	Status      TaskStatus
	Priority    TaskPriority
	Deadline    time.Time
	AssignedTo  UserID
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask carries task creation input; zero values mean "use the default".
type NewTask struct {
	ProjectID  *int64
	Title      string
	Label      *string
	Status     TaskStatus
	Priority   TaskPriority
	Deadline   time.Time
	AssignedTo *UserID
}

// TaskPatch lists the task fields an assignee may change.
type TaskPatch struct {
	Title      *string
	Label      *string
	SetLabel   bool
	Status     *TaskStatus
	Priority   *TaskPriority
	Deadline   *time.Time
	AssignedTo *UserID
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && !p.SetLabel && p.Status == nil &&
		p.Priority == nil && p.Deadline == nil && p.AssignedTo == nil
}

// TaskAccess is a task plus the facts the access policy needs about it.
type TaskAccess struct {
	Task Task
	// TeamLeaderID is the leader of the task's project team, nil for standalone tasks.
	TeamLeaderID *UserID
}
