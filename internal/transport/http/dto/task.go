package dto

import "time"

// Task is the transport form of a task.
type Task struct {
	ID          int64      `json:"id"`
	ProjectID   *int64     `json:"project_id"`
	Title       string     `json:"title"`
	Label       *string    `json:"label"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Deadline    Date       `json:"deadline"`
	AssignedTo  int64      `json:"assigned_to"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	ProjectID  *int64  `json:"project_id"`
	Title      string  `json:"title"`
	Label      *string `json:"label"`
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	Deadline   *Date   `json:"deadline"`
	AssignedTo *int64  `json:"assigned_to"`
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}.
type UpdateTaskRequest struct {
	Title      *string        `json:"title"`
	Label      NullableString `json:"label"`
	Status     *string        `json:"status"`
	Priority   *string        `json:"priority"`
	Deadline   *Date          `json:"deadline"`
	AssignedTo *int64         `json:"assigned_to"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task Task `json:"task"`
}
