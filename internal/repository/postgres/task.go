package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	taskColumns     = `id, project_id, title, label, status, priority, deadline, assigned_to, completed_at, created_at, updated_at`
	insertTaskQuery = `
INSERT INTO tasks(project_id, title, label, status, priority, deadline, assigned_to, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + taskColumns
	selectTaskAccessQuery = `
SELECT t.id, t.project_id, t.title, t.label, t.status, t.priority, t.deadline, t.assigned_to, t.completed_at, t.created_at, t.updated_at,
       tm.leader_id
FROM tasks t
LEFT JOIN projects p ON p.id = t.project_id
LEFT JOIN teams tm ON tm.id = p.team_id
WHERE t.id = $1`
	assignedTasksQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to=$1 ORDER BY created_at DESC, id DESC`
	projectTasksQuery  = `SELECT ` + taskColumns + ` FROM tasks WHERE project_id=$1 ORDER BY created_at DESC, id DESC`
	saveTaskQuery      = `
UPDATE tasks
SET title = $2, label = $3, status = $4, priority = $5, deadline = $6,
    assigned_to = $7, completed_at = $8, updated_at = NOW()
WHERE id = $1
RETURNING ` + taskColumns
	deleteTaskQuery = `DELETE FROM tasks WHERE id=$1`
)

// CreateTask inserts a task built by the lifecycle engine.
func (p *Postgres) CreateTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	created, err := scanTask(p.db.QueryRow(ctx, insertTaskQuery,
		t.ProjectID, t.Title, t.Label, t.Status, t.Priority, t.Deadline, t.AssignedTo, t.CompletedAt))
	if err != nil {
		if code, constraint := pgErrorCode(err); code == codeForeignKeyViolation {
			if constraint == "tasks_project_id_fkey" {
				return nil, entities.ErrProjectNotFound
			}
			return nil, entities.ErrUserNotFound
		}
		p.log.Errorw("failed to insert task", "error", err)
		return nil, fmt.Errorf("insert task: %w", err)
	}
	p.log.Infow("task created", "task_id", created.ID, "assigned_to", created.AssignedTo)
	return created, nil
}

// GetTaskAccess fetches a task with the leader of its project team.
func (p *Postgres) GetTaskAccess(ctx context.Context, id int64) (*entities.TaskAccess, error) {
	var a entities.TaskAccess
	t := &a.Task
	err := p.db.QueryRow(ctx, selectTaskAccessQuery, id).Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Label, &t.Status, &t.Priority, &t.Deadline,
		&t.AssignedTo, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt, &a.TeamLeaderID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &a, nil
}

// ListAssignedTasks returns the user's tasks, newest first.
func (p *Postgres) ListAssignedTasks(ctx context.Context, userID entities.UserID) ([]entities.Task, error) {
	return p.queryTasks(ctx, assignedTasksQuery, userID)
}

// ListProjectTasks returns a project's tasks, newest first.
func (p *Postgres) ListProjectTasks(ctx context.Context, projectID int64) ([]entities.Task, error) {
	return p.queryTasks(ctx, projectTasksQuery, projectID)
}

// SaveTask writes every mutable field of t.
func (p *Postgres) SaveTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	saved, err := scanTask(p.db.QueryRow(ctx, saveTaskQuery,
		t.ID, t.Title, t.Label, t.Status, t.Priority, t.Deadline, t.AssignedTo, t.CompletedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		if code, _ := pgErrorCode(err); code == codeForeignKeyViolation {
			return nil, entities.ErrUserNotFound
		}
		p.log.Errorw("failed to save task", "error", err, "task_id", t.ID)
		return nil, fmt.Errorf("save task: %w", err)
	}
	return saved, nil
}

// DeleteTask removes a task.
func (p *Postgres) DeleteTask(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		p.log.Errorw("failed to delete task", "error", err, "task_id", id)
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTaskNotFound
	}
	p.log.Infow("task deleted", "task_id", id)
	return nil
}

func (p *Postgres) queryTasks(ctx context.Context, query string, arg int64) ([]entities.Task, error) {
	rows, err := p.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entities.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var t entities.Task
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Label, &t.Status, &t.Priority, &t.Deadline,
		&t.AssignedTo, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
