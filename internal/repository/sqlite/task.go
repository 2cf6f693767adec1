package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"gorm.io/gorm"
)

// CreateTask inserts a task built by the lifecycle engine.
func (s *SQLite) CreateTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	m := taskFromEntity(t)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		s.log.Errorw("failed to insert task", "error", err)
		return nil, fmt.Errorf("insert task: %w", err)
	}
	s.log.Infow("task created", "task_id", m.ID, "assigned_to", m.AssignedTo)
	created := m.toEntity()
	return &created, nil
}

// GetTaskAccess fetches a task with the leader of its project team.
func (s *SQLite) GetTaskAccess(ctx context.Context, id int64) (*entities.TaskAccess, error) {
	db := s.db.WithContext(ctx)

	var m taskModel
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	access := &entities.TaskAccess{Task: m.toEntity()}
	if m.ProjectID == nil {
		return access, nil
	}

	var leaders []int64
	if err := db.Model(&projectModel{}).
		Joins("JOIN teams ON teams.id = projects.team_id").
		Where("projects.id = ?", *m.ProjectID).
		Pluck("teams.leader_id", &leaders).Error; err != nil {
		return nil, fmt.Errorf("get task leader: %w", err)
	}
	if len(leaders) > 0 {
		access.TeamLeaderID = &leaders[0]
	}
	return access, nil
}

// ListAssignedTasks returns the user's tasks, newest first.
func (s *SQLite) ListAssignedTasks(ctx context.Context, userID entities.UserID) ([]entities.Task, error) {
	return s.findTasks(s.db.WithContext(ctx).Where("assigned_to = ?", userID))
}

// ListProjectTasks returns a project's tasks, newest first.
func (s *SQLite) ListProjectTasks(ctx context.Context, projectID int64) ([]entities.Task, error) {
	return s.findTasks(s.db.WithContext(ctx).Where("project_id = ?", projectID))
}

// SaveTask writes every mutable field of t.
func (s *SQLite) SaveTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	res := s.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", t.ID).Updates(map[string]any{
		"title":        t.Title,
		"label":        t.Label,
		"status":       string(t.Status),
		"priority":     string(t.Priority),
		"deadline":     t.Deadline,
		"assigned_to":  t.AssignedTo,
		"completed_at": t.CompletedAt,
		"updated_at":   time.Now(),
	})
	if res.Error != nil {
		s.log.Errorw("failed to save task", "error", res.Error, "task_id", t.ID)
		return nil, fmt.Errorf("save task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrTaskNotFound
	}

	var m taskModel
	if err := s.db.WithContext(ctx).First(&m, t.ID).Error; err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	saved := m.toEntity()
	return &saved, nil
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&taskModel{}, id)
	if res.Error != nil {
		s.log.Errorw("failed to delete task", "error", res.Error, "task_id", id)
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	s.log.Infow("task deleted", "task_id", id)
	return nil
}

func (s *SQLite) findTasks(q *gorm.DB) ([]entities.Task, error) {
	var models []taskModel
	if err := q.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]entities.Task, 0, len(models))
	for _, m := range models {
		tasks = append(tasks, m.toEntity())
	}
	return tasks, nil
}
