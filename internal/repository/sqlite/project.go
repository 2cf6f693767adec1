package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"gorm.io/gorm"
)

// CreateProject inserts a project; the caller has already resolved the team.
func (s *SQLite) CreateProject(ctx context.Context, in entities.NewProject) (*entities.Project, error) {
	m := projectModel{TeamID: in.TeamID, Name: in.Name, Label: in.Label, Deadline: in.Deadline}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		s.log.Errorw("failed to insert project", "error", err, "team_id", in.TeamID)
		return nil, fmt.Errorf("insert project: %w", err)
	}
	s.log.Infow("project created", "project_id", m.ID, "team_id", m.TeamID)
	p := m.toEntity()
	return &p, nil
}

// GetProject fetches a project by id.
func (s *SQLite) GetProject(ctx context.Context, id int64) (*entities.Project, error) {
	var m projectModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	p := m.toEntity()
	return &p, nil
}

// ListTeamProjects returns the projects owned by a team.
func (s *SQLite) ListTeamProjects(ctx context.Context, teamID int64) ([]entities.Project, error) {
	return s.findProjects(s.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at, id"))
}

// ListUserProjects returns the projects of every team userID belongs to.
func (s *SQLite) ListUserProjects(ctx context.Context, userID entities.UserID) ([]entities.Project, error) {
	return s.findProjects(s.db.WithContext(ctx).
		Joins("JOIN team_members m ON m.team_id = projects.team_id").
		Where("m.user_id = ?", userID).
		Order("projects.created_at, projects.id"))
}

// UpdateProject applies a patch to name/label/deadline.
func (s *SQLite) UpdateProject(ctx context.Context, id int64, patch entities.ProjectPatch) (*entities.Project, error) {
	values := map[string]any{"updated_at": time.Now()}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.SetLabel {
		values["label"] = patch.Label
	}
	if patch.Deadline != nil {
		values["deadline"] = *patch.Deadline
	}

	res := s.db.WithContext(ctx).Model(&projectModel{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		s.log.Errorw("failed to update project", "error", res.Error, "project_id", id)
		return nil, fmt.Errorf("update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrProjectNotFound
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes a project and its tasks.
func (s *SQLite) DeleteProject(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&projectModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrProjectNotFound
		}
		return tx.Where("project_id = ?", id).Delete(&taskModel{}).Error
	})
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return err
		}
		s.log.Errorw("failed to delete project", "error", err, "project_id", id)
		return fmt.Errorf("delete project: %w", err)
	}
	s.log.Infow("project deleted", "project_id", id)
	return nil
}

func (s *SQLite) findProjects(q *gorm.DB) ([]entities.Project, error) {
	var models []projectModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := make([]entities.Project, 0, len(models))
	for _, m := range models {
		projects = append(projects, m.toEntity())
	}
	return projects, nil
}
