package sqlite

import (
	"time"

	"github.com/k13lucien/Kollab/internal/entities"
)

type userModel struct {
	ID           int64   `gorm:"primaryKey"`
	Name         *string
	Surname      *string
	Email        string  `gorm:"uniqueIndex;not null"`
	Username     *string `gorm:"uniqueIndex"`
	PasswordHash string  `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Surname:      m.Surname,
		Email:        m.Email,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type tokenModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    int64  `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

func (tokenModel) TableName() string { return "access_tokens" }

type teamModel struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Label     *string
	LeaderID  int64 `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (teamModel) TableName() string { return "teams" }

func (m teamModel) toEntity() entities.Team {
	return entities.Team{
		ID:        m.ID,
		Name:      m.Name,
		Label:     m.Label,
		LeaderID:  m.LeaderID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type teamMemberModel struct {
	TeamID    int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (teamMemberModel) TableName() string { return "team_members" }

type projectModel struct {
	ID        int64  `gorm:"primaryKey"`
	TeamID    int64  `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Label     *string
	Deadline  time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (projectModel) TableName() string { return "projects" }

func (m projectModel) toEntity() entities.Project {
	return entities.Project{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Name:      m.Name,
		Label:     m.Label,
		Deadline:  m.Deadline,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type taskModel struct {
	ID          int64  `gorm:"primaryKey"`
	ProjectID   *int64 `gorm:"index"`
	Title       string `gorm:"not null"`
	Label       *string
	Status      string    `gorm:"not null;default:pending"`
	Priority    string    `gorm:"not null;default:medium"`
	Deadline    time.Time `gorm:"not null"`
	AssignedTo  int64     `gorm:"index;not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskModel) TableName() string { return "tasks" }

func (m taskModel) toEntity() entities.Task {
	return entities.Task{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Label:       m.Label,
		Status:      entities.TaskStatus(m.Status),
		Priority:    entities.TaskPriority(m.Priority),
		Deadline:    m.Deadline,
		AssignedTo:  m.AssignedTo,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func taskFromEntity(t entities.Task) taskModel {
	return taskModel{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Label:       t.Label,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Deadline:    t.Deadline,
		AssignedTo:  t.AssignedTo,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
