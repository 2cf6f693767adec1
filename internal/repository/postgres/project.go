package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	projectColumns     = `id, team_id, name, label, deadline, created_at, updated_at`
	insertProjectQuery = `INSERT INTO projects(team_id, name, label, deadline) VALUES ($1, $2, $3, $4) RETURNING ` + projectColumns
	selectProjectQuery = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
	teamProjectsQuery  = `SELECT ` + projectColumns + ` FROM projects WHERE team_id=$1 ORDER BY created_at, id`
	userProjectsQuery  = `
SELECT p.id, p.team_id, p.name, p.label, p.deadline, p.created_at, p.updated_at
FROM projects p
JOIN team_members m ON m.team_id = p.team_id
WHERE m.user_id = $1
ORDER BY p.created_at, p.id`
	updateProjectQuery = `
UPDATE projects
SET name = COALESCE($2::text, name),
    label = CASE WHEN $3::boolean THEN $4::text ELSE label END,
    deadline = COALESCE($5::timestamptz, deadline),
    updated_at = NOW()
WHERE id = $1
RETURNING ` + projectColumns
	deleteProjectQuery = `DELETE FROM projects WHERE id=$1`
)

// CreateProject inserts a project under an existing team.
func (p *Postgres) CreateProject(ctx context.Context, in entities.NewProject) (*entities.Project, error) {
	pr, err := scanProject(p.db.QueryRow(ctx, insertProjectQuery, in.TeamID, in.Name, in.Label, in.Deadline))
	if err != nil {
		if code, _ := pgErrorCode(err); code == codeForeignKeyViolation {
			return nil, entities.ErrTeamNotFound
		}
		p.log.Errorw("failed to insert project", "error", err, "team_id", in.TeamID)
		return nil, fmt.Errorf("insert project: %w", err)
	}
	p.log.Infow("project created", "project_id", pr.ID, "team_id", pr.TeamID)
	return pr, nil
}

// GetProject fetches a project by id.
func (p *Postgres) GetProject(ctx context.Context, id int64) (*entities.Project, error) {
	pr, err := scanProject(p.db.QueryRow(ctx, selectProjectQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return pr, nil
}

// ListTeamProjects returns the projects owned by a team.
func (p *Postgres) ListTeamProjects(ctx context.Context, teamID int64) ([]entities.Project, error) {
	return p.queryProjects(ctx, teamProjectsQuery, teamID)
}

// ListUserProjects returns the projects of every team userID belongs to.
func (p *Postgres) ListUserProjects(ctx context.Context, userID entities.UserID) ([]entities.Project, error) {
	return p.queryProjects(ctx, userProjectsQuery, userID)
}

// UpdateProject applies a patch to name/label/deadline.
func (p *Postgres) UpdateProject(ctx context.Context, id int64, patch entities.ProjectPatch) (*entities.Project, error) {
	pr, err := scanProject(p.db.QueryRow(ctx, updateProjectQuery, id, patch.Name, patch.SetLabel, patch.Label, patch.Deadline))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		p.log.Errorw("failed to update project", "error", err, "project_id", id)
		return nil, fmt.Errorf("update project: %w", err)
	}
	return pr, nil
}

// DeleteProject removes a project; its tasks cascade.
func (p *Postgres) DeleteProject(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, deleteProjectQuery, id)
	if err != nil {
		p.log.Errorw("failed to delete project", "error", err, "project_id", id)
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrProjectNotFound
	}
	p.log.Infow("project deleted", "project_id", id)
	return nil
}

func (p *Postgres) queryProjects(ctx context.Context, query string, arg int64) ([]entities.Project, error) {
	rows, err := p.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		pr, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func scanProject(row pgx.Row) (*entities.Project, error) {
	var pr entities.Project
	if err := row.Scan(&pr.ID, &pr.TeamID, &pr.Name, &pr.Label, &pr.Deadline, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
		return nil, err
	}
	return &pr, nil
}
