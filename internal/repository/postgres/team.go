package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	teamColumns       = `id, name, label, leader_id, created_at, updated_at`
	insertTeamQuery   = `INSERT INTO teams(name, label, leader_id) VALUES ($1, $2, $3) RETURNING ` + teamColumns
	insertMemberQuery = `INSERT INTO team_members(team_id, user_id) VALUES ($1, $2)`
	selectTeamQuery   = `SELECT ` + teamColumns + ` FROM teams WHERE id=$1`
	userTeamsQuery    = `
SELECT t.id, t.name, t.label, t.leader_id, t.created_at, t.updated_at
FROM teams t
JOIN team_members m ON m.team_id = t.id
WHERE m.user_id = $1
ORDER BY t.created_at, t.id`
	updateTeamQuery = `
UPDATE teams
SET name = COALESCE($2::text, name),
    label = CASE WHEN $3::boolean THEN $4::text ELSE label END,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + teamColumns
	deleteTeamQuery = `DELETE FROM teams WHERE id=$1`

	deleteMemberQuery = `
DELETE FROM team_members m
USING teams t
WHERE m.team_id = $1 AND m.user_id = $2 AND t.id = m.team_id AND t.leader_id <> m.user_id`
	isMemberQuery      = `SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id=$1 AND user_id=$2)`
	selectMembersQuery = `
SELECT u.id, u.name, u.surname, u.email, u.username, u.password_hash, u.created_at, u.updated_at, m.created_at
FROM team_members m
JOIN users u ON u.id = m.user_id
WHERE m.team_id = $1
ORDER BY m.created_at, u.id`
)

// CreateTeam inserts a team and its leader membership in one transaction.
func (p *Postgres) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created, err := scanTeam(tx.QueryRow(ctx, insertTeamQuery, team.Name, team.Label, team.LeaderID))
	if err != nil {
		if code, _ := pgErrorCode(err); code == codeForeignKeyViolation {
			return nil, entities.ErrUserNotFound
		}
		p.log.Errorw("failed to insert team", "error", err, "leader_id", team.LeaderID)
		return nil, fmt.Errorf("insert team: %w", err)
	}

	if _, err := tx.Exec(ctx, insertMemberQuery, created.ID, created.LeaderID); err != nil {
		p.log.Errorw("failed to insert leader membership", "error", err, "team_id", created.ID)
		return nil, fmt.Errorf("insert leader membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("team created", "team_id", created.ID, "leader_id", created.LeaderID)
	return created, nil
}

// GetTeam fetches a team by id.
func (p *Postgres) GetTeam(ctx context.Context, id int64) (*entities.Team, error) {
	t, err := scanTeam(p.db.QueryRow(ctx, selectTeamQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

// ListUserTeams returns the teams userID is a member of.
func (p *Postgres) ListUserTeams(ctx context.Context, userID entities.UserID) ([]entities.Team, error) {
	rows, err := p.db.Query(ctx, userTeamsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// UpdateTeam applies a patch to name/label.
func (p *Postgres) UpdateTeam(ctx context.Context, id int64, patch entities.TeamPatch) (*entities.Team, error) {
	t, err := scanTeam(p.db.QueryRow(ctx, updateTeamQuery, id, patch.Name, patch.SetLabel, patch.Label))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrTeamNotFound
		}
		p.log.Errorw("failed to update team", "error", err, "team_id", id)
		return nil, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

// DeleteTeam removes a team; memberships and projects cascade.
func (p *Postgres) DeleteTeam(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, deleteTeamQuery, id)
	if err != nil {
		p.log.Errorw("failed to delete team", "error", err, "team_id", id)
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrTeamNotFound
	}
	p.log.Infow("team deleted", "team_id", id)
	return nil
}

// AddMember inserts a membership. The primary key serialises concurrent
// duplicates: exactly one insert wins, the rest observe ErrAlreadyMember.
func (p *Postgres) AddMember(ctx context.Context, teamID int64, userID entities.UserID) error {
	if _, err := p.db.Exec(ctx, insertMemberQuery, teamID, userID); err != nil {
		code, constraint := pgErrorCode(err)
		switch {
		case code == codeUniqueViolation:
			return entities.ErrAlreadyMember
		case code == codeForeignKeyViolation && constraint == "team_members_team_id_fkey":
			return entities.ErrTeamNotFound
		case code == codeForeignKeyViolation:
			return entities.ErrUserNotFound
		}
		p.log.Errorw("failed to insert member", "error", err, "team_id", teamID, "user_id", userID)
		return fmt.Errorf("insert member: %w", err)
	}
	p.log.Infow("member added", "team_id", teamID, "user_id", userID)
	return nil
}

// RemoveMember deletes a non-leader membership.
func (p *Postgres) RemoveMember(ctx context.Context, teamID int64, userID entities.UserID) error {
	tag, err := p.db.Exec(ctx, deleteMemberQuery, teamID, userID)
	if err != nil {
		p.log.Errorw("failed to delete member", "error", err, "team_id", teamID, "user_id", userID)
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrMemberNotFound
	}
	p.log.Infow("member removed", "team_id", teamID, "user_id", userID)
	return nil
}

// IsMember reports whether userID belongs to teamID.
func (p *Postgres) IsMember(ctx context.Context, teamID int64, userID entities.UserID) (bool, error) {
	var ok bool
	if err := p.db.QueryRow(ctx, isMemberQuery, teamID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("is member: %w", err)
	}
	return ok, nil
}

// ListMembers returns team members in join order.
func (p *Postgres) ListMembers(ctx context.Context, teamID int64) ([]entities.Member, error) {
	rows, err := p.db.Query(ctx, selectMembersQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]entities.Member, 0)
	for rows.Next() {
		var m entities.Member
		u := &m.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Label, &t.LeaderID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
