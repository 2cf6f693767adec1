package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"gorm.io/gorm"
)

// CreateTeam inserts a team and its leader membership in one transaction.
func (s *SQLite) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	m := teamModel{Name: team.Name, Label: team.Label, LeaderID: team.LeaderID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("insert team: %w", err)
		}
		if err := tx.Create(&teamMemberModel{TeamID: m.ID, UserID: m.LeaderID}).Error; err != nil {
			return fmt.Errorf("insert leader membership: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Errorw("failed to create team", "error", err, "leader_id", team.LeaderID)
		return nil, err
	}

	s.log.Infow("team created", "team_id", m.ID, "leader_id", m.LeaderID)
	t := m.toEntity()
	return &t, nil
}

// GetTeam fetches a team by id.
func (s *SQLite) GetTeam(ctx context.Context, id int64) (*entities.Team, error) {
	var m teamModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	t := m.toEntity()
	return &t, nil
}

// ListUserTeams returns the teams userID is a member of.
func (s *SQLite) ListUserTeams(ctx context.Context, userID entities.UserID) ([]entities.Team, error) {
	var models []teamModel
	if err := s.db.WithContext(ctx).
		Joins("JOIN team_members m ON m.team_id = teams.id").
		Where("m.user_id = ?", userID).
		Order("teams.created_at, teams.id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}

	teams := make([]entities.Team, 0, len(models))
	for _, m := range models {
		teams = append(teams, m.toEntity())
	}
	return teams, nil
}

// UpdateTeam applies a patch to name/label.
func (s *SQLite) UpdateTeam(ctx context.Context, id int64, patch entities.TeamPatch) (*entities.Team, error) {
	values := map[string]any{"updated_at": time.Now()}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.SetLabel {
		values["label"] = patch.Label
	}

	res := s.db.WithContext(ctx).Model(&teamModel{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		s.log.Errorw("failed to update team", "error", res.Error, "team_id", id)
		return nil, fmt.Errorf("update team: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrTeamNotFound
	}
	return s.GetTeam(ctx, id)
}

// DeleteTeam removes a team with its memberships, projects and their tasks.
func (s *SQLite) DeleteTeam(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&teamModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrTeamNotFound
		}
		projects := tx.Model(&projectModel{}).Select("id").Where("team_id = ?", id)
		if err := tx.Where("project_id IN (?)", projects).Delete(&taskModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&projectModel{}).Error; err != nil {
			return err
		}
		return tx.Where("team_id = ?", id).Delete(&teamMemberModel{}).Error
	})
	if err != nil {
		if errors.Is(err, entities.ErrTeamNotFound) {
			return err
		}
		s.log.Errorw("failed to delete team", "error", err, "team_id", id)
		return fmt.Errorf("delete team: %w", err)
	}
	s.log.Infow("team deleted", "team_id", id)
	return nil
}

// AddMember inserts a membership. The composite primary key serialises
// concurrent duplicates: exactly one insert wins.
func (s *SQLite) AddMember(ctx context.Context, teamID int64, userID entities.UserID) error {
	if err := s.db.WithContext(ctx).Create(&teamMemberModel{TeamID: teamID, UserID: userID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrAlreadyMember
		}
		s.log.Errorw("failed to insert member", "error", err, "team_id", teamID, "user_id", userID)
		return fmt.Errorf("insert member: %w", err)
	}
	s.log.Infow("member added", "team_id", teamID, "user_id", userID)
	return nil
}

// RemoveMember deletes a non-leader membership.
func (s *SQLite) RemoveMember(ctx context.Context, teamID int64, userID entities.UserID) error {
	leader := s.db.Model(&teamModel{}).Select("leader_id").Where("id = ?", teamID)
	res := s.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ? AND user_id <> (?)", teamID, userID, leader).
		Delete(&teamMemberModel{})
	if res.Error != nil {
		s.log.Errorw("failed to delete member", "error", res.Error, "team_id", teamID, "user_id", userID)
		return fmt.Errorf("delete member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrMemberNotFound
	}
	s.log.Infow("member removed", "team_id", teamID, "user_id", userID)
	return nil
}

// IsMember reports whether userID belongs to teamID.
func (s *SQLite) IsMember(ctx context.Context, teamID int64, userID entities.UserID) (bool, error) {
	ok, err := exists(s.db.WithContext(ctx).Model(&teamMemberModel{}).
		Where("team_id = ? AND user_id = ?", teamID, userID))
	if err != nil {
		return false, fmt.Errorf("is member: %w", err)
	}
	return ok, nil
}

type memberRow struct {
	userModel `gorm:"embedded"`
	JoinedAt time.Time
}

// ListMembers returns team members in join order.
func (s *SQLite) ListMembers(ctx context.Context, teamID int64) ([]entities.Member, error) {
	var rows []memberRow
	if err := s.db.WithContext(ctx).
		Table("team_members m").
		Select("users.*, m.created_at AS joined_at").
		Joins("JOIN users ON users.id = m.user_id").
		Where("m.team_id = ?", teamID).
		Order("m.created_at, users.id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]entities.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, entities.Member{User: r.userModel.toEntity(), JoinedAt: r.JoinedAt})
	}
	return members, nil
}
