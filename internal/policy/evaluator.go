package policy

import (
	"context"

	"github.com/k13lucien/Kollab/internal/entities"
)

// MembershipReader answers membership questions for the evaluator.
type MembershipReader interface {
	IsMember(ctx context.Context, teamID int64, userID entities.UserID) (bool, error)
}

// Evaluator resolves membership facts and applies Decide. It never writes.
type Evaluator struct {
	members MembershipReader
}

// NewEvaluator constructs an Evaluator backed by a membership registry.
func NewEvaluator(members MembershipReader) *Evaluator {
	return &Evaluator{members: members}
}

// Team checks caller against a team rule.
func (e *Evaluator) Team(ctx context.Context, caller entities.UserID, action Action, team entities.Team) error {
	target := TeamTarget{LeaderID: team.LeaderID}
	if action == ActionView && caller != team.LeaderID {
		member, err := e.members.IsMember(ctx, team.ID, caller)
		if err != nil {
			return err
		}
		target.IsMember = member
	}
	return Decide(caller, action, target)
}

// Project checks caller against a project rule for a project of teamID.
func (e *Evaluator) Project(ctx context.Context, caller entities.UserID, action Action, teamID int64) error {
	member, err := e.members.IsMember(ctx, teamID, caller)
	if err != nil {
		return err
	}
	return Decide(caller, action, ProjectTarget{IsTeamMember: member})
}

// Task checks caller against a task rule.
func (e *Evaluator) Task(caller entities.UserID, action Action, access entities.TaskAccess) error {
	return Decide(caller, action, TaskTarget{
		AssigneeID:   access.Task.AssignedTo,
		TeamLeaderID: access.TeamLeaderID,
	})
}
