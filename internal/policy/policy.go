// Package policy decides whether a caller may perform an action on a team,
// project or task. Decisions are pure: every fact a rule needs is resolved by
// the caller of Decide and passed in the target.
package policy

import (
	"fmt"

	"github.com/k13lucien/Kollab/internal/entities"
)

// Action is an intended operation on a target.
type Action string

const (
	ActionView         Action = "view"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionAddMember    Action = "add_member"
	ActionRemoveMember Action = "remove_member"
	ActionComplete     Action = "complete"
	ActionSuspend      Action = "suspend"
)

// Target is one of TeamTarget, ProjectTarget or TaskTarget.
type Target interface {
	kind() string
}

// TeamTarget holds the facts team rules depend on.
type TeamTarget struct {
	LeaderID entities.UserID
	IsMember bool
}

// ProjectTarget holds the facts project rules depend on.
type ProjectTarget struct {
	// IsTeamMember reports whether the caller belongs to the project's team.
	IsTeamMember bool
}

// TaskTarget holds the facts task rules depend on.
type TaskTarget struct {
	AssigneeID entities.UserID
	// TeamLeaderID is set only when the task belongs to a project.
	TeamLeaderID *entities.UserID
}

func (TeamTarget) kind() string    { return "team" }
func (ProjectTarget) kind() string { return "project" }
func (TaskTarget) kind() string    { return "task" }

// Decide returns nil when caller may perform action on target and an error
// wrapping entities.ErrForbidden otherwise.
func Decide(caller entities.UserID, action Action, target Target) error {
	var allowed bool
	switch t := target.(type) {
	case TeamTarget:
		allowed = decideTeam(caller, action, t)
	case ProjectTarget:
		allowed = decideProject(action, t)
	case TaskTarget:
		allowed = decideTask(caller, action, t)
	default:
		return fmt.Errorf("%w: unknown target", entities.ErrForbidden)
	}
	if !allowed {
		return fmt.Errorf("%w: %s %s", entities.ErrForbidden, action, target.kind())
	}
	return nil
}

func decideTeam(caller entities.UserID, action Action, t TeamTarget) bool {
	isLeader := caller == t.LeaderID
	switch action {
	case ActionView:
		return isLeader || t.IsMember
	case ActionUpdate, ActionDelete, ActionAddMember, ActionRemoveMember:
		return isLeader
	}
	return false
}

func decideProject(action Action, t ProjectTarget) bool {
	switch action {
	case ActionView, ActionCreate, ActionUpdate, ActionDelete:
		return t.IsTeamMember
	}
	return false
}

// decideTask keeps reads broader than writes: the project team leader may
// look at a task but only its assignee may change it.
func decideTask(caller entities.UserID, action Action, t TaskTarget) bool {
	isAssignee := caller == t.AssigneeID
	switch action {
	case ActionView:
		return isAssignee || (t.TeamLeaderID != nil && *t.TeamLeaderID == caller)
	case ActionCreate:
		return true
	case ActionUpdate, ActionComplete, ActionSuspend, ActionDelete:
		return isAssignee
	}
	return false
}
