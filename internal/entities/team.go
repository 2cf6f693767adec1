// Package entities contains core business entities.
package entities

import "time"

// Team is owned by a single leader who is always one of its members.
type Team struct {
	ID        int64
	Name      string
	Label     *string
	LeaderID  UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is a user seen through a team membership.
type Member struct {
	User     User
	JoinedAt time.Time
}

// TeamDetails is the full view of a team returned to its members.
type TeamDetails struct {
	Team     Team
	Leader   User
	Members  []Member
	Projects []Project
}

// TeamPatch lists the team fields a leader may change.
type TeamPatch struct {
	Name     *string
	Label    *string
	SetLabel bool
}

// Empty reports whether the patch changes nothing.
func (p TeamPatch) Empty() bool {
	return p.Name == nil && !p.SetLabel
}
