package entities

import "time"

// Project belongs to a team; its access rules derive from team membership.
type Project struct {
	ID        int64
	TeamID    int64
	Name      string
	Label     *string
	Deadline  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectDetails is a project with its tasks.
type ProjectDetails struct {
	Project Project
	Team    Team
	Tasks   []Task
}

// NewProject carries project creation input.
type NewProject struct {
	TeamID   int64
	Name     string
	Label    *string
	Deadline time.Time
}

// ProjectPatch lists the project fields a member may change.
type ProjectPatch struct {
	Name     *string
	Label    *string
	SetLabel bool
	Deadline *time.Time
}
