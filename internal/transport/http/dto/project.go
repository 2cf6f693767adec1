package dto

import "time"

// Project is the transport form of a project.
type Project struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	Name      string    `json:"name"`
	Label     *string   `json:"label"`
	Deadline  Date      `json:"deadline"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	TeamID   int64   `json:"team_id"`
	Name     string  `json:"name"`
	Label    *string `json:"label"`
	Deadline *Date   `json:"deadline"`
}

// UpdateProjectRequest is the body of PATCH /projects/{id}.
type UpdateProjectRequest struct {
	Name     *string        `json:"name"`
	Label    NullableString `json:"label"`
	Deadline *Date          `json:"deadline"`
}

// ProjectResponse wraps a single project.
type ProjectResponse struct {
	Project Project `json:"project"`
}

// ProjectDetailsResponse is returned by GET /projects/{id}.
type ProjectDetailsResponse struct {
	Project Project `json:"project"`
	Team    Team    `json:"team"`
	Tasks   []Task  `json:"tasks"`
}
