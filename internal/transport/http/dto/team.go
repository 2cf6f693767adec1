package dto

import "time"

// Team is the transport form of a team.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Label     *string   `json:"label"`
	LeaderID  int64     `json:"leader_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is a user with the time they joined the team.
type Member struct {
	User
	JoinedAt time.Time `json:"joined_at"`
}

// CreateTeamRequest is the body of POST /teams.
type CreateTeamRequest struct {
	Name  string  `json:"name"`
	Label *string `json:"label"`
}

// UpdateTeamRequest is the body of PATCH /teams/{id}.
type UpdateTeamRequest struct {
	Name  *string        `json:"name"`
	Label NullableString `json:"label"`
}

// AddMemberRequest is the body of POST /teams/{id}/members.
type AddMemberRequest struct {
	Email string `json:"email"`
}

// TeamResponse wraps a single team.
type TeamResponse struct {
	Team Team `json:"team"`
}

// TeamDetailsResponse is returned by GET /teams/{id}.
type TeamDetailsResponse struct {
	Team     Team      `json:"team"`
	Leader   User      `json:"leader"`
	Members  []Member  `json:"members"`
	Projects []Project `json:"projects"`
}
