// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/transport/http/dto"
)

// ToDTOUser maps entities.User to transport model without credentials.
func ToDTOUser(u entities.User) dto.User {
	return dto.User{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToDTOSession maps a session to transport model.
func ToDTOSession(s entities.Session) dto.SessionResponse {
	return dto.SessionResponse{User: ToDTOUser(s.User), Token: s.Token}
}

// FromDTORegister builds registration input from transport DTO.
func FromDTORegister(src dto.RegisterRequest) entities.Registration {
	return entities.Registration{
		Name:     src.Name,
		Surname:  src.Surname,
		Email:    src.Email,
		Username: src.Username,
		Password: src.Password,
	}
}

// ToDTOTeam maps entities.Team to transport model.
func ToDTOTeam(t entities.Team) dto.Team {
	return dto.Team{
		ID:        t.ID,
		Name:      t.Name,
		Label:     t.Label,
		LeaderID:  t.LeaderID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToDTOTeamList maps a slice of teams.
func ToDTOTeamList(list []entities.Team) []dto.Team {
	res := make([]dto.Team, 0, len(list))
	for _, t := range list {
		res = append(res, ToDTOTeam(t))
	}
	return res
}

// ToDTOTeamDetails maps a team with its leader, members and projects.
func ToDTOTeamDetails(d entities.TeamDetails) dto.TeamDetailsResponse {
	members := make([]dto.Member, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, dto.Member{User: ToDTOUser(m.User), JoinedAt: m.JoinedAt})
	}
	return dto.TeamDetailsResponse{
		Team:     ToDTOTeam(d.Team),
		Leader:   ToDTOUser(d.Leader),
		Members:  members,
		Projects: ToDTOProjectList(d.Projects),
	}
}

// FromDTOTeamPatch builds a TeamPatch from transport DTO.
func FromDTOTeamPatch(src dto.UpdateTeamRequest) entities.TeamPatch {
	return entities.TeamPatch{
		Name:     src.Name,
		Label:    src.Label.Value,
		SetLabel: src.Label.Set,
	}
}

// ToDTOProject maps entities.Project to transport model.
func ToDTOProject(p entities.Project) dto.Project {
	return dto.Project{
		ID:        p.ID,
		TeamID:    p.TeamID,
		Name:      p.Name,
		Label:     p.Label,
		Deadline:  dto.Date{Time: p.Deadline},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToDTOProjectList maps a slice of projects.
func ToDTOProjectList(list []entities.Project) []dto.Project {
	res := make([]dto.Project, 0, len(list))
	for _, p := range list {
		res = append(res, ToDTOProject(p))
	}
	return res
}

// ToDTOProjectDetails maps a project with its team and tasks.
func ToDTOProjectDetails(d entities.ProjectDetails) dto.ProjectDetailsResponse {
	return dto.ProjectDetailsResponse{
		Project: ToDTOProject(d.Project),
		Team:    ToDTOTeam(d.Team),
		Tasks:   ToDTOTaskList(d.Tasks),
	}
}

// FromDTOProject builds project creation input from transport DTO.
func FromDTOProject(src dto.CreateProjectRequest) entities.NewProject {
	p := entities.NewProject{TeamID: src.TeamID, Name: src.Name, Label: src.Label}
	if src.Deadline != nil {
		p.Deadline = src.Deadline.Time
	}
	return p
}

// FromDTOProjectPatch builds a ProjectPatch from transport DTO.
func FromDTOProjectPatch(src dto.UpdateProjectRequest) entities.ProjectPatch {
	p := entities.ProjectPatch{
		Name:     src.Name,
		Label:    src.Label.Value,
		SetLabel: src.Label.Set,
	}
	if src.Deadline != nil {
		d := src.Deadline.Time
		p.Deadline = &d
	}
	return p
}

// ToDTOTask maps entities.Task to transport model.
func ToDTOTask(t entities.Task) dto.Task {
	return dto.Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Label:       t.Label,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Deadline:    dto.Date{Time: t.Deadline},
		AssignedTo:  t.AssignedTo,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToDTOTaskList maps a slice of tasks.
func ToDTOTaskList(list []entities.Task) []dto.Task {
	res := make([]dto.Task, 0, len(list))
	for _, t := range list {
		res = append(res, ToDTOTask(t))
	}
	return res
}

// FromDTOTask builds task creation input from transport DTO.
func FromDTOTask(src dto.CreateTaskRequest) entities.NewTask {
	t := entities.NewTask{
		ProjectID:  src.ProjectID,
		Title:      src.Title,
		Label:      src.Label,
		AssignedTo: src.AssignedTo,
	}
	if src.Status != nil {
		t.Status = entities.TaskStatus(*src.Status)
	}
	if src.Priority != nil {
		t.Priority = entities.TaskPriority(*src.Priority)
	}
	if src.Deadline != nil {
		t.Deadline = src.Deadline.Time
	}
	return t
}

// FromDTOTaskPatch builds a TaskPatch from transport DTO.
func FromDTOTaskPatch(src dto.UpdateTaskRequest) entities.TaskPatch {
	p := entities.TaskPatch{
		Title:      src.Title,
		Label:      src.Label.Value,
		SetLabel:   src.Label.Set,
		AssignedTo: src.AssignedTo,
	}
	if src.Status != nil {
		s := entities.TaskStatus(*src.Status)
		p.Status = &s
	}
	if src.Priority != nil {
		pr := entities.TaskPriority(*src.Priority)
		p.Priority = &pr
	}
	if src.Deadline != nil {
		d := src.Deadline.Time
		p.Deadline = &d
	}
	return p
}
