package dto

import (
	"time"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/optional"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/user"
	"projectTracker/internal/service"
)

// UnknownUser подставляется вместо имени, если автор уже удалён
const UnknownUser = "Неизвестный пользователь"

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
	CreatedBy   int64  `json:"created_by"`
}

// UpdateProjectRequest: отсутствующее поле не меняется, "deadline": null очищает дедлайн
type UpdateProjectRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Deadline    optional.Field[string] `json:"deadline"`
	Status      *string                `json:"status"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
	ProjectID   int64  `json:"project_id"`
	AssignedTo  *int64 `json:"assigned_to"`
	CreatedBy   int64  `json:"created_by"`
}

// UpdateTaskRequest: "assigned_to": null снимает исполнителя, "deadline": null очищает дедлайн
type UpdateTaskRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *string                `json:"status"`
	Priority    *string                `json:"priority"`
	Deadline    optional.Field[string] `json:"deadline"`
	AssignedTo  optional.Field[int64]  `json:"assigned_to"`
}

func (r CreateUserRequest) ToInput() service.CreateUserInput {
	return service.CreateUserInput{Name: r.Name, Email: r.Email}
}

func (r UpdateUserRequest) ToInput() service.UpdateUserInput {
	return service.UpdateUserInput{Name: r.Name, Email: r.Email}
}

func (r CreateProjectRequest) ToInput() service.CreateProjectInput {
	return service.CreateProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
		Status:      r.Status,
		CreatedBy:   r.CreatedBy,
	}
}

func (r UpdateProjectRequest) ToInput() service.UpdateProjectInput {
	return service.UpdateProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
		Status:      r.Status,
	}
}

func (r CreateTaskRequest) ToInput() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		ProjectID:   r.ProjectID,
		AssignedTo:  r.AssignedTo,
		CreatedBy:   r.CreatedBy,
	}
}

func (r UpdateTaskRequest) ToInput() service.UpdateTaskInput {
	return service.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		AssignedTo:  r.AssignedTo,
	}
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type UserSummaryResponse struct {
	UserResponse
	TotalProjects      int `json:"total_projects"`
	TotalTasksAssigned int `json:"total_tasks_assigned"`
	TotalTasksCreated  int `json:"total_tasks_created"`
}

type ProjectBriefResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	Deadline  *string `json:"deadline"`
	CreatedAt string  `json:"created_at"`
}

type AssignedTaskResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	Deadline     *string `json:"deadline"`
	ProjectID    int64   `json:"project_id"`
	ProjectTitle string  `json:"project_title"`
}

type UserDetailsResponse struct {
	UserSummaryResponse
	Projects      []ProjectBriefResponse `json:"projects"`
	TasksAssigned []AssignedTaskResponse `json:"tasks_assigned"`
}

type ProjectResponse struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Deadline           *string `json:"deadline"`
	Status             string  `json:"status"`
	CreatedBy          int64   `json:"created_by"`
	CreatedByName      string  `json:"created_by_name"`
	CreatedByEmail     *string `json:"created_by_email"`
	CreatedAt          string  `json:"created_at"`
	TotalTasks         int     `json:"total_tasks"`
	CompletedTasks     int     `json:"completed_tasks"`
	PendingTasks       int     `json:"pending_tasks"`
	InProgressTasks    int     `json:"in_progress_tasks"`
	ProgressPercentage float64 `json:"progress_percentage"`
	IsOverdue          bool    `json:"is_overdue"`
	DaysUntilDeadline  *int    `json:"days_until_deadline"`
}

type TaskResponse struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	Priority          string  `json:"priority"`
	Deadline          *string `json:"deadline"`
	ProjectID         int64   `json:"project_id"`
	ProjectTitle      *string `json:"project_title"`
	ProjectStatus     *string `json:"project_status"`
	AssignedTo        *int64  `json:"assigned_to"`
	AssignedToName    *string `json:"assigned_to_name"`
	AssignedToEmail   *string `json:"assigned_to_email"`
	CreatedBy         int64   `json:"created_by"`
	CreatedByName     string  `json:"created_by_name"`
	CreatedByEmail    *string `json:"created_by_email"`
	CreatedAt         string  `json:"created_at"`
	CompletedAt       *string `json:"completed_at"`
	IsOverdue         bool    `json:"is_overdue"`
	DaysUntilDeadline *int    `json:"days_until_deadline"`
	DaysSinceCreated  int     `json:"days_since_created"`
	DaysToComplete    *int    `json:"days_to_complete"`
}

func formatDate(d *date.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func formatTimestamp(t time.Time) string {
	return t.Format(date.TimestampLayout)
}

// creator возвращает имя и email автора, для удалённого - заглушку
func creator(u *user.User) (string, *string) {
	if u == nil {
		return UnknownUser, nil
	}
	email := u.Email
	return u.Name, &email
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
}

func FromUserSummary(s service.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{
		UserResponse:       FromUser(s.User),
		TotalProjects:      s.Usage.Projects,
		TotalTasksAssigned: s.Usage.TasksAssigned,
		TotalTasksCreated:  s.Usage.TasksCreated,
	}
}

func FromUserSummaryList(list []service.UserSummary) []UserSummaryResponse {
	result := make([]UserSummaryResponse, len(list))
	for i, s := range list {
		result[i] = FromUserSummary(s)
	}
	return result
}

func fromProjectBrief(p *project.Project) ProjectBriefResponse {
	return ProjectBriefResponse{
		ID:        p.ID,
		Title:     p.Title,
		Status:    string(p.Status),
		Deadline:  formatDate(p.Deadline),
		CreatedAt: formatTimestamp(p.CreatedAt),
	}
}

func FromUserDetails(d *service.UserDetails) UserDetailsResponse {
	res := UserDetailsResponse{
		UserSummaryResponse: FromUserSummary(service.UserSummary{User: d.User, Usage: d.Usage}),
		Projects:            make([]ProjectBriefResponse, len(d.Projects)),
		TasksAssigned:       make([]AssignedTaskResponse, len(d.AssignedTasks)),
	}
	for i, p := range d.Projects {
		res.Projects[i] = fromProjectBrief(p)
	}
	for i, at := range d.AssignedTasks {
		res.TasksAssigned[i] = AssignedTaskResponse{
			ID:           at.Task.ID,
			Title:        at.Task.Title,
			Status:       string(at.Task.Status),
			Priority:     string(at.Task.Priority),
			Deadline:     formatDate(at.Task.Deadline),
			ProjectID:    at.Task.ProjectID,
			ProjectTitle: at.ProjectTitle,
		}
	}
	return res
}

func FromProject(d *service.ProjectDetails) ProjectResponse {
	p := d.Project
	name, email := creator(d.Creator)
	return ProjectResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Deadline:           formatDate(p.Deadline),
		Status:             string(p.Status),
		CreatedBy:          p.CreatedBy,
		CreatedByName:      name,
		CreatedByEmail:     email,
		CreatedAt:          formatTimestamp(p.CreatedAt),
		TotalTasks:         d.TotalTasks,
		CompletedTasks:     d.CompletedTasks,
		PendingTasks:       d.PendingTasks,
		InProgressTasks:    d.InProgressTasks,
		ProgressPercentage: d.ProgressPercentage,
		IsOverdue:          d.IsOverdue,
		DaysUntilDeadline:  d.DaysUntilDeadline,
	}
}

func FromProjectList(list []service.ProjectDetails) []ProjectResponse {
	result := make([]ProjectResponse, len(list))
	for i := range list {
		result[i] = FromProject(&list[i])
	}
	return result
}

func FromTask(d *service.TaskDetails) TaskResponse {
	t := d.Task
	name, email := creator(d.Creator)
	res := TaskResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Status:            string(t.Status),
		Priority:          string(t.Priority),
		Deadline:          formatDate(t.Deadline),
		ProjectID:         t.ProjectID,
		AssignedTo:        t.AssignedTo,
		CreatedBy:         t.CreatedBy,
		CreatedByName:     name,
		CreatedByEmail:    email,
		CreatedAt:         formatTimestamp(t.CreatedAt),
		CompletedAt:       date.FormatTimestamp(t.CompletedAt),
		IsOverdue:         d.IsOverdue,
		DaysUntilDeadline: d.DaysUntilDeadline,
		DaysSinceCreated:  d.DaysSinceCreated,
		DaysToComplete:    d.DaysToComplete,
	}
	if d.Project != nil {
		title, status := d.Project.Title, string(d.Project.Status)
		res.ProjectTitle = &title
		res.ProjectStatus = &status
	}
	if d.Assignee != nil {
		assigneeName, assigneeEmail := d.Assignee.Name, d.Assignee.Email
		res.AssignedToName = &assigneeName
		res.AssignedToEmail = &assigneeEmail
	}
	return res
}

func FromTaskList(list []service.TaskDetails) []TaskResponse {
	result := make([]TaskResponse, len(list))
	for i := range list {
		result[i] = FromTask(&list[i])
	}
	return result
}
