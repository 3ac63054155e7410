package project

import (
	"time"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/optional"
)

type Project struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Deadline    *date.Date `json:"deadline" db:"deadline"`
	Status      Status     `json:"status" db:"status"`
	CreatedBy   int64      `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Status проекта - отдельный словарь, не совпадающий со статусами задач.
// Значения вне списка сохраняются как есть.
type Status string

const StatusPending Status = "pending"
const StatusInProgress Status = "in_progress"
const StatusCompleted Status = "completed"
const StatusCancelled Status = "cancelled"

// Terminal - в такой проект нельзя добавлять задачи
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Patch struct {
	Title       *string
	Description *string
	Deadline    optional.Field[date.Date]
	Status      *Status
}

func (p Patch) Apply(pr *Project) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	p.Deadline.ApplyTo(&pr.Deadline)
	if p.Status != nil {
		pr.Status = *p.Status
	}
}

func (p *Project) Clone() *Project {
	c := *p
	if p.Deadline != nil {
		d := *p.Deadline
		c.Deadline = &d
	}
	return &c
}
