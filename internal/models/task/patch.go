package task

import (
	"time"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/optional"
)

// Patch - частичное обновление задачи. nil-указатель означает "не менять",
// optional.Field дополнительно позволяет явно обнулить поле.
// project_id, created_by и created_at не меняются после создания.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Deadline    optional.Field[date.Date]
	AssignedTo  optional.Field[int64]
	CompletedAt optional.Field[time.Time]
}

func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	p.Deadline.ApplyTo(&t.Deadline)
	p.AssignedTo.ApplyTo(&t.AssignedTo)
	p.CompletedAt.ApplyTo(&t.CompletedAt)
}
