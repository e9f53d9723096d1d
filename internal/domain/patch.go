package domain

import "time"

// TaskPatch carries the optional fields of a task update. Nil leaves the
// current value in place.
type TaskPatch struct {
	Title        *string
	Description  *string
	SubjectID    *string
	Type         *TaskType
	Weight       *float64
	DueDate      *time.Time
	Status       *TaskStatus
	EstimatedMin *int
}

// Apply copies every set field of p onto t.
func (t *Task) Apply(p TaskPatch, now time.Time) {
	t.Title = valueOr(p.Title, t.Title)
	t.Description = valueOr(p.Description, t.Description)
	t.SubjectID = valueOr(p.SubjectID, t.SubjectID)
	t.Type = valueOr(p.Type, t.Type)
	t.Weight = valueOr(p.Weight, t.Weight)
	t.DueDate = valueOr(p.DueDate, t.DueDate)
	t.Status = valueOr(p.Status, t.Status)
	t.EstimatedMin = valueOr(p.EstimatedMin, t.EstimatedMin)
	t.UpdatedAt = now
}

type SubjectPatch struct {
	Name         *string
	CurrentGrade *float64
}

func (s *Subject) Apply(p SubjectPatch, now time.Time) {
	s.Name = valueOr(p.Name, s.Name)
	s.CurrentGrade = valueOr(p.CurrentGrade, s.CurrentGrade)
	s.UpdatedAt = now
}

// UserPatch is used by both profile edits and admin edits; the caller decides
// which fields a given actor may set.
type UserPatch struct {
	Name              *string
	Email             *string
	Role              *Role
	AssignedTeacherID *string
}

func (u *User) Apply(p UserPatch, now time.Time) {
	u.Name = valueOr(p.Name, u.Name)
	if p.Email != nil {
		u.Email = NormalizeEmail(*p.Email)
	}
	u.Role = valueOr(p.Role, u.Role)
	u.AssignedTeacherID = valueOr(p.AssignedTeacherID, u.AssignedTeacherID)
	u.UpdatedAt = now
}

func valueOr[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}
