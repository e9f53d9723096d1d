package contract

import (
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
)

const dateLayout = "2006-01-02"

type UserView struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	AssignedTeacherID string    `json:"assignedTeacherId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              string(u.Role),
		AssignedTeacherID: u.AssignedTeacherID,
		CreatedAt:         u.CreatedAt,
	}
}

type SubjectView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CurrentGrade float64 `json:"currentGrade"`
}

func NewSubjectView(s *domain.Subject) SubjectView {
	return SubjectView{ID: s.ID, Name: s.Name, CurrentGrade: s.CurrentGrade}
}

type TaskView struct {
	ID            string     `json:"id"`
	SubjectID     string     `json:"subjectId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Type          string     `json:"type"`
	Weight        float64    `json:"weightage"`
	DueDate       time.Time  `json:"dueDate"`
	Status        string     `json:"status"`
	EstimatedMin  int        `json:"estimatedTime"`
	PriorityScore int        `json:"priorityScore"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewTaskView(t *domain.Task) TaskView {
	return TaskView{
		ID:            t.ID,
		SubjectID:     t.SubjectID,
		Title:         t.Title,
		Description:   t.Description,
		Type:          string(t.Type),
		Weight:        t.Weight,
		DueDate:       t.DueDate,
		Status:        string(t.Status),
		EstimatedMin:  t.EffectiveEstimatedMin(),
		PriorityScore: t.PriorityScore,
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func NewTaskViews(tasks []*domain.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskView(t))
	}
	return out
}

type DailyLogView struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	StressLevel    int     `json:"stressLevel"`
	AvailableHours float64 `json:"availableTime"`
	Notes          string  `json:"notes,omitempty"`
}

func NewDailyLogView(l *domain.DailyLog) *DailyLogView {
	if l == nil {
		return nil
	}
	return &DailyLogView{
		ID:             l.ID,
		Date:           l.Date.Format(dateLayout),
		StressLevel:    l.StressLevel,
		AvailableHours: l.AvailableHours,
		Notes:          l.Notes,
	}
}

type MessageView struct {
	ID        string    `json:"id"`
	FromID    string    `json:"fromId"`
	ToID      string    `json:"toId"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Kind      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMessageView(m *domain.Message) MessageView {
	return MessageView{
		ID:        m.ID,
		FromID:    m.FromID,
		ToID:      m.ToID,
		Subject:   m.Subject,
		Body:      m.Body,
		Kind:      string(m.Kind),
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

func NewMessageViews(msgs []*domain.Message) []MessageView {
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageView(m))
	}
	return out
}

type CompletionView struct {
	TaskID      string    `json:"taskId"`
	CompletedAt time.Time `json:"completedAt"`
	Title       string    `json:"title"`
	SubjectName string    `json:"subject"`
	Weight      float64   `json:"weightage"`
	Type        string    `json:"type"`
}

func NewCompletionView(c *domain.Completion) CompletionView {
	return CompletionView{
		TaskID:      c.TaskID,
		CompletedAt: c.CompletedAt,
		Title:       c.Title,
		SubjectName: c.SubjectName,
		Weight:      c.Weight,
		Type:        string(c.Type),
	}
}
