package contract

import (
	"fmt"
	"time"
)

type DailyLogRequest struct {
	StressLevel    int      `json:"stressLevel" validate:"required,min=1,max=10"`
	AvailableHours *float64 `json:"availableTime" validate:"required,min=0,max=24"`
	Notes          string   `json:"notes" validate:"max=500"`
}

type DailyLogResponse struct {
	Log  *DailyLogView `json:"log"`
	Plan *PlanView     `json:"recoveryPlan"`
}

type DashboardResponse struct {
	Student  UserView      `json:"student"`
	Subjects []SubjectView `json:"subjects"`
	Tasks    []TaskView    `json:"tasks"`
	TodayLog *DailyLogView `json:"todayLog"`
	Plan     *PlanView     `json:"recoveryPlan"`
}

type CreateTaskRequest struct {
	SubjectID    string  `json:"subjectId" validate:"required"`
	Title        string  `json:"title" validate:"required,notblank,max=200"`
	Description  string  `json:"description"`
	DueDate      string  `json:"dueDate" validate:"required"`
	Type         string  `json:"type" validate:"omitempty,task_type"`
	Weight       float64 `json:"weightage" validate:"min=0,max=100"`
	EstimatedMin int     `json:"estimatedTime" validate:"min=0"`
}

type UpdateTaskRequest struct {
	SubjectID    *string  `json:"subjectId" validate:"omitempty,notblank"`
	Title        *string  `json:"title" validate:"omitempty,notblank,max=200"`
	Description  *string  `json:"description"`
	DueDate      *string  `json:"dueDate" validate:"omitempty,notblank"`
	Type         *string  `json:"type" validate:"omitempty,task_type"`
	Weight       *float64 `json:"weightage" validate:"omitempty,min=0,max=100"`
	EstimatedMin *int     `json:"estimatedTime" validate:"omitempty,min=0"`
}

type SubjectRequest struct {
	Name         string  `json:"name" validate:"required,notblank,max=100"`
	CurrentGrade float64 `json:"currentGrade" validate:"min=0,max=100"`
}

type UpdateSubjectRequest struct {
	Name         *string  `json:"name" validate:"omitempty,notblank,max=100"`
	CurrentGrade *float64 `json:"currentGrade" validate:"omitempty,min=0,max=100"`
}

type StressPoint struct {
	Date           string  `json:"date"`
	StressLevel    int     `json:"stressLevel"`
	AvailableHours float64 `json:"availableTime"`
}

type ProgressResponse struct {
	TotalCompleted int              `json:"totalCompleted"`
	Last7Days      int              `json:"last7Days"`
	Last30Days     int              `json:"last30Days"`
	CompletedTasks []CompletionView `json:"completedTasks"`
	// StressTrend lists the newest logs first.
	StressTrend []StressPoint `json:"stressTrend"`
}

type WorkloadResponse struct {
	TaskCount    int          `json:"taskCount"`
	TotalMinutes int          `json:"totalMinutes"`
	TotalHours   float64      `json:"totalHours"`
	Realistic    bool         `json:"isRealistic"`
	Warning      *WarningView `json:"warning,omitempty"`
}

type WarningView struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type PerspectiveRequest struct {
	StressLevel    int      `json:"stressLevel" validate:"required,min=1,max=10"`
	AvailableHours *float64 `json:"availableTime" validate:"required,min=0,max=24"`
}

type PerspectiveResponse struct {
	Priority      string   `json:"priority"`
	Situation     string   `json:"situation"`
	Reality       string   `json:"reality"`
	Suggestions   []string `json:"suggestions"`
	Encouragement string   `json:"encouragement"`
}

type BreakdownRequest struct {
	Title string `json:"title" validate:"required,notblank"`
	// Detail is 1 (coarse) to 3 (granular); zero selects 2.
	Detail int `json:"spiciness" validate:"omitempty,min=1,max=3"`
}

type SubtaskView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	EstimateMin float64 `json:"estimatedTime"`
	Completed   bool    `json:"completed"`
}

type BreakdownResponse struct {
	Kind      string        `json:"type"`
	Subtasks  []SubtaskView `json:"subtasks"`
	TotalMin  float64       `json:"totalTime"`
	TaskCount int           `json:"count"`
}

var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", dateLayout}

// ParseDueDate accepts RFC 3339 timestamps and bare dates. Layouts without a
// zone are read in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
