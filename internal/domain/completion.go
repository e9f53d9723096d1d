package domain

import "time"

// Completion records a finished task for progress analytics. The snapshot
// fields survive deletion of the task or its subject.
type Completion struct {
	ID          string
	StudentID   string
	TaskID      string
	CompletedAt time.Time
	Title       string
	SubjectName string
	Weight      float64
	Type        TaskType
}
