package domain

import "time"

type Subject struct {
	ID           string
	StudentID    string
	Name         string
	CurrentGrade float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
