package scheduler

import (
	"testing"

	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEstimateTaskMinutes_TypeDefaults(t *testing.T) {
	assert.Equal(t, 90, EstimateTaskMinutes(domain.Task{Type: domain.TypeAssignment}, nil))
	assert.Equal(t, 30, EstimateTaskMinutes(domain.Task{Type: domain.TypeQuiz}, nil))
	assert.Equal(t, 180, EstimateTaskMinutes(domain.Task{Type: domain.TypeProject}, nil))
	assert.Equal(t, 60, EstimateTaskMinutes(domain.Task{Type: "Seminar"}, nil))
}

func TestEstimateTaskMinutes_WeightScales(t *testing.T) {
	// 90 * 1.25 = 112.5 -> 113
	assert.Equal(t, 113, EstimateTaskMinutes(domain.Task{Type: domain.TypeAssignment, Weight: 25}, nil))
}

func TestEstimateTaskMinutes_HistoryNeedsThreeSamples(t *testing.T) {
	task := domain.Task{Type: domain.TypeQuiz, Weight: 10}
	history := []TimeSample{
		{Type: domain.TypeQuiz, Minutes: 20},
		{Type: domain.TypeQuiz, Minutes: 25},
		{Type: domain.TypeExam, Minutes: 200},
	}

	assert.Equal(t, 33, EstimateTaskMinutes(task, history))

	history = append(history, TimeSample{Type: domain.TypeQuiz, Minutes: 26})
	assert.Equal(t, 24, EstimateTaskMinutes(task, history)) // 71/3 = 23.67
}
