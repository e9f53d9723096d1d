package scheduler

import (
	"fmt"
	"math"
	"strings"
)

type BreakdownKind string

const (
	KindResearchPaper BreakdownKind = "research paper"
	KindExamPrep      BreakdownKind = "exam prep"
	KindStudy         BreakdownKind = "study"
	KindProject       BreakdownKind = "project"
	KindAssignment    BreakdownKind = "assignment"
	KindPresentation  BreakdownKind = "presentation"
	KindLabReport     BreakdownKind = "lab report"
)

// Detail levels for BreakdownTask.
const (
	DetailCoarse   = 1
	DetailNormal   = 2
	DetailGranular = 3
)

type templateStep struct {
	title   string
	minutes int
}

var breakdownTemplates = map[BreakdownKind][]templateStep{
	KindResearchPaper: {
		{"Choose and narrow down topic", 30},
		{"Research and gather sources", 90},
		{"Create detailed outline", 45},
		{"Write introduction", 30},
		{"Write body paragraphs", 120},
		{"Write conclusion", 30},
		{"Edit and proofread", 60},
		{"Format citations and bibliography", 30},
	},
	KindExamPrep: {
		{"Review lecture notes and materials", 60},
		{"Create summary notes or flashcards", 45},
		{"Practice problems or past papers", 90},
		{"Review difficult concepts", 45},
		{"Take practice test", 60},
		{"Review mistakes and gaps", 30},
	},
	KindStudy: {
		{"Review class notes", 30},
		{"Read assigned chapters", 60},
		{"Create summary notes", 30},
		{"Practice exercises", 45},
	},
	KindProject: {
		{"Understand requirements", 20},
		{"Plan and outline approach", 30},
		{"Research and gather materials", 60},
		{"Create first draft/prototype", 120},
		{"Review and refine", 60},
		{"Final polish and testing", 45},
	},
	KindAssignment: {
		{"Read and understand instructions", 15},
		{"Gather necessary materials", 20},
		{"Complete main work", 90},
		{"Review and check answers", 30},
	},
	KindPresentation: {
		{"Research topic thoroughly", 60},
		{"Create outline and structure", 30},
		{"Design slides", 60},
		{"Write speaker notes", 30},
		{"Practice delivery", 45},
		{"Final review and adjustments", 20},
	},
	KindLabReport: {
		{"Review experiment data", 20},
		{"Write introduction and hypothesis", 30},
		{"Document methods and procedures", 30},
		{"Analyze results and create graphs", 60},
		{"Write discussion and conclusion", 45},
		{"Proofread and format", 30},
	},
}

// kindKeywords is checked in order; the first kind with a matching keyword wins.
var kindKeywords = []struct {
	kind     BreakdownKind
	keywords []string
}{
	{KindResearchPaper, []string{"paper", "essay"}},
	{KindExamPrep, []string{"exam", "test", "quiz"}},
	{KindStudy, []string{"study", "review"}},
	{KindProject, []string{"project"}},
	{KindPresentation, []string{"presentation", "present"}},
	{KindLabReport, []string{"lab", "experiment"}},
	{KindAssignment, []string{"assignment", "homework"}},
}

// splitThresholdMin and splitChunkMin drive granular detail: steps longer than
// the threshold are cut into chunks of roughly this many minutes.
const (
	splitThresholdMin = 60
	splitChunkMin     = 45
)

type Subtask struct {
	ID          string
	Title       string
	EstimateMin float64
	Completed   bool
}

type Breakdown struct {
	Kind     BreakdownKind
	Subtasks []Subtask
	TotalMin float64
}

// DetectBreakdownKind guesses the kind of work from a task title.
func DetectBreakdownKind(title string) BreakdownKind {
	lower := strings.ToLower(title)
	for _, k := range kindKeywords {
		for _, kw := range k.keywords {
			if strings.Contains(lower, kw) {
				return k.kind
			}
		}
	}
	return KindAssignment
}

// BreakdownTask splits a task into template steps at the requested detail.
func BreakdownTask(title string, detail int) Breakdown {
	kind := DetectBreakdownKind(title)
	steps := adjustDetail(breakdownTemplates[kind], detail)

	b := Breakdown{Kind: kind, Subtasks: make([]Subtask, len(steps))}
	for i, s := range steps {
		b.Subtasks[i] = Subtask{
			ID:          fmt.Sprintf("subtask-%d", i),
			Title:       s.title,
			EstimateMin: s.minutes,
		}
		b.TotalMin += s.minutes
	}
	return b
}

type detailedStep struct {
	title   string
	minutes float64
}

func adjustDetail(template []templateStep, detail int) []detailedStep {
	var out []detailedStep
	switch detail {
	case DetailCoarse:
		for i, s := range template {
			if i%2 == 0 {
				out = append(out, detailedStep{s.title, float64(s.minutes) * 1.5})
			}
		}
	case DetailGranular:
		for _, s := range template {
			if s.minutes <= splitThresholdMin {
				out = append(out, detailedStep{s.title, float64(s.minutes)})
				continue
			}
			parts := int(math.Ceil(float64(s.minutes) / splitChunkMin))
			each := math.Ceil(float64(s.minutes) / float64(parts))
			for p := 1; p <= parts; p++ {
				out = append(out, detailedStep{fmt.Sprintf("%s - Part %d", s.title, p), each})
			}
		}
	default:
		for _, s := range template {
			out = append(out, detailedStep{s.title, float64(s.minutes)})
		}
	}
	return out
}
