package domain

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskCompleted TaskStatus = "Completed"
	TaskMissed    TaskStatus = "Missed"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending: true, TaskCompleted: true, TaskMissed: true,
}

type TaskType string

const (
	TypeAssignment TaskType = "Assignment"
	TypeExam       TaskType = "Exam"
	TypeProject    TaskType = "Project"
	TypeStudy      TaskType = "Study"
	TypeQuiz       TaskType = "Quiz"
	TypeLab        TaskType = "Lab"
	TypeReading    TaskType = "Reading"
	TypePractice   TaskType = "Practice"
	TypeOther      TaskType = "Other"
)

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[TaskType]bool{
	TypeAssignment: true, TypeExam: true, TypeProject: true,
	TypeStudy: true, TypeQuiz: true, TypeLab: true,
	TypeReading: true, TypePractice: true, TypeOther: true,
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[Role]bool{
	RoleStudent: true, RoleTeacher: true, RoleAdmin: true,
}

type MessageKind string

const (
	MessagePlain        MessageKind = "message"
	MessageCheckIn      MessageKind = "check-in"
	MessageIntervention MessageKind = "intervention"
)

// ValidMessageKinds is the canonical set of accepted message kinds.
var ValidMessageKinds = map[MessageKind]bool{
	MessagePlain: true, MessageCheckIn: true, MessageIntervention: true,
}
