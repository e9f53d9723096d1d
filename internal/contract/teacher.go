package contract

type RosterEntry struct {
	UserView
	RiskLevel string `json:"riskLevel"`
	// LatestStress is nil when the student has never logged.
	LatestStress *int `json:"latestStress"`
	MissedTasks  int  `json:"missedTasks"`
	OverdueTasks int  `json:"overdueTasks"`
}

type SendMessageRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Subject   string `json:"subject" validate:"max=200"`
	Body      string `json:"message" validate:"required,notblank"`
	Kind      string `json:"type" validate:"omitempty,oneof=message check-in intervention"`
}
