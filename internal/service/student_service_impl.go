package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/db"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/events"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/scheduler"
)

const (
	recentCompletionsLimit = 20
	stressTrendLimit       = 30
)

type studentService struct {
	users       repository.UserRepo
	subjects    repository.SubjectRepo
	tasks       repository.TaskRepo
	logs        repository.DailyLogRepo
	messages    repository.MessageRepo
	completions repository.CompletionRepo
	uow         db.UnitOfWork
	bus         *events.Bus
	observer    UseCaseObserver
	now         func() time.Time
}

func NewStudentService(
	users repository.UserRepo,
	subjects repository.SubjectRepo,
	tasks repository.TaskRepo,
	logs repository.DailyLogRepo,
	messages repository.MessageRepo,
	completions repository.CompletionRepo,
	uow db.UnitOfWork,
	bus *events.Bus,
	observers ...UseCaseObserver,
) StudentService {
	return &studentService{
		users:       users,
		subjects:    subjects,
		tasks:       tasks,
		logs:        logs,
		messages:    messages,
		completions: completions,
		uow:         uow,
		bus:         bus,
		observer:    useCaseObserverOrNoop(observers),
		now:         systemNow,
	}
}

func (s *studentService) Dashboard(ctx context.Context, studentID string) (*contract.DashboardResponse, error) {
	now := s.now()

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjects.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByStudent(ctx, studentID, repository.TaskListFilter{})
	if err != nil {
		return nil, err
	}
	todayLog, err := s.todayLog(ctx, studentID, now)
	if err != nil {
		return nil, err
	}

	resp := &contract.DashboardResponse{
		Student:  contract.NewUserView(student),
		Subjects: make([]contract.SubjectView, 0, len(subjects)),
		Tasks:    contract.NewTaskViews(tasks),
		TodayLog: contract.NewDailyLogView(todayLog),
	}
	for _, sub := range subjects {
		resp.Subjects = append(resp.Subjects, contract.NewSubjectView(sub))
	}
	if todayLog != nil {
		resp.Plan = contract.NewPlanView(scheduler.BuildPlan(taskValues(tasks), scheduler.PlanLogFrom(todayLog), now))
	}
	return resp, nil
}

// todayLog returns nil without error when nothing was reported today.
func (s *studentService) todayLog(ctx context.Context, studentID string, now time.Time) (*domain.DailyLog, error) {
	l, err := s.logs.GetByStudentAndDate(ctx, studentID, domain.StartOfDay(now))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return l, err
}

// ReportDailyLog stores today's report, replacing an earlier one from the same
// day, and rebuilds the plan from the student's open tasks. The plan's scores
// are written back to the tasks in the same transaction.
func (s *studentService) ReportDailyLog(ctx context.Context, studentID string, req contract.DailyLogRequest) (resp *contract.DailyLogResponse, err error) {
	startedAt := s.now()
	fields := map[string]any{"student_id": studentID}
	defer func() { observe(ctx, s.observer, "report-daily-log", startedAt, fields, err) }()

	if err = validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		log  *domain.DailyLog
		plan scheduler.RecoveryPlan
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs := repository.NewSQLiteDailyLogRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		var err error
		log, err = upsertDailyLog(ctx, txLogs, studentID, req, now)
		if err != nil {
			return err
		}

		tasks, err := txTasks.ListByStudent(ctx, studentID, repository.TaskListFilter{})
		if err != nil {
			return err
		}
		plan = scheduler.BuildPlan(taskValues(tasks), scheduler.PlanLogFrom(log), now)
		return txTasks.UpdatePriorityScores(ctx, plan.PriorityScores(), now)
	})
	if err != nil {
		return nil, err
	}

	fields["stress"] = log.StressLevel
	fields["strategy"] = plan.Strategy
	fields["recommended"] = len(plan.RecommendedTasks)

	s.bus.Emit(ctx, events.DailyLogReported, events.DailyLogReportedEvent{
		StudentID:      studentID,
		StressLevel:    log.StressLevel,
		AvailableHours: log.AvailableHours,
		Strategy:       plan.Strategy,
		Recommended:    len(plan.RecommendedTasks),
		OccurredAt:     now,
	})

	return &contract.DailyLogResponse{
		Log:  contract.NewDailyLogView(log),
		Plan: contract.NewPlanView(plan),
	}, nil
}

func upsertDailyLog(ctx context.Context, logs repository.DailyLogRepo, studentID string, req contract.DailyLogRequest, now time.Time) (*domain.DailyLog, error) {
	day := domain.StartOfDay(now)

	existing, err := logs.GetByStudentAndDate(ctx, studentID, day)
	switch {
	case err == nil:
		existing.StressLevel = req.StressLevel
		existing.AvailableHours = *req.AvailableHours
		existing.Notes = req.Notes
		existing.UpdatedAt = now
		return existing, logs.Update(ctx, existing)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	l := &domain.DailyLog{
		ID:             uuid.New().String(),
		StudentID:      studentID,
		Date:           day,
		StressLevel:    req.StressLevel,
		AvailableHours: *req.AvailableHours,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return l, logs.Create(ctx, l)
}

func (s *studentService) Plan(ctx context.Context, studentID string, override *scheduler.PlanLog) (*scheduler.RecoveryPlan, error) {
	now := s.now()

	var input scheduler.PlanLog
	if override != nil {
		input = *override
	} else {
		l, err := s.todayLog(ctx, studentID, now)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, ErrNoDailyLog
		}
		input = scheduler.PlanLogFrom(l)
	}

	tasks, err := s.tasks.ListByStudent(ctx, studentID, repository.TaskListFilter{})
	if err != nil {
		return nil, err
	}
	plan := scheduler.BuildPlan(taskValues(tasks), input, now)
	return &plan, nil
}

func (s *studentService) AddTask(ctx context.Context, studentID string, req contract.CreateTaskRequest) (*domain.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	now := s.now()

	due, err := contract.ParseDueDate(req.DueDate, now.Location())
	if err != nil {
		return nil, invalidField("dueDate", err.Error())
	}
	if err := s.checkSubject(ctx, studentID, req.SubjectID); err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		SubjectID:    req.SubjectID,
		Title:        req.Title,
		Description:  req.Description,
		Type:         domain.TypeAssignment,
		Weight:       req.Weight,
		DueDate:      due,
		Status:       domain.TaskPending,
		EstimatedMin: req.EstimatedMin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Type != "" {
		t.Type = domain.TaskType(req.Type)
	}
	if t.EstimatedMin == 0 {
		t.EstimatedMin = scheduler.EstimateTaskMinutes(*t, nil)
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// checkSubject reports an unknown or foreign subject as a validation error.
func (s *studentService) checkSubject(ctx context.Context, studentID, subjectID string) error {
	sub, err := s.subjects.GetByID(ctx, subjectID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && sub.StudentID != studentID) {
		return invalidField("subjectId", "unknown subject")
	}
	return err
}

func (s *studentService) ownedTask(ctx context.Context, tasks repository.TaskRepo, studentID, taskID string) (*domain.Task, error) {
	t, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.StudentID != studentID {
		return nil, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
	}
	return t, nil
}

func (s *studentService) ownedSubject(ctx context.Context, studentID, subjectID string) (*domain.Subject, error) {
	sub, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if sub.StudentID != studentID {
		return nil, fmt.Errorf("subject %s: %w", subjectID, repository.ErrNotFound)
	}
	return sub, nil
}

func (s *studentService) UpdateTask(ctx context.Context, studentID, taskID string, req contract.UpdateTaskRequest) (*domain.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	now := s.now()

	t, err := s.ownedTask(ctx, s.tasks, studentID, taskID)
	if err != nil {
		return nil, err
	}

	patch := domain.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Weight:       req.Weight,
		EstimatedMin: req.EstimatedMin,
	}
	if req.DueDate != nil {
		due, err := contract.ParseDueDate(*req.DueDate, now.Location())
		if err != nil {
			return nil, invalidField("dueDate", err.Error())
		}
		patch.DueDate = &due
	}
	if req.Type != nil {
		tt := domain.TaskType(*req.Type)
		patch.Type = &tt
	}
	if req.SubjectID != nil && *req.SubjectID != t.SubjectID {
		if err := s.checkSubject(ctx, studentID, *req.SubjectID); err != nil {
			return nil, err
		}
		patch.SubjectID = req.SubjectID
	}

	t.Apply(patch, now)
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteTask marks the task completed and records a completion snapshot in
// one transaction. Completing a completed task changes nothing.
func (s *studentService) CompleteTask(ctx context.Context, studentID, taskID string) (task *domain.Task, err error) {
	startedAt := s.now()
	fields := map[string]any{"student_id": studentID, "task_id": taskID}
	defer func() { observe(ctx, s.observer, "complete-task", startedAt, fields, err) }()

	now := s.now()
	changed := false
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSubjects := repository.NewSQLiteSubjectRepo(tx)
		txCompletions := repository.NewSQLiteCompletionRepo(tx)

		var err error
		task, err = s.ownedTask(ctx, txTasks, studentID, taskID)
		if err != nil {
			return err
		}
		if task.Status == domain.TaskCompleted {
			return nil
		}
		if err := task.MarkCompleted(now); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}

		subjectName := "Unknown"
		if sub, err := txSubjects.GetByID(ctx, task.SubjectID); err == nil {
			subjectName = sub.Name
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		changed = true
		return txCompletions.Create(ctx, &domain.Completion{
			ID:          uuid.New().String(),
			StudentID:   studentID,
			TaskID:      task.ID,
			CompletedAt: now,
			Title:       task.Title,
			SubjectName: subjectName,
			Weight:      task.Weight,
			Type:        task.Type,
		})
	})
	if err != nil {
		return nil, err
	}

	fields["changed"] = changed
	if changed {
		s.bus.Emit(ctx, events.TaskCompleted, events.TaskCompletedEvent{
			StudentID:  studentID,
			TaskID:     task.ID,
			OccurredAt: now,
		})
	}
	return task, nil
}

func (s *studentService) DeleteTask(ctx context.Context, studentID, taskID string) error {
	if _, err := s.ownedTask(ctx, s.tasks, studentID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

func (s *studentService) AddSubject(ctx context.Context, studentID string, req contract.SubjectRequest) (*domain.Subject, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	now := s.now()
	sub := &domain.Subject{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		Name:         req.Name,
		CurrentGrade: req.CurrentGrade,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.subjects.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *studentService) UpdateSubject(ctx context.Context, studentID, subjectID string, req contract.UpdateSubjectRequest) (*domain.Subject, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	sub, err := s.ownedSubject(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}
	sub.Apply(domain.SubjectPatch{Name: req.Name, CurrentGrade: req.CurrentGrade}, s.now())
	if err := s.subjects.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubject removes the subject together with its tasks.
func (s *studentService) DeleteSubject(ctx context.Context, studentID, subjectID string) error {
	if _, err := s.ownedSubject(ctx, studentID, subjectID); err != nil {
		return err
	}
	return s.subjects.Delete(ctx, subjectID)
}

func (s *studentService) Progress(ctx context.Context, studentID string) (*contract.ProgressResponse, error) {
	now := s.now()

	total, err := s.completions.Count(ctx, studentID)
	if err != nil {
		return nil, err
	}
	last7, err := s.completions.CountSince(ctx, studentID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	last30, err := s.completions.CountSince(ctx, studentID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	recent, err := s.completions.ListByStudent(ctx, studentID, recentCompletionsLimit)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListRecentByStudent(ctx, studentID, stressTrendLimit)
	if err != nil {
		return nil, err
	}

	resp := &contract.ProgressResponse{
		TotalCompleted: total,
		Last7Days:      last7,
		Last30Days:     last30,
		CompletedTasks: make([]contract.CompletionView, 0, len(recent)),
		StressTrend:    make([]contract.StressPoint, 0, len(logs)),
	}
	for _, c := range recent {
		resp.CompletedTasks = append(resp.CompletedTasks, contract.NewCompletionView(c))
	}
	for i := len(logs) - 1; i >= 0; i-- {
		resp.StressTrend = append(resp.StressTrend, contract.StressPoint{
			Date:           logs[i].Date.Format("2006-01-02"),
			StressLevel:    logs[i].StressLevel,
			AvailableHours: logs[i].AvailableHours,
		})
	}
	return resp, nil
}

// Workload sums today's due work. A warning is attached once the student has
// reported how many hours they have today.
func (s *studentService) Workload(ctx context.Context, studentID string) (*contract.WorkloadResponse, error) {
	now := s.now()

	tasks, err := s.tasks.ListByStudent(ctx, studentID, repository.TaskListFilter{})
	if err != nil {
		return nil, err
	}
	w := scheduler.DailyWorkload(taskValues(tasks), now)

	resp := &contract.WorkloadResponse{
		TaskCount:    w.TaskCount,
		TotalMinutes: w.TotalMinutes,
		TotalHours:   w.TotalHours,
		Realistic:    w.Realistic,
	}

	l, err := s.todayLog(ctx, studentID, now)
	if err != nil {
		return nil, err
	}
	if l != nil {
		warn := scheduler.WorkloadWarning(w.TotalHours, l.AvailableHours)
		resp.Warning = &contract.WarningView{Level: string(warn.Level), Message: warn.Message}
	}
	return resp, nil
}

func (s *studentService) Perspective(ctx context.Context, studentID string, req contract.PerspectiveRequest) (*contract.PerspectiveResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByStudent(ctx, studentID, repository.TaskListFilter{})
	if err != nil {
		return nil, err
	}

	p := scheduler.AnalyzePerspective(req.StressLevel, taskValues(tasks), *req.AvailableHours, s.now())
	return &contract.PerspectiveResponse{
		Priority:      string(p.Priority),
		Situation:     p.Situation,
		Reality:       p.Reality,
		Suggestions:   p.Suggestions,
		Encouragement: p.Encouragement,
	}, nil
}

func (s *studentService) Breakdown(_ context.Context, req contract.BreakdownRequest) (*contract.BreakdownResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	detail := req.Detail
	if detail == 0 {
		detail = scheduler.DetailNormal
	}

	b := scheduler.BreakdownTask(req.Title, detail)
	resp := &contract.BreakdownResponse{
		Kind:      string(b.Kind),
		Subtasks:  make([]contract.SubtaskView, 0, len(b.Subtasks)),
		TotalMin:  b.TotalMin,
		TaskCount: len(b.Subtasks),
	}
	for _, st := range b.Subtasks {
		resp.Subtasks = append(resp.Subtasks, contract.SubtaskView{
			ID:          st.ID,
			Title:       st.Title,
			EstimateMin: st.EstimateMin,
			Completed:   st.Completed,
		})
	}
	return resp, nil
}

func (s *studentService) Messages(ctx context.Context, studentID string) ([]*domain.Message, error) {
	return s.messages.ListForRecipient(ctx, studentID)
}

func taskValues(tasks []*domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = *t
	}
	return out
}
