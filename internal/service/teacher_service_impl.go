package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/events"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/scheduler"
)

// riskHistoryLogs is how many recent daily logs feed a risk assessment.
const riskHistoryLogs = 7

type teacherService struct {
	users    repository.UserRepo
	tasks    repository.TaskRepo
	logs     repository.DailyLogRepo
	messages repository.MessageRepo
	bus      *events.Bus
	observer UseCaseObserver
	now      func() time.Time
}

func NewTeacherService(
	users repository.UserRepo,
	tasks repository.TaskRepo,
	logs repository.DailyLogRepo,
	messages repository.MessageRepo,
	bus *events.Bus,
	observers ...UseCaseObserver,
) TeacherService {
	return &teacherService{
		users:    users,
		tasks:    tasks,
		logs:     logs,
		messages: messages,
		bus:      bus,
		observer: useCaseObserverOrNoop(observers),
		now:      systemNow,
	}
}

func (s *teacherService) Roster(ctx context.Context) ([]contract.RosterEntry, error) {
	now := s.now()

	students, err := s.users.List(ctx, domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	roster := make([]contract.RosterEntry, 0, len(students))
	for _, st := range students {
		input, err := s.riskInput(ctx, st.ID, now)
		if err != nil {
			return nil, fmt.Errorf("assessing %s: %w", st.ID, err)
		}
		entry := contract.RosterEntry{
			UserView:     contract.NewUserView(st),
			RiskLevel:    string(scheduler.AssessRisk(input)),
			MissedTasks:  input.MissedTasksCount,
			OverdueTasks: input.OverdueTasksCount,
		}
		if len(input.StressHistory) > 0 {
			latest := input.CurrentStress()
			entry.LatestStress = &latest
		}
		roster = append(roster, entry)
	}

	sort.SliceStable(roster, func(i, j int) bool {
		return scheduler.RiskPriority(domain.RiskLevel(roster[i].RiskLevel)) <
			scheduler.RiskPriority(domain.RiskLevel(roster[j].RiskLevel))
	})
	return roster, nil
}

// riskInput gathers the signals AssessRisk needs. A pending task past its due
// time counts as both missed and overdue; BacklogDepthDays is approximated by
// the number of pending tasks not yet due.
func (s *teacherService) riskInput(ctx context.Context, studentID string, now time.Time) (scheduler.RiskInput, error) {
	logs, err := s.logs.ListRecentByStudent(ctx, studentID, riskHistoryLogs)
	if err != nil {
		return scheduler.RiskInput{}, err
	}
	tasks, err := s.tasks.ListByStudent(ctx, studentID, repository.TaskListFilter{IncludeCompleted: true})
	if err != nil {
		return scheduler.RiskInput{}, err
	}

	var in scheduler.RiskInput
	for _, l := range logs {
		in.StressHistory = append(in.StressHistory, l.StressLevel)
	}
	for _, t := range tasks {
		overdue := t.IsOverdue(now)
		if t.Status == domain.TaskMissed || overdue {
			in.MissedTasksCount++
		}
		if overdue {
			in.OverdueTasksCount++
		}
		if t.Status == domain.TaskPending && !overdue {
			in.BacklogDepthDays++
		}
	}
	return in, nil
}

func (s *teacherService) SendMessage(ctx context.Context, fromID string, req contract.SendMessageRequest) (msg *domain.Message, err error) {
	startedAt := s.now()
	fields := map[string]any{"from_id": fromID, "to_id": req.StudentID}
	defer func() { observe(ctx, s.observer, "send-message", startedAt, fields, err) }()

	if err = validateRequest(req); err != nil {
		return nil, err
	}

	to, err := s.users.GetByID(ctx, req.StudentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalidField("studentId", "unknown student")
	}
	if err != nil {
		return nil, err
	}
	if !to.IsStudent() {
		return nil, invalidField("studentId", "recipient is not a student")
	}

	msg = &domain.Message{
		ID:        uuid.New().String(),
		FromID:    fromID,
		ToID:      to.ID,
		Subject:   req.Subject,
		Body:      req.Body,
		Kind:      domain.MessagePlain,
		CreatedAt: s.now(),
	}
	if msg.Subject == "" {
		msg.Subject = domain.DefaultMessageSubject
	}
	if req.Kind != "" {
		msg.Kind = domain.MessageKind(req.Kind)
	}
	if err = s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	fields["kind"] = string(msg.Kind)

	s.bus.Emit(ctx, events.MessageSent, events.MessageSentEvent{
		FromID:     msg.FromID,
		ToID:       msg.ToID,
		Kind:       string(msg.Kind),
		OccurredAt: msg.CreatedAt,
	})
	return msg, nil
}

func (s *teacherService) Conversation(ctx context.Context, teacherID, studentID string) ([]*domain.Message, error) {
	return s.messages.ListConversation(ctx, teacherID, studentID)
}
