package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/events"
	"github.com/alexanderramin/rebound/internal/testutil"
)

func TestRoster_RanksByRisk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "Teacher", testutil.WithRole(domain.RoleTeacher))

	calm := env.createUser(t, "Calm")
	struggling := env.createUser(t, "Struggling")
	sub := env.createSubject(t, struggling.ID, "Math")
	for i := 0; i < 6; i++ {
		env.createTask(t, struggling.ID, sub.ID, "Missed", testutil.WithTaskStatus(domain.TaskMissed))
	}
	for i, stress := range []int{4, 5, 9} {
		require.NoError(t, env.logs.Create(ctx, testutil.NewTestDailyLog(struggling.ID, testNow.AddDate(0, 0, i-2), stress, 2)))
	}

	roster, err := env.teacherService(testNow).Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)

	assert.Equal(t, struggling.ID, roster[0].ID)
	assert.Equal(t, string(domain.RiskCritical), roster[0].RiskLevel)
	require.NotNil(t, roster[0].LatestStress)
	assert.Equal(t, 9, *roster[0].LatestStress)
	assert.Equal(t, 6, roster[0].MissedTasks)

	assert.Equal(t, calm.ID, roster[1].ID)
	assert.Equal(t, string(domain.RiskLow), roster[1].RiskLevel)
	assert.Nil(t, roster[1].LatestStress)
}

func TestRoster_PendingPastDueCountsAsMissedAndOverdue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ann := env.createUser(t, "Ann")
	sub := env.createSubject(t, ann.ID, "Math")
	env.createTask(t, ann.ID, sub.ID, "Late", testutil.WithDueDate(testNow.AddDate(0, 0, -1)))
	env.createTask(t, ann.ID, sub.ID, "Upcoming")
	env.createTask(t, ann.ID, sub.ID, "Finished", testutil.WithTaskStatus(domain.TaskCompleted), testutil.WithDueDate(testNow.AddDate(0, 0, -3)))

	svc := env.teacherService(testNow)
	in, err := svc.riskInput(ctx, ann.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, in.MissedTasksCount)
	assert.Equal(t, 1, in.OverdueTasksCount)
	assert.Equal(t, 1, in.BacklogDepthDays)

	roster, err := svc.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, string(domain.RiskMedium), roster[0].RiskLevel)
	assert.Equal(t, 1, roster[0].OverdueTasks)
}

func TestSendMessage_DefaultsAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.createUser(t, "Teacher", testutil.WithRole(domain.RoleTeacher))
	ann := env.createUser(t, "Ann")
	svc := env.teacherService(testNow)

	msg, err := svc.SendMessage(ctx, teacher.ID, contract.SendMessageRequest{StudentID: ann.ID, Body: "How are you holding up?"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMessageSubject, msg.Subject)
	assert.Equal(t, domain.MessagePlain, msg.Kind)

	_, err = svc.SendMessage(ctx, teacher.ID, contract.SendMessageRequest{StudentID: ann.ID, Body: "Let's talk", Kind: "intervention"})
	require.NoError(t, err)

	inbox, err := env.studentService(testNow).Messages(ctx, ann.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)

	convo, err := svc.Conversation(ctx, teacher.ID, ann.ID)
	require.NoError(t, err)
	assert.Len(t, convo, 2)

	published := env.pub.Events()
	require.Len(t, published, 2)
	assert.Equal(t, events.MessageSent, published[1].RoutingKey)
	var ev events.MessageSentEvent
	require.NoError(t, json.Unmarshal(published[1].Payload, &ev))
	assert.Equal(t, "intervention", ev.Kind)
	assert.Equal(t, ann.ID, ev.ToID)
}

func TestSendMessage_RejectsNonStudentRecipient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	teacher := env.createUser(t, "Teacher", testutil.WithRole(domain.RoleTeacher))
	other := env.createUser(t, "Other teacher", testutil.WithRole(domain.RoleTeacher))
	svc := env.teacherService(testNow)

	_, err := svc.SendMessage(ctx, teacher.ID, contract.SendMessageRequest{StudentID: other.ID, Body: "hi"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "studentId")

	_, err = svc.SendMessage(ctx, teacher.ID, contract.SendMessageRequest{StudentID: "missing", Body: "hi"})
	require.ErrorAs(t, err, &ve)

	_, err = svc.SendMessage(ctx, teacher.ID, contract.SendMessageRequest{StudentID: other.ID, Body: "hi", Kind: "memo"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "type")
	assert.Empty(t, env.pub.Events())
}
