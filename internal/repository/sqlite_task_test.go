package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskFixture struct {
	tasks    *SQLiteTaskRepo
	subjects *SQLiteSubjectRepo
	student  *domain.User
	subject  *domain.Subject
}

func setupTasks(t *testing.T) taskFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	student := testutil.NewTestUser("Ann")
	require.NoError(t, NewSQLiteUserRepo(db).Create(ctx, student))

	subjects := NewSQLiteSubjectRepo(db)
	subject := testutil.NewTestSubject(student.ID, "Physics")
	require.NoError(t, subjects.Create(ctx, subject))

	return taskFixture{
		tasks:    NewSQLiteTaskRepo(db),
		subjects: subjects,
		student:  student,
		subject:  subject,
	}
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	f := setupTasks(t)
	ctx := context.Background()

	due := time.Date(2025, 3, 20, 23, 59, 0, 0, time.FixedZone("CET", 3600))
	task := testutil.NewTestTask(f.student.ID, f.subject.ID, "Lab report",
		testutil.WithDueDate(due), testutil.WithWeight(25), testutil.WithTaskType(domain.TypeLab))
	require.NoError(t, f.tasks.Create(ctx, task))

	got, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lab report", got.Title)
	assert.Equal(t, domain.TypeLab, got.Type)
	assert.Equal(t, 25.0, got.Weight)
	assert.True(t, due.Equal(got.DueDate))
	assert.Equal(t, domain.TaskPending, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestTaskRepo_ListByStudent_FiltersCompleted(t *testing.T) {
	f := setupTasks(t)
	ctx := context.Background()

	later := testutil.NewTestTask(f.student.ID, f.subject.ID, "Later", testutil.WithDueDate(testutil.FixtureNow.AddDate(0, 0, 5)))
	sooner := testutil.NewTestTask(f.student.ID, f.subject.ID, "Sooner", testutil.WithDueDate(testutil.FixtureNow.AddDate(0, 0, 1)))
	done := testutil.NewTestTask(f.student.ID, f.subject.ID, "Done", testutil.WithTaskStatus(domain.TaskCompleted))
	for _, task := range []*domain.Task{later, sooner, done} {
		require.NoError(t, f.tasks.Create(ctx, task))
	}

	open, err := f.tasks.ListByStudent(ctx, f.student.ID, TaskListFilter{})
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "Sooner", open[0].Title)
	assert.Equal(t, "Later", open[1].Title)

	all, err := f.tasks.ListByStudent(ctx, f.student.ID, TaskListFilter{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaskRepo_UpdateCompletes(t *testing.T) {
	f := setupTasks(t)
	ctx := context.Background()

	task := testutil.NewTestTask(f.student.ID, f.subject.ID, "Essay")
	require.NoError(t, f.tasks.Create(ctx, task))

	require.NoError(t, task.MarkCompleted(testutil.FixtureNow))
	require.NoError(t, f.tasks.Update(ctx, task))

	got, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, testutil.FixtureNow.Equal(*got.CompletedAt))
}

func TestTaskRepo_UpdatePriorityScores(t *testing.T) {
	f := setupTasks(t)
	ctx := context.Background()

	a := testutil.NewTestTask(f.student.ID, f.subject.ID, "A")
	b := testutil.NewTestTask(f.student.ID, f.subject.ID, "B")
	require.NoError(t, f.tasks.Create(ctx, a))
	require.NoError(t, f.tasks.Create(ctx, b))

	require.NoError(t, f.tasks.UpdatePriorityScores(ctx, map[string]int{a.ID: 39, b.ID: 72, "ghost": 1}, testutil.FixtureNow))

	gotA, err := f.tasks.GetByID(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := f.tasks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 39, gotA.PriorityScore)
	assert.Equal(t, 72, gotB.PriorityScore)
}

func TestTaskRepo_MarkOverdueMissed(t *testing.T) {
	f := setupTasks(t)
	ctx := context.Background()
	cutoff := domain.StartOfDay(testutil.FixtureNow)

	yesterday := testutil.NewTestTask(f.student.ID, f.subject.ID, "Yesterday", testutil.WithDueDate(cutoff.Add(-time.Minute)))
	earlierToday := testutil.NewTestTask(f.student.ID, f.subject.ID, "Earlier today", testutil.WithDueDate(cutoff.Add(time.Hour)))
	doneLate := testutil.NewTestTask(f.student.ID, f.subject.ID, "Done late",
		testutil.WithDueDate(cutoff.AddDate(0, 0, -3)), testutil.WithTaskStatus(domain.TaskCompleted))
	for _, task := range []*domain.Task{yesterday, earlierToday, doneLate} {
		require.NoError(t, f.tasks.Create(ctx, task))
	}

	n, err := f.tasks.MarkOverdueMissed(ctx, cutoff, testutil.FixtureNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := f.tasks.GetByID(ctx, yesterday.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskMissed, got.Status)

	got, err = f.tasks.GetByID(ctx, earlierToday.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, got.Status)

	got, err = f.tasks.GetByID(ctx, doneLate.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, got.Status)

	n, err = f.tasks.MarkOverdueMissed(ctx, cutoff, testutil.FixtureNow)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "sweep is idempotent")
}

func TestSubjectRepo_DeleteCascadesTasks(t *testing.T) {
	f := setupTasks(t)
	ctx := context.Background()

	task := testutil.NewTestTask(f.student.ID, f.subject.ID, "Orphan")
	require.NoError(t, f.tasks.Create(ctx, task))

	require.NoError(t, f.subjects.Delete(ctx, f.subject.ID))

	_, err := f.tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.subjects.GetByID(ctx, f.subject.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubjectRepo_UpdateAndList(t *testing.T) {
	f := setupTasks(t)
	ctx := context.Background()

	require.NoError(t, f.subjects.Create(ctx, testutil.NewTestSubject(f.student.ID, "Algebra", testutil.WithGrade(81))))

	f.subject.Name = "Quantum Physics"
	f.subject.CurrentGrade = 72
	require.NoError(t, f.subjects.Update(ctx, f.subject))

	list, err := f.subjects.ListByStudent(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Algebra", list[0].Name)
	assert.Equal(t, 81.0, list[0].CurrentGrade)
	assert.Equal(t, "Quantum Physics", list[1].Name)
	assert.Equal(t, 72.0, list[1].CurrentGrade)
}
