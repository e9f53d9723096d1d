package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/rebound/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyLogRepo_OnePerDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	student := testutil.NewTestUser("Ann")
	require.NoError(t, NewSQLiteUserRepo(db).Create(ctx, student))
	repo := NewSQLiteDailyLogRepo(db)

	morning := testutil.NewTestDailyLog(student.ID, testutil.FixtureNow, 4, 3)
	require.NoError(t, repo.Create(ctx, morning))

	evening := testutil.NewTestDailyLog(student.ID, testutil.FixtureNow.Add(8*time.Hour), 7, 1)
	err := repo.Create(ctx, evening)
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.GetByStudentAndDate(ctx, student.ID, testutil.FixtureNow.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, morning.ID, got.ID)
	assert.Equal(t, 4, got.StressLevel)
	assert.Equal(t, 3.0, got.AvailableHours)

	got.StressLevel = 8
	got.Notes = "rough afternoon"
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByStudentAndDate(ctx, student.ID, testutil.FixtureNow)
	require.NoError(t, err)
	assert.Equal(t, 8, again.StressLevel)
	assert.Equal(t, "rough afternoon", again.Notes)
}

func TestDailyLogRepo_GetMissingDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDailyLogRepo(db)

	_, err := repo.GetByStudentAndDate(context.Background(), "nobody", testutil.FixtureNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyLogRepo_ListRecentOldestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	student := testutil.NewTestUser("Ann")
	require.NoError(t, NewSQLiteUserRepo(db).Create(ctx, student))
	repo := NewSQLiteDailyLogRepo(db)

	for i := 0; i < 10; i++ {
		day := testutil.FixtureNow.AddDate(0, 0, -i)
		require.NoError(t, repo.Create(ctx, testutil.NewTestDailyLog(student.ID, day, i+1, 2)))
	}

	logs, err := repo.ListRecentByStudent(ctx, student.ID, 7)
	require.NoError(t, err)
	require.Len(t, logs, 7)

	// The newest day had stress 1, going back one day adds one.
	stress := make([]int, len(logs))
	for i, l := range logs {
		stress[i] = l.StressLevel
	}
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1}, stress)
	assert.Equal(t, "2025-03-15", logs[6].Date.Format("2006-01-02"))
}
