package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal_backend/internal/models"
	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/testhelpers"
)

func TestTokenCleanupWorker_RunOnce(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewEmployeeRepository()

	expired := time.Now().UTC().Add(-time.Hour)
	code := "123456"
	e := &models.Employee{
		EmployeeCode:               "EMP001",
		FirstName:                  "Asha",
		LastName:                   "Rao",
		PersonalEmail:              "asha@gmail.com",
		WorkEmail:                  "asha@corp.com",
		DateOfJoining:              time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Designation:                "Engineer",
		EmploymentType:             models.EmploymentTypeFullTime,
		PasswordHash:               "$2a$10$notarealhash",
		VerificationToken:          &code,
		VerificationTokenExpiresAt: &expired,
	}
	require.NoError(t, repo.Create(db, e))

	w := NewTokenCleanupWorker(db, repo, 0)
	assert.Equal(t, time.Hour, w.interval)

	assert.Equal(t, int64(1), w.RunOnce(context.Background()))
	assert.Equal(t, int64(0), w.RunOnce(context.Background()))
}

func TestTokenCleanupWorker_StopsWithContext(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	w := NewTokenCleanupWorker(db, repositories.NewEmployeeRepository(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.loop(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
