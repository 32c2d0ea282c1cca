package repositories

import (
	"testing"
	"time"

	"hrportal_backend/internal/models"
	"hrportal_backend/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeavePolicyRepository_FindLatestEmpty(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := NewLeavePolicyRepository()

	_, err := repo.FindLatest(db)
	assert.ErrorIs(t, err, ErrLeavePolicyNotFound)
}

func TestLeavePolicyRepository_FindLatestByCreatedAt(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := NewLeavePolicyRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	older := models.DefaultLeavePolicy(base)
	older.CreatedAt = base
	newer := models.DefaultLeavePolicy(base)
	newer.Casual = 20
	newer.CreatedAt = base.Add(time.Hour)

	// вставляем в обратном порядке, чтобы порядок определялся created_at
	require.NoError(t, repo.Create(db, &newer))
	require.NoError(t, repo.Create(db, &older))

	latest, err := repo.FindLatest(db)
	require.NoError(t, err)
	assert.Equal(t, 20, latest.Casual)

	count, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLeavePolicyRepository_TieBrokenByInsertion(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := NewLeavePolicyRepository()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a := models.DefaultLeavePolicy(ts)
	a.CreatedAt = ts
	b := models.DefaultLeavePolicy(ts)
	b.Sick = 3
	b.CreatedAt = ts

	require.NoError(t, repo.Create(db, &a))
	require.NoError(t, repo.Create(db, &b))

	latest, err := repo.FindLatest(db)
	require.NoError(t, err)
	assert.Equal(t, b.ID, latest.ID)
	assert.Equal(t, 3, latest.Sick)
}
