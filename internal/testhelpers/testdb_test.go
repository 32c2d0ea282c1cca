package testhelpers

import (
	"testing"
	"time"

	"hrportal_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestDB_SchemaAndIsolation(t *testing.T) {
	t.Run("first", func(t *testing.T) {
		db := NewTestDB(t)
		policy := models.DefaultLeavePolicy(time.Now())
		require.NoError(t, db.Create(&policy).Error)

		var count int64
		require.NoError(t, db.Model(&models.LeavePolicy{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("second", func(t *testing.T) {
		db := NewTestDB(t)

		var count int64
		require.NoError(t, db.Model(&models.LeavePolicy{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.True(t, db.Migrator().HasTable(&models.Employee{}))
	})
}
