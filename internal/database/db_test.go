package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soycar/hotel-portal/migrations"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("detects unique violation", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("detects wrapped unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert hotel: %w", &pq.Error{Code: "23505"})
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("ignores other postgres errors", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	})

	t.Run("ignores non postgres errors", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(errors.New("connection refused")))
		assert.False(t, IsUniqueViolation(nil))
	})
}

func TestMigrateRejectsUnknownAction(t *testing.T) {
	err := Migrate("postgres://localhost:1/none?sslmode=disable", "sideways")
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.Contains(t, names, "000001_create_hotels.up.sql")
	assert.Contains(t, names, "000002_create_bookings.up.sql")
	assert.Contains(t, names, "000003_create_hotel_sessions.up.sql")
	assert.Len(t, names, 6)
}
