package health

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMemory(t *testing.T) {
	st := NewService(nil).Check(context.Background())
	assert.True(t, st.OK)
	assert.Equal(t, "memory", st.Storage)
}

func TestCheckDatabase(t *testing.T) {
	database, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectPing()
	svc := &Service{DB: database, Version: func(context.Context) (int64, error) { return 3, nil }}
	st := svc.Check(context.Background())
	assert.True(t, st.OK)
	assert.Equal(t, "up", st.Database)
	assert.Equal(t, int64(3), st.MigrationVersion)

	mock.ExpectPing().WillReturnError(assert.AnError)
	st = svc.Check(context.Background())
	assert.False(t, st.OK)
	assert.Equal(t, "down", st.Database)
	require.NoError(t, mock.ExpectationsWereMet())
}
