package reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

var errConnBroken = errors.New("connection broken")

// brokenDriver минимальный драйвер, у которого падает любой запрос
type brokenDriver struct{}

func (brokenDriver) Open(string) (driver.Conn, error) { return brokenConn{}, nil }

type brokenConn struct{}

func (brokenConn) Prepare(string) (driver.Stmt, error) { return nil, errConnBroken }
func (brokenConn) Close() error                        { return nil }
func (brokenConn) Begin() (driver.Tx, error)           { return nil, errConnBroken }

func init() {
	sql.Register("reservation-broken", brokenDriver{})
}

func TestCreate_FailedInsertLeavesDraftUntouched(t *testing.T) {
	db, err := sql.Open("reservation-broken", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)

	draft := &domain.Reservation{
		Date:      time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		Name:      "Ana García",
		Email:     "ana@example.com",
		Phone:     "+34600111222",
	}

	created, err := repo.Create(context.Background(), draft)
	require.ErrorIs(t, err, ErrExecQuery)
	assert.Nil(t, created)

	// Черновик остаётся нетронутым и пригодным для повторной попытки
	assert.Empty(t, draft.ID)
	assert.Empty(t, string(draft.Status))
	assert.True(t, draft.CreatedAt.IsZero())
}
