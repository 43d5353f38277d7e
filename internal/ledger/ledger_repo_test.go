package ledger_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/ledger"
	ledgererrors "go-hrms/internal/ledger/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

const adjustUsedSQL = `(?s)UPDATE leave_balances\s+SET used_leaves = used_leaves \+ \$1, updated_at = now\(\)\s+` +
	`WHERE employee_id = \$2 AND leave_type = \$3 AND used_leaves \+ \$4 >= 0\s+RETURNING`

var balanceColumns = []string{"id", "employee_id", "leave_type", "total_allocated", "used_leaves", "created_at", "updated_at"}

func TestRepository_AdjustUsed(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("single guarded increment returns the new row", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		delta := decimal.NewFromFloat(2.5)
		rowID := uuid.New()

		mock.ExpectQuery(adjustUsedSQL).
			WithArgs(delta, employeeID, ledger.LeaveTypeCasual, delta).
			WillReturnRows(sqlmock.NewRows(balanceColumns).
				AddRow(rowID.String(), employeeID.String(), ledger.LeaveTypeCasual, "12", "4.5", now, now))

		b, err := ledger.NewRepository(gdb).AdjustUsed(ctx, employeeID, ledger.LeaveTypeCasual, delta)

		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, rowID, b.ID)
		assert.Equal(t, "4.5", b.UsedLeaves.String())
		assert.Equal(t, "7.5", b.Remaining().String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative result is refused without a write", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		delta := decimal.NewFromInt(-3)

		mock.ExpectQuery(adjustUsedSQL).
			WithArgs(delta, employeeID, ledger.LeaveTypeSick, delta).
			WillReturnRows(sqlmock.NewRows(balanceColumns))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "leave_balances" WHERE employee_id = \$1 AND leave_type = \$2`).
			WithArgs(employeeID, ledger.LeaveTypeSick).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		b, err := ledger.NewRepository(gdb).AdjustUsed(ctx, employeeID, ledger.LeaveTypeSick, delta)

		assert.Nil(t, b)
		assert.ErrorIs(t, err, ledgererrors.ErrUsedBelowZero)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row reports nil", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		delta := decimal.NewFromInt(1)

		mock.ExpectQuery(adjustUsedSQL).
			WithArgs(delta, employeeID, ledger.LeaveTypeEarned, delta).
			WillReturnRows(sqlmock.NewRows(balanceColumns))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "leave_balances"`).
			WithArgs(employeeID, ledger.LeaveTypeEarned).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		b, err := ledger.NewRepository(gdb).AdjustUsed(ctx, employeeID, ledger.LeaveTypeEarned, delta)

		assert.NoError(t, err)
		assert.Nil(t, b)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Insert(t *testing.T) {
	ctx := context.Background()
	insertSQL := `(?s)INSERT INTO "leave_balances" .*ON CONFLICT \("employee_id","leave_type"\)\s+DO NOTHING`

	newBalance := func() *ledger.LeaveBalance {
		return &ledger.LeaveBalance{
			EmployeeID:     uuid.New(),
			LeaveType:      ledger.LeaveTypeCasual,
			TotalAllocated: ledger.DefaultAllocations[ledger.LeaveTypeCasual],
			UsedLeaves:     decimal.Zero,
		}
	}

	t.Run("new row is written", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(insertSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

		inserted, err := ledger.NewRepository(gdb).Insert(ctx, newBalance())

		assert.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing pair is skipped", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(insertSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		inserted, err := ledger.NewRepository(gdb).Insert(ctx, newBalance())

		assert.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
