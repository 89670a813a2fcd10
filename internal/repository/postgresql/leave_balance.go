package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/kitokoh/hr-backoffice/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Create implements leave.LeaveBalanceRepository. The unique index on
// (employee_id, leave_type_id, year) guards the one-row-per-key invariant.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			employee_id, leave_type_id, year, entitled_days, used_days,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.EntitledDays, balance.UsedDays,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveBalance{}, leave.ErrBalanceExists
		}
		if isForeignKeyViolation(err) {
			return leave.LeaveBalance{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// GetByID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, leave_type_id, year, entitled_days, used_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE id = $1
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) getForKey(ctx context.Context, employeeID string, leaveTypeID int64, year int, forUpdate bool) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, entitled_days, used_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetForKey implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetForKey(ctx context.Context, employeeID string, leaveTypeID int64, year int) (leave.LeaveBalance, error) {
	return r.getForKey(ctx, employeeID, leaveTypeID, year, false)
}

// GetForKeyForUpdate locks the balance row for the duration of the
// surrounding transaction so concurrent transitions serialize per key.
func (r *leaveBalanceRepositoryImpl) GetForKeyForUpdate(ctx context.Context, employeeID string, leaveTypeID int64, year int) (leave.LeaveBalance, error) {
	return r.getForKey(ctx, employeeID, leaveTypeID, year, true)
}

// ListByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year *int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year,
			   lb.entitled_days, lb.used_days, lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1
	`
	args := []interface{}{employeeID}

	if year != nil {
		query += " AND lb.year = $2"
		args = append(args, *year)
	}
	query += " ORDER BY lb.year DESC, lt.name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		var leaveTypeName string

		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.EntitledDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
			&leaveTypeName,
		); err != nil {
			return nil, err
		}

		b.LeaveTypeName = &leaveTypeName
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// Update implements leave.LeaveBalanceRepository. Administrative
// adjustments only; the coordinator goes through the increment and
// decrement primitives.
func (r *leaveBalanceRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveBalanceRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.EntitledDays != nil {
		updates = append(updates, fmt.Sprintf("entitled_days = $%d", argIdx))
		args = append(args, *req.EntitledDays)
		argIdx++
	}
	if req.UsedDays != nil {
		updates = append(updates, fmt.Sprintf("used_days = $%d", argIdx))
		args = append(args, *req.UsedDays)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for leave balance update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	sql := "UPDATE leave_balances SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to update leave balance with id %d: %w", req.ID, err)
	}
	return nil
}

// IncrementUsed implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) IncrementUsed(ctx context.Context, id int64, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1,
			updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// DecrementUsed implements leave.LeaveBalanceRepository, clamping
// used_days at zero rather than letting it go negative.
func (r *leaveBalanceRepositoryImpl) DecrementUsed(ctx context.Context, id int64, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = GREATEST(used_days - $1, 0),
			updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
