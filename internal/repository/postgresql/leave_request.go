package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/kitokoh/hr-backoffice/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.status,
	lr.start_date, lr.end_date, lr.num_days, lr.reason,
	lr.request_date, lr.approved_by_id, lr.processed_date, lr.comments,
	lt.name AS leave_type_name
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	var leaveTypeName string
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.LeaveTypeID, &r.Status,
		&r.StartDate, &r.EndDate, &r.NumDays, &r.Reason,
		&r.RequestDate, &r.ApprovedByID, &r.ProcessedDate, &r.Comments,
		&leaveTypeName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	r.LeaveTypeName = &leaveTypeName
	return r, nil
}

// Create implements leave.LeaveRequestRepository. New requests always
// start out pending with a server-side request_date.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type_id, status, start_date, end_date,
			num_days, reason, request_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, request_date
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID, request.Status,
		request.StartDate, request.EndDate, request.NumDays, request.Reason,
	).Scan(&request.ID, &request.RequestDate)

	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (l *leaveRequestRepositoryImpl) getByID(ctx context.Context, id int64, forUpdate bool) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.id = $1
	`
	if forUpdate {
		query += " FOR UPDATE OF lr"
	}

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return l.getByID(ctx, id, false)
}

// GetByIDForUpdate locks the request row for the duration of the
// surrounding transaction so concurrent transitions on the same request
// observe each other's committed status.
func (l *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return l.getByID(ctx, id, true)
}

func (l *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByEmployee implements leave.LeaveRequestRepository. Most recent
// requests first.
func (l *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]leave.LeaveRequest, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.employee_id = $1
		ORDER BY lr.request_date DESC, lr.id DESC
		LIMIT $2 OFFSET $3
	`
	return l.list(ctx, query, employeeID, limit, skip)
}

// ListByStatus implements leave.LeaveRequestRepository. Oldest first, so
// reviewers work through the queue in submission order.
func (l *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.Status, skip, limit int) ([]leave.LeaveRequest, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.status = $1
		ORDER BY lr.request_date ASC, lr.id ASC
		LIMIT $2 OFFSET $3
	`
	return l.list(ctx, query, status, limit, skip)
}

// List implements leave.LeaveRequestRepository for the filtered listing.
func (l *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
	`
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += fmt.Sprintf(" ORDER BY lr.request_date ASC, lr.id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, filter.Skip)

	return l.list(ctx, query, args...)
}

// UpdateStatus implements leave.LeaveRequestRepository. Every transition
// stamps the processing actor and time; validity of the move is decided
// by the caller before this runs.
func (l *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status leave.Status, approvedBy string, processedAt time.Time, comments *string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			approved_by_id = $2,
			processed_date = $3,
			comments = COALESCE($4, comments)
		WHERE id = $5
	`

	result, err := q.Exec(ctx, query, status, approvedBy, processedAt, comments, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
