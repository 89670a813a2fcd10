package postgresql

import (
	"context"

	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/kitokoh/hr-backoffice/internal/domain/report"
	"github.com/kitokoh/hr-backoffice/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetLeaveSummary implements report.ReportRepository. Aggregation happens
// in the database; leave types with no matching requests are omitted.
func (r *reportRepositoryImpl) GetLeaveSummary(ctx context.Context, statusFilter *leave.Status) ([]report.LeaveSummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lt.name, COALESCE(SUM(lr.num_days), 0), COUNT(lr.id)
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
	`
	args := make([]interface{}, 0, 1)
	if statusFilter != nil {
		query += " WHERE lr.status = $1"
		args = append(args, *statusFilter)
	}
	query += " GROUP BY lt.name ORDER BY lt.name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make([]report.LeaveSummaryRow, 0)
	for rows.Next() {
		var row report.LeaveSummaryRow
		if err := rows.Scan(&row.LeaveTypeName, &row.TotalDays, &row.RequestCount); err != nil {
			return nil, err
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summary, nil
}
