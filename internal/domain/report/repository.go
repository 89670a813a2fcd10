package report

import (
	"context"

	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
)

// ReportRepository - read-only projections over leave data
type ReportRepository interface {
	GetLeaveSummary(ctx context.Context, statusFilter *leave.Status) ([]LeaveSummaryRow, error)
}
