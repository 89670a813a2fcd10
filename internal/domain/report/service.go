package report

import (
	"context"

	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
)

// ReportService - read-only reporting over leave data
type ReportService interface {
	LeaveSummary(ctx context.Context, statusFilter *leave.Status) ([]LeaveSummaryRow, error)
}
