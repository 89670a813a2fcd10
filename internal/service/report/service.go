package report

import (
	"context"

	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/kitokoh/hr-backoffice/internal/domain/report"
)

type reportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &reportServiceImpl{reportRepo: reportRepo}
}

// LeaveSummary implements report.ReportService.
func (s *reportServiceImpl) LeaveSummary(ctx context.Context, statusFilter *leave.Status) ([]report.LeaveSummaryRow, error) {
	return s.reportRepo.GetLeaveSummary(ctx, statusFilter)
}
