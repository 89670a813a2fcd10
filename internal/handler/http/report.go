package http

import (
	"net/http"

	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/kitokoh/hr-backoffice/internal/domain/report"
	"github.com/kitokoh/hr-backoffice/internal/handler/http/response"
)

type ReportHandler interface {
	LeaveSummary(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// LeaveSummary implements ReportHandler.
func (h *ReportHandlerImpl) LeaveSummary(w http.ResponseWriter, r *http.Request) {
	var statusFilter *leave.Status
	if statusStr := r.URL.Query().Get("status_filter"); statusStr != "" {
		status, ok := leave.ParseStatus(statusStr)
		if !ok {
			response.BadRequest(w, "status_filter must be one of pending, approved, rejected, cancelled")
			return
		}
		statusFilter = &status
	}

	summary, err := h.reportService.LeaveSummary(r.Context(), statusFilter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
