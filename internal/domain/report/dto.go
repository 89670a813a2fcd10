package report

// LeaveSummaryRow aggregates requests per leave type. When no status
// filter is applied the totals bundle every status, cancelled and
// rejected included, for compatibility with the existing reports.
type LeaveSummaryRow struct {
	LeaveTypeName string  `json:"leave_type_name"`
	TotalDays     float64 `json:"total_days"`
	RequestCount  int64   `json:"request_count"`
}
