package models

import "github.com/shopspring/decimal"

// RevenueSummary is the row returned by the get_revenue_summary database function
type RevenueSummary struct {
	TotalInvoiced      decimal.Decimal `gorm:"column:total_invoiced" json:"total_invoiced"`
	TotalPaid          decimal.Decimal `gorm:"column:total_paid" json:"total_paid"`
	OutstandingBalance decimal.Decimal `gorm:"column:outstanding_balance" json:"outstanding_balance"`
	JobCount           int64           `gorm:"column:job_count" json:"job_count"`
	CompletedJobCount  int64           `gorm:"column:completed_job_count" json:"completed_job_count"`
}
