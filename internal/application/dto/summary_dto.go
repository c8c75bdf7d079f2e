package dto

import "github.com/shopspring/decimal"

// HRSummaryResponse respuesta de GET /api/candidates/summary.
type HRSummaryResponse struct {
	Total           int                  `json:"total"`
	ByStatus        map[string]int       `json:"byStatus"`
	AverageProgress decimal.Decimal      `json:"averageProgress"`
	RecentActivity  []StepRecordResponse `json:"recentActivity"`
}
