package models

import "time"

// DashboardStats - сводные показатели для панели мониторинга
type DashboardStats struct {
	TotalReports   int                  `json:"total_reports"`
	ByAgency       map[Role]int         `json:"by_agency"`
	ByStatus       map[ReportStatus]int `json:"by_status"`
	BlockedNumbers int                  `json:"blocked_numbers"`
	Monthly        []MonthlyCount       `json:"monthly"`
	Heatmap        []HeatPoint          `json:"heatmap"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

type MonthlyCount struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Count int    `json:"count"`
}

type HeatPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    int     `json:"weight"`
}
