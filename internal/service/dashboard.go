package service

//go:generate mockgen -source=dashboard.go -destination=mocks/dashboard_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
)

type DashboardService interface {
	Stats(ctx context.Context, session models.Session) (*models.DashboardStats, error)
}

type dashboardService struct {
	repo   ReportRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewDashboardService(repo ReportRepository, logger *logrus.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Stats считает показатели по сообщениям, видимым роли сессии
func (s *dashboardService) Stats(ctx context.Context, session models.Session) (*models.DashboardStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "Stats",
		"role":    session.Role,
	})

	all, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}
	blocked, err := s.repo.CountBlocked(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count blocked numbers")
		return nil, fmt.Errorf("service: could not count blocked numbers: %w", err)
	}

	stats := ComputeStats(VisibleReports(all, session.Role))
	stats.BlockedNumbers = blocked
	stats.GeneratedAt = s.now()
	return stats, nil
}

// ComputeStats агрегирует сообщения: по ведомствам, по статусам, по месяцам
// (в хронологическом порядке) и в точки тепловой карты с округлением до 3 знаков
func ComputeStats(reports []*models.Report) *models.DashboardStats {
	stats := &models.DashboardStats{
		TotalReports: len(reports),
		ByAgency:     make(map[models.Role]int, len(models.AgencyRoles)),
		ByStatus:     make(map[models.ReportStatus]int, len(models.ReportStatuses)),
		Monthly:      []models.MonthlyCount{},
		Heatmap:      []models.HeatPoint{},
	}
	for _, a := range models.AgencyRoles {
		stats.ByAgency[a] = 0
	}
	for _, st := range models.ReportStatuses {
		stats.ByStatus[st] = 0
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	type cell struct{ lat, lng float64 }
	monthly := make(map[monthKey]int)
	heat := make(map[cell]int)

	for _, r := range reports {
		for _, f := range r.Flags {
			stats.ByAgency[f]++
		}
		stats.ByStatus[r.Status]++

		if r.Timestamp != nil {
			ts := r.Timestamp.UTC()
			monthly[monthKey{ts.Year(), ts.Month()}]++
		}
		if r.HasLocation() {
			heat[cell{round3(*r.Latitude), round3(*r.Longitude)}]++
		}
	}

	for k, count := range monthly {
		stats.Monthly = append(stats.Monthly, models.MonthlyCount{
			Label: fmt.Sprintf("%s %d", k.month.String()[:3], k.year),
			Year:  k.year,
			Month: int(k.month),
			Count: count,
		})
	}
	sort.Slice(stats.Monthly, func(i, j int) bool {
		a, b := stats.Monthly[i], stats.Monthly[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	for c, weight := range heat {
		stats.Heatmap = append(stats.Heatmap, models.HeatPoint{
			Latitude:  c.lat,
			Longitude: c.lng,
			Weight:    weight,
		})
	}
	sort.Slice(stats.Heatmap, func(i, j int) bool {
		a, b := stats.Heatmap[i], stats.Heatmap[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if a.Latitude != b.Latitude {
			return a.Latitude < b.Latitude
		}
		return a.Longitude < b.Longitude
	})

	return stats
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
