package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/metrics"
	"github.com/fittrack-id/fittrack-backend/internal/pdf"
	"github.com/fittrack-id/fittrack-backend/internal/store"
	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// ReportService assembles activity report PDFs. Reports are rendered on
// demand and returned directly; nothing is stored server-side.
type ReportService struct {
	store  *store.ActivityStore
	stats  *StatsService
	pdfGen *pdf.PDFGenerator
	logger *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(store *store.ActivityStore, stats *StatsService, pdfGen *pdf.PDFGenerator, logger *zap.Logger) *ReportService {
	return &ReportService{
		store:  store,
		stats:  stats,
		pdfGen: pdfGen,
		logger: logger,
	}
}

// Generate renders the activity report PDF for one aggregation period and
// returns the bytes together with a suggested filename.
func (s *ReportService) Generate(email, period string, now time.Time) ([]byte, string, error) {
	if email == "" {
		return nil, "", fmt.Errorf("user email is required")
	}

	overview, err := s.stats.Overview(email, period, now)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute overview: %w", err)
	}

	balance, err := s.stats.CalorieBalance(email, now)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute calorie balance: %w", err)
	}

	dashboard, err := s.stats.Dashboard(email, now)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	rec := s.store.Snapshot(email)
	w := metrics.WindowFor(metrics.WindowKind(period), now)

	var meals []model.Event
	for _, e := range rec.Food {
		if w.Contains(e.Timestamp) {
			meals = append(meals, e)
		}
	}

	var days []pdf.DayBalance
	for i, label := range balance.Labels {
		days = append(days, pdf.DayBalance{
			Label:       label,
			CaloriesIn:  balance.CaloriesIn[i],
			CaloriesOut: balance.CaloriesOut[i],
		})
	}

	var categories []pdf.CategoryShare
	for _, d := range metrics.CategoryDistribution(rec.Gym, w) {
		categories = append(categories, pdf.CategoryShare{
			Label: d.Category.DisplayName(),
			Count: d.Count,
		})
	}

	data := &pdf.ReportData{
		UserEmail:      email,
		Period:         periodLabel(period, w),
		Steps:          overview.Steps,
		RunningKm:      overview.RunningKm,
		WaterLiters:    overview.WaterLiters,
		AvgSleepHours:  overview.AvgSleepHours,
		GymMinutes:     overview.GymMinutes,
		GymSessions:    overview.GymSessions,
		CaloriesIn:     overview.CaloriesIn,
		CaloriesOut:    overview.CaloriesOut,
		Deficit:        overview.Deficit,
		StreakDays:     dashboard.StreakDays,
		CalorieBalance: days,
		Categories:     categories,
		Meals:          meals,
	}

	pdfBytes, err := s.pdfGen.Generate(data)
	if err != nil {
		s.logger.Error("failed to generate report",
			zap.Error(err),
			zap.String("user", email),
		)
		return nil, "", fmt.Errorf("failed to generate report: %w", err)
	}

	filename := fmt.Sprintf("activity_report_%s_%s.pdf", period, now.Format("20060102"))

	s.logger.Info("activity report generated",
		zap.String("user", email),
		zap.String("period", period),
		zap.Int("size_bytes", len(pdfBytes)),
	)

	return pdfBytes, filename, nil
}

// periodLabel renders the window as a human readable date range.
func periodLabel(period string, w metrics.Window) string {
	return fmt.Sprintf("%s (%s to %s)", period,
		w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}
