package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// PDFGenerator renders activity reports for download.
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator.
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// CategoryShare is one gym category row in the report.
type CategoryShare struct {
	Label string
	Count int
}

// DayBalance is one day's calorie intake versus estimated burn.
type DayBalance struct {
	Label       string
	CaloriesIn  float64
	CaloriesOut float64
}

// ReportData contains everything needed to render one activity report.
type ReportData struct {
	UserEmail      string
	Period         string
	Steps          float64
	RunningKm      float64
	WaterLiters    float64
	AvgSleepHours  float64
	GymMinutes     float64
	GymSessions    int
	CaloriesIn     float64
	CaloriesOut    int
	Deficit        float64
	StreakDays     int
	CalorieBalance []DayBalance
	Categories     []CategoryShare
	Meals          []model.Event
}

// Generate creates a PDF report from the provided data.
func (g *PDFGenerator) Generate(data *ReportData) ([]byte, error) {
	g.logger.Info("generating PDF report",
		zap.String("user", data.UserEmail),
		zap.String("period", data.Period),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, "Activity Report", data.UserEmail, data.Period)
	g.addActivitySummary(pdf, data)
	g.addCalorieBalance(pdf, data)
	g.addGymBreakdown(pdf, data.Categories)
	g.addMealLog(pdf, data.Meals)
	g.addStreak(pdf, data.StreakDays)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, title, userEmail, period string) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("User: %s", userEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s", period), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addActivitySummary adds the period totals section
func (g *PDFGenerator) addActivitySummary(pdf *gofpdf.Fpdf, data *ReportData) {
	g.addSectionHeader(pdf, "Activity Summary")

	pdf.CellFormat(0, 6, fmt.Sprintf("Steps: %.0f", data.Steps), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Running: %.1f km", data.RunningKm), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Water: %.1f L", data.WaterLiters), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Average sleep: %.1f hours", data.AvgSleepHours), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Gym: %.0f minutes over %d sessions", data.GymMinutes, data.GymSessions), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addCalorieBalance adds the intake versus burn section
func (g *PDFGenerator) addCalorieBalance(pdf *gofpdf.Fpdf, data *ReportData) {
	g.addSectionHeader(pdf, "Calorie Balance")

	pdf.CellFormat(0, 6, fmt.Sprintf("Intake: %.0f kcal", data.CaloriesIn), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Estimated burn: %d kcal", data.CaloriesOut), "", 1, "L", false, 0, "")

	balance := "deficit"
	if data.Deficit < 0 {
		balance = "surplus"
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Balance: %.0f kcal %s", data.Deficit, balance), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(data.CalorieBalance) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Daily breakdown:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)

		for _, day := range data.CalorieBalance {
			pdf.CellFormat(0, 5, fmt.Sprintf("%s: %.0f kcal in, %.0f kcal out",
				day.Label, day.CaloriesIn, day.CaloriesOut), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)
}

// addGymBreakdown adds the gym category distribution section
func (g *PDFGenerator) addGymBreakdown(pdf *gofpdf.Fpdf, categories []CategoryShare) {
	g.addSectionHeader(pdf, "Workout Categories")

	if len(categories) == 0 {
		pdf.CellFormat(0, 8, "No workouts recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, cat := range categories {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d sessions", cat.Label, cat.Count), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addMealLog adds the food entries section
func (g *PDFGenerator) addMealLog(pdf *gofpdf.Fpdf, meals []model.Event) {
	g.addSectionHeader(pdf, "Meal Log")

	if len(meals) == 0 {
		pdf.CellFormat(0, 8, "No meals recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, meal := range meals {
		dateStr := meal.Timestamp.Format("2006-01-02 15:04")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s - %s", dateStr, meal.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  %.0f kcal (carbs %.0fg, protein %.0fg, fat %.0fg)",
			meal.Calories, meal.Carbs, meal.Protein, meal.Fat), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	pdf.Ln(5)
}

// addStreak adds the activity streak section
func (g *PDFGenerator) addStreak(pdf *gofpdf.Fpdf, streakDays int) {
	g.addSectionHeader(pdf, "Activity Streak")

	if streakDays == 0 {
		pdf.CellFormat(0, 8, "No active streak.", "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 8, fmt.Sprintf("%d consecutive active days.", streakDays), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}
