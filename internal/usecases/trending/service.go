// Package trending agrega as vendas de todas as filiais nas visões
// temporais: hora do dia, dia da semana, tendência diária, semana e mês
package trending

import (
	"errors"
	"sort"
	"time"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/pkg/utils"
)

// ErrNoData indica que não existe dataset carregado
var ErrNoData = errors.New("no dataset loaded")

// Semana começando na segunda, como nas telas de tendência
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

type Trender interface {
	TimeAnalysis() (*domain.TimeAnalysisResponse, error)
}

type Service struct {
	store *dataset.Store
}

func NewService(store *dataset.Store) Trender {
	return &Service{store: store}
}

// TimeAnalysis recalcula todas as visões temporais a partir do snapshot atual
func (s *Service) TimeAnalysis() (*domain.TimeAnalysisResponse, error) {
	records := s.store.Snapshot()
	if len(records) == 0 {
		return nil, ErrNoData
	}
	info := s.store.Info()

	analysis := domain.TimeAnalysis{
		Hourly:       hourlyPattern(records),
		DailyPattern: dayOfWeekPattern(records),
		DailyTrend:   dailyTrend(records),
		Weekly:       weeklyTrend(records),
		Monthly:      monthlyTrend(records),
	}

	resp := &domain.TimeAnalysisResponse{
		Analysis: analysis,
		Charts:   buildCharts(analysis),
	}
	resp.Summary.TotalBranches = len(info.Branches)
	resp.Summary.DateRange = utils.FormatDateRange(info.MinDate, info.MaxDate)
	resp.Summary.TotalRecords = info.TotalRecords

	return resp, nil
}

func hourlyPattern(records []domain.SalesRecord) []domain.HourlyPoint {
	type key struct {
		branch string
		hour   int
	}
	totals := make(map[key]*domain.HourlyPoint)

	for _, r := range records {
		k := key{branch: r.Branch, hour: r.SoldAt.Hour()}
		p, ok := totals[k]
		if !ok {
			p = &domain.HourlyPoint{Branch: r.Branch, Hour: k.hour}
			totals[k] = p
		}
		p.Revenue += r.Total
		p.Qty += r.Qty
		p.Margin += r.Margin
	}

	points := make([]domain.HourlyPoint, 0, len(totals))
	for _, p := range totals {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Branch != points[j].Branch {
			return points[i].Branch < points[j].Branch
		}
		return points[i].Hour < points[j].Hour
	})

	return points
}

func dayOfWeekPattern(records []domain.SalesRecord) []domain.DayOfWeekPoint {
	type key struct {
		branch string
		day    time.Weekday
	}
	type bucket struct {
		revenue float64
		qty     float64
		count   int
	}
	totals := make(map[key]*bucket)
	var branches []string
	seen := make(map[string]bool)

	for _, r := range records {
		if !seen[r.Branch] {
			seen[r.Branch] = true
			branches = append(branches, r.Branch)
		}

		k := key{branch: r.Branch, day: r.SoldAt.Weekday()}
		b, ok := totals[k]
		if !ok {
			b = &bucket{}
			totals[k] = b
		}
		b.revenue += r.Total
		b.qty += r.Qty
		b.count++
	}

	sort.Strings(branches)

	var points []domain.DayOfWeekPoint
	for _, branch := range branches {
		for _, day := range weekdayOrder {
			b, ok := totals[key{branch: branch, day: day}]
			if !ok {
				continue
			}
			points = append(points, domain.DayOfWeekPoint{
				Branch:     branch,
				Day:        day.String(),
				Revenue:    b.revenue,
				AvgRevenue: utils.SafeDivide(b.revenue, float64(b.count)),
				Qty:        b.qty,
			})
		}
	}

	return points
}

func dailyTrend(records []domain.SalesRecord) []domain.DailyPoint {
	type key struct {
		branch string
		date   time.Time
	}
	totals := make(map[key]*domain.DailyPoint)

	for _, r := range records {
		date := r.SoldAt.Truncate(24 * time.Hour)
		k := key{branch: r.Branch, date: date}
		p, ok := totals[k]
		if !ok {
			p = &domain.DailyPoint{Branch: r.Branch, Date: date}
			totals[k] = p
		}
		p.Revenue += r.Total
		p.Qty += r.Qty
		p.Margin += r.Margin
	}

	points := make([]domain.DailyPoint, 0, len(totals))
	for _, p := range totals {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Branch != points[j].Branch {
			return points[i].Branch < points[j].Branch
		}
		return points[i].Date.Before(points[j].Date)
	})

	return points
}

func weeklyTrend(records []domain.SalesRecord) []domain.WeeklyPoint {
	type key struct {
		branch string
		week   int
	}
	totals := make(map[key]*domain.WeeklyPoint)

	for _, r := range records {
		k := key{branch: r.Branch, week: utils.ISOWeek(r.SoldAt)}
		p, ok := totals[k]
		if !ok {
			p = &domain.WeeklyPoint{Branch: r.Branch, Week: k.week}
			totals[k] = p
		}
		p.Revenue += r.Total
		p.Qty += r.Qty
	}

	points := make([]domain.WeeklyPoint, 0, len(totals))
	for _, p := range totals {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Branch != points[j].Branch {
			return points[i].Branch < points[j].Branch
		}
		return points[i].Week < points[j].Week
	})

	return points
}

func monthlyTrend(records []domain.SalesRecord) []domain.MonthlyPoint {
	type key struct {
		branch string
		month  int
	}
	totals := make(map[key]*domain.MonthlyPoint)

	for _, r := range records {
		k := key{branch: r.Branch, month: int(r.SoldAt.Month())}
		p, ok := totals[k]
		if !ok {
			p = &domain.MonthlyPoint{Branch: r.Branch, Month: k.month}
			totals[k] = p
		}
		p.Revenue += r.Total
		p.Qty += r.Qty
		p.Margin += r.Margin
	}

	points := make([]domain.MonthlyPoint, 0, len(totals))
	for _, p := range totals {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Branch != points[j].Branch {
			return points[i].Branch < points[j].Branch
		}
		return points[i].Month < points[j].Month
	})

	return points
}

// buildCharts transforma as visões temporais em uma série por filial, no
// formato esperado pelo colaborador de gráficos
func buildCharts(analysis domain.TimeAnalysis) []domain.ChartSeries {
	var charts []domain.ChartSeries

	daily := domain.ChartSeries{
		ID:    "daily_pattern",
		Title: "Revenue by Day of Week",
		Kind:  domain.ChartBar,
	}
	for _, p := range analysis.DailyPattern {
		daily.Labels = append(daily.Labels, p.Branch+" / "+p.Day)
		daily.Values = append(daily.Values, p.Revenue)
	}
	charts = append(charts, daily)

	trend := domain.ChartSeries{
		ID:    "branch_trends",
		Title: "Daily Revenue Trend",
		Kind:  domain.ChartLine,
	}
	for _, p := range analysis.DailyTrend {
		trend.Labels = append(trend.Labels, p.Branch+" / "+p.Date.Format("2006-01-02"))
		trend.Values = append(trend.Values, p.Revenue)
	}
	charts = append(charts, trend)

	monthly := domain.ChartSeries{
		ID:    "monthly_comparison",
		Title: "Monthly Revenue Comparison",
		Kind:  domain.ChartBar,
	}
	for _, p := range analysis.Monthly {
		monthly.Labels = append(monthly.Labels, p.Branch+" / "+time.Month(p.Month).String())
		monthly.Values = append(monthly.Values, p.Revenue)
	}
	charts = append(charts, monthly)

	return charts
}
