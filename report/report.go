// Package report holds the monthly cost-report engine: period
// classification, parameter validation and category aggregation. All
// of it is pure computation over already-fetched data.
package report

import (
	"time"

	"github.com/shahafle/costs-manager/models"
)

// BaseCategories always appear in a report, in this order, even when a
// user has no spending in them. Keeping the shape stable across months
// is part of the report contract.
var BaseCategories = []string{"food", "education", "health", "housing", "sports"}

// IsPastPeriod reports whether (year, month) lies strictly before the
// calendar month of now. Comparison is at whole-month granularity: the
// day and time of now are ignored.
func IsPastPeriod(year, month int, now time.Time) bool {
	requested := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return requested.Before(current)
}

// MonthWindow returns the inclusive bounds of a calendar month, from
// day 1 00:00:00.000 through the last day 23:59:59.999.
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// Aggregate groups costs into the report's category shape. The costs
// slice must already be filtered to the month window and sorted
// ascending by creation time; entry order within a category preserves
// that order. Categories beyond the baseline appear after it, in
// first-seen order.
func Aggregate(costs []models.Cost) []models.CategoryCosts {
	categories := make([]string, 0, len(BaseCategories))
	grouped := make(map[string][]models.ReportEntry, len(BaseCategories))
	for _, category := range BaseCategories {
		categories = append(categories, category)
		grouped[category] = []models.ReportEntry{}
	}

	for _, cost := range costs {
		if _, ok := grouped[cost.Category]; !ok {
			categories = append(categories, cost.Category)
			grouped[cost.Category] = []models.ReportEntry{}
		}
		grouped[cost.Category] = append(grouped[cost.Category], models.ReportEntry{
			Sum:         cost.Sum,
			Description: cost.Description,
			Day:         cost.CreatedAt.Day(),
		})
	}

	result := make([]models.CategoryCosts, 0, len(categories))
	for _, category := range categories {
		result = append(result, models.CategoryCosts{category: grouped[category]})
	}
	return result
}
