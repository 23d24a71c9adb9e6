package ledger

import (
	"cmp"
	"slices"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// Uncategorized is the category key for expenses without a category or
// with a category that is not in the registry.
const Uncategorized = "uncategorized"

// MonthlySummary is the aggregation of all transactions in a month.
type MonthlySummary struct {
	Month      types.Month
	Income     money.Amount
	Expense    money.Amount
	Balance    money.Amount            // Income - Expense
	ByCategory map[string]money.Amount // Expenses per category
	Budgets    []BudgetStatus          // Status of all categories with a budget, in registry order
}

// BudgetStatus compares the spending in a category with its budget.
type BudgetStatus struct {
	Category  string
	Budget    money.Amount
	Spent     money.Amount
	Remaining money.Amount // Negative when the budget is exceeded
	Over      bool
}

// AnnualSummary is the aggregation of all transactions in a year.
type AnnualSummary struct {
	Year       int
	Income     money.Amount
	Expense    money.Amount
	Savings    money.Amount    // Income - Expense
	Categories []CategoryValue // Expenses per category, largest first
}

// CategoryValue is the total expense for a category.
type CategoryValue struct {
	Name  string
	Value money.Amount
}

// periodTotal is one row of the aggregation query.
type periodTotal struct {
	Type   models.TransactionType
	Bucket string
	Total  int64
}

// Monthly computes the summary for the month given as YYYY-MM.
func Monthly(db *gorm.DB, month string) (MonthlySummary, error) {
	m, err := types.ParseMonth(month)
	if err != nil {
		return MonthlySummary{}, models.ErrMonthInvalid
	}

	return MonthlySummaryFor(db, m)
}

// MonthlySummaryFor computes the summary for a month.
func MonthlySummaryFor(db *gorm.DB, month types.Month) (MonthlySummary, error) {
	summary := MonthlySummary{
		Month:      month,
		ByCategory: make(map[string]money.Amount),
		Budgets:    make([]BudgetStatus, 0),
	}

	// Totals and budgets are read in one transaction so that they are consistent
	err := models.InTransaction(db, func(tx *gorm.DB) error {
		totals, err := aggregate(tx, month, month.AddDate(0, 1))
		if err != nil {
			return err
		}

		for _, t := range totals {
			switch t.Type {
			case models.TypeIncome:
				summary.Income += money.Amount(t.Total)
			case models.TypeExpense:
				summary.Expense += money.Amount(t.Total)
				summary.ByCategory[t.Bucket] += money.Amount(t.Total)
			}
		}

		var categories []models.Category
		err = tx.Where("budget > 0").Order("created_at ASC, rowid ASC").Find(&categories).Error
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(categories))
		for _, c := range categories {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true

			spent := summary.ByCategory[c.Name]
			summary.Budgets = append(summary.Budgets, BudgetStatus{
				Category:  c.Name,
				Budget:    c.Budget,
				Spent:     spent,
				Remaining: c.Budget - spent,
				Over:      spent > c.Budget,
			})
		}

		return nil
	})
	if err != nil {
		return MonthlySummary{}, err
	}

	summary.Balance = summary.Income - summary.Expense
	return summary, nil
}

// OverBudget reports if the spending in the category exceeds its budget.
// Categories without a budget are never over budget.
func (s MonthlySummary) OverBudget(category string) bool {
	for _, b := range s.Budgets {
		if b.Category == category {
			return b.Budget > 0 && b.Spent > b.Budget
		}
	}

	return false
}

// Annual computes the summary for the year given as YYYY.
func Annual(db *gorm.DB, year string) (AnnualSummary, error) {
	y, err := types.ParseYear(year)
	if err != nil {
		return AnnualSummary{}, models.ErrYearInvalid
	}

	return AnnualSummaryFor(db, y)
}

// AnnualSummaryFor computes the summary for a year.
//
// Categories are sorted by value descending, equal values by name ascending.
func AnnualSummaryFor(db *gorm.DB, year int) (AnnualSummary, error) {
	start := types.NewMonth(year, 1)

	totals, err := aggregate(db, start, start.AddDate(1, 0))
	if err != nil {
		return AnnualSummary{}, err
	}

	summary := AnnualSummary{
		Year:       year,
		Categories: make([]CategoryValue, 0),
	}

	byCategory := make(map[string]money.Amount)
	for _, t := range totals {
		switch t.Type {
		case models.TypeIncome:
			summary.Income += money.Amount(t.Total)
		case models.TypeExpense:
			summary.Expense += money.Amount(t.Total)
			byCategory[t.Bucket] += money.Amount(t.Total)
		}
	}

	for name, value := range byCategory {
		summary.Categories = append(summary.Categories, CategoryValue{Name: name, Value: value})
	}

	slices.SortFunc(summary.Categories, func(a, b CategoryValue) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	summary.Savings = summary.Income - summary.Expense
	return summary, nil
}

// aggregate sums the transactions dated in [from, to) by type and category
// bucket in a single query.
func aggregate(db *gorm.DB, from, to types.Month) ([]periodTotal, error) {
	var totals []periodTotal

	err := inMonths(db.Model(&models.Transaction{}), from, to).
		Select(`type,
			CASE WHEN EXISTS (SELECT 1 FROM categories WHERE categories.name = transactions.category AND transactions.category <> '')
				THEN transactions.category
				ELSE ?
			END AS bucket,
			SUM(amount) AS total`, Uncategorized).
		Group("type, bucket").
		Scan(&totals).Error

	return totals, err
}
