package v1

import (
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/shopspring/decimal"
)

// MonthSummary is the summary of all transactions in a month.
type MonthSummary struct {
	Month      string                     `json:"month" example:"2024-05"`                    // The month in YYYY-MM format
	Income     decimal.Decimal            `json:"income" example:"2500" swaggertype:"number"` // Sum of all income
	Expense    decimal.Decimal            `json:"expense" example:"1740.5" swaggertype:"number"`
	Balance    decimal.Decimal            `json:"balance" example:"759.5" swaggertype:"number"`             // Income minus expense
	ByCategory map[string]decimal.Decimal `json:"byCategory" swaggertype:"object,number" example:"Food:240"` // Expenses per category. Expenses without a known category are listed as "uncategorized"
	Budgets    []BudgetStatus             `json:"budgets"`                                                   // Spending compared to the budget for every category with a budget
}

type BudgetStatus struct {
	Category  string          `json:"category" example:"Food"`
	Budget    decimal.Decimal `json:"budget" example:"200" swaggertype:"number"`
	Spent     decimal.Decimal `json:"spent" example:"240" swaggertype:"number"`
	Remaining decimal.Decimal `json:"remaining" example:"-40" swaggertype:"number"` // Negative when the budget is exceeded
	Over      bool            `json:"over" example:"true"`                          // Is the budget exceeded?
}

func newMonthSummary(s ledger.MonthlySummary) MonthSummary {
	byCategory := make(map[string]decimal.Decimal, len(s.ByCategory))
	for name, value := range s.ByCategory {
		byCategory[name] = value.Decimal()
	}

	budgets := make([]BudgetStatus, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		budgets = append(budgets, BudgetStatus{
			Category:  b.Category,
			Budget:    b.Budget.Decimal(),
			Spent:     b.Spent.Decimal(),
			Remaining: b.Remaining.Decimal(),
			Over:      b.Over,
		})
	}

	return MonthSummary{
		Month:      s.Month.String(),
		Income:     s.Income.Decimal(),
		Expense:    s.Expense.Decimal(),
		Balance:    s.Balance.Decimal(),
		ByCategory: byCategory,
		Budgets:    budgets,
	}
}

type MonthSummaryResponse struct {
	Data  *MonthSummary `json:"data"`                                                                             // The summary
	Error *string       `json:"error" example:"could not parse the specified month, did you use YYYY-MM format?"` // The error, if any occurred
}

type MonthListResponse struct {
	Data  []string `json:"data" example:"2024-05,2024-04"` // Months with transactions, newest first
	Error *string  `json:"error"`                          // The error, if any occurred
}

// YearSummary is the summary of all transactions in a year.
type YearSummary struct {
	Year       int             `json:"year" example:"2024"`
	Income     decimal.Decimal `json:"income" example:"30000" swaggertype:"number"`
	Expense    decimal.Decimal `json:"expense" example:"21000" swaggertype:"number"`
	Savings    decimal.Decimal `json:"savings" example:"9000" swaggertype:"number"` // Income minus expense
	Categories []CategoryValue `json:"categories"`                                  // Expenses per category, largest first. Ties are ordered by name
}

type CategoryValue struct {
	Name  string          `json:"name" example:"Housing"`
	Value decimal.Decimal `json:"value" example:"10200" swaggertype:"number"`
}

func newYearSummary(s ledger.AnnualSummary) YearSummary {
	categories := make([]CategoryValue, 0, len(s.Categories))
	for _, c := range s.Categories {
		categories = append(categories, CategoryValue{
			Name:  c.Name,
			Value: c.Value.Decimal(),
		})
	}

	return YearSummary{
		Year:       s.Year,
		Income:     s.Income.Decimal(),
		Expense:    s.Expense.Decimal(),
		Savings:    s.Savings.Decimal(),
		Categories: categories,
	}
}

type YearSummaryResponse struct {
	Data  *YearSummary `json:"data"`                                                                          // The summary
	Error *string      `json:"error" example:"could not parse the specified year, did you use YYYY format?"` // The error, if any occurred
}
