package ledger_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthlySummary() {
	suite.createTestCategory("Food", "200")
	suite.createTestCategory("Housing", "500")

	suite.createTestTransaction("2024-02-01", "2500", "Salary", "February salary", models.TypeIncome)
	suite.createTestTransaction("2024-02-03", "120.50", "Food", "Groceries", models.TypeExpense)
	suite.createTestTransaction("2024-02-29", "30.25", "Food", "Restaurant", models.TypeExpense)
	suite.createTestTransaction("2024-02-10", "500", "Housing", "Rent", models.TypeExpense)
	suite.createTestTransaction("2024-02-11", "10", "", "Parking", models.TypeExpense)
	suite.createTestTransaction("2024-02-12", "15", "Deleted category", "Old stuff", models.TypeExpense)

	// Outside of the month
	suite.createTestTransaction("2024-01-31", "999", "Food", "January", models.TypeExpense)
	suite.createTestTransaction("2024-03-01", "999", "Food", "March", models.TypeExpense)

	summary, err := ledger.Monthly(models.DB, "2024-02")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), "2024-02", summary.Month.String())
	assert.Equal(suite.T(), suite.amount("2500"), summary.Income)
	assert.Equal(suite.T(), suite.amount("675.75"), summary.Expense)
	assert.Equal(suite.T(), suite.amount("1824.25"), summary.Balance)
	assert.Equal(suite.T(), map[string]money.Amount{
		"Food":               suite.amount("150.75"),
		"Housing":            suite.amount("500"),
		ledger.Uncategorized: suite.amount("25"),
	}, summary.ByCategory)

	require.Len(suite.T(), summary.Budgets, 2)
	assert.Equal(suite.T(), ledger.BudgetStatus{
		Category:  "Food",
		Budget:    suite.amount("200"),
		Spent:     suite.amount("150.75"),
		Remaining: suite.amount("49.25"),
		Over:      false,
	}, summary.Budgets[0])
	assert.Equal(suite.T(), "Housing", summary.Budgets[1].Category)
	assert.False(suite.T(), summary.Budgets[1].Over, "spending exactly the budget is not over budget")
}

func (suite *TestSuiteStandard) TestMonthlySummaryEmpty() {
	summary, err := ledger.Monthly(models.DB, "1999-12")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), money.Amount(0), summary.Income)
	assert.Equal(suite.T(), money.Amount(0), summary.Expense)
	assert.Equal(suite.T(), money.Amount(0), summary.Balance)
	assert.Empty(suite.T(), summary.ByCategory)
	assert.Empty(suite.T(), summary.Budgets)
}

func (suite *TestSuiteStandard) TestMonthlySummaryDeletedCategory() {
	category := suite.createTestCategory("Leisure", "50")
	suite.createTestTransaction("2024-04-05", "20", "Leisure", "Cinema", models.TypeExpense)

	summary, err := ledger.Monthly(models.DB, "2024-04")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), suite.amount("20"), summary.ByCategory["Leisure"])

	require.Nil(suite.T(), models.DB.Delete(&category).Error)

	summary, err = ledger.Monthly(models.DB, "2024-04")
	require.Nil(suite.T(), err)
	assert.NotContains(suite.T(), summary.ByCategory, "Leisure")
	assert.Equal(suite.T(), suite.amount("20"), summary.ByCategory[ledger.Uncategorized])
	assert.Equal(suite.T(), int64(1), suite.countTransactions(), "deleting a category keeps its transactions")
}

func (suite *TestSuiteStandard) TestOverBudget() {
	suite.createTestCategory("Food", "200")
	suite.createTestCategory("Untracked", "0")

	tests := []struct {
		month    string
		expenses []string
		spent    string
		over     bool
	}{
		{"2024-05", []string{"100", "150"}, "250", true},
		{"2024-06", []string{"100", "50"}, "150", false},
	}

	for _, tt := range tests {
		suite.T().Run(tt.month, func(t *testing.T) {
			for _, e := range tt.expenses {
				suite.createTestTransaction(tt.month+"-15", e, "Food", "Groceries", models.TypeExpense)
				suite.createTestTransaction(tt.month+"-15", e, "Untracked", "Something", models.TypeExpense)
			}

			summary, err := ledger.Monthly(models.DB, tt.month)
			require.Nil(t, err)
			assert.Equal(t, suite.amount(tt.spent), summary.ByCategory["Food"])
			assert.Equal(t, tt.over, summary.OverBudget("Food"))

			// Categories without a budget are never over budget
			assert.False(t, summary.OverBudget("Untracked"))
			assert.False(t, summary.OverBudget("Unknown"))
		})
	}
}

func (suite *TestSuiteStandard) TestAnnualSummary() {
	suite.createTestCategory("Food", "200")

	suite.createTestTransaction("2023-01-15", "3000", "Salary", "Salary", models.TypeIncome)
	suite.createTestTransaction("2023-06-15", "100", "Food", "Groceries", models.TypeExpense)
	suite.createTestTransaction("2023-12-31", "50", "", "Gift", models.TypeExpense)
	suite.createTestTransaction("2024-01-01", "75", "Food", "Groceries", models.TypeExpense)

	summary, err := ledger.Annual(models.DB, "2023")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), 2023, summary.Year)
	assert.Equal(suite.T(), suite.amount("3000"), summary.Income)
	assert.Equal(suite.T(), suite.amount("150"), summary.Expense)
	assert.Equal(suite.T(), suite.amount("2850"), summary.Savings)
	assert.Equal(suite.T(), []ledger.CategoryValue{
		{Name: "Food", Value: suite.amount("100")},
		{Name: ledger.Uncategorized, Value: suite.amount("50")},
	}, summary.Categories)
}

func (suite *TestSuiteStandard) TestAnnualSummaryEqualsSumOfMonths() {
	suite.createTestCategory("Food", "200")
	suite.createTestCategory("Housing", "500")

	r := rand.New(rand.NewPCG(7, 11))
	categories := []string{"Food", "Housing", "", "Gone"}

	for i := range 200 {
		month := 1 + r.IntN(12)
		day := 1 + r.IntN(28)
		transactionType := models.TypeExpense
		if i%3 == 0 {
			transactionType = models.TypeIncome
		}

		t := models.Transaction{
			Date:     types.NewDate(2022, time.Month(month), day),
			Amount:   money.Amount(1 + r.IntN(100000)),
			Category: categories[r.IntN(len(categories))],
			Type:     transactionType,
		}
		require.Nil(suite.T(), models.DB.Create(&t).Error)
	}

	annual, err := ledger.AnnualSummaryFor(models.DB, 2022)
	require.Nil(suite.T(), err)

	var income, expense money.Amount
	byCategory := make(map[string]money.Amount)
	for _, month := range types.MonthsOfYear(2022) {
		monthly, err := ledger.MonthlySummaryFor(models.DB, month)
		require.Nil(suite.T(), err)

		income += monthly.Income
		expense += monthly.Expense
		for name, value := range monthly.ByCategory {
			byCategory[name] += value
		}
	}

	assert.Equal(suite.T(), income, annual.Income)
	assert.Equal(suite.T(), expense, annual.Expense)
	assert.Equal(suite.T(), income-expense, annual.Savings)

	for _, c := range annual.Categories {
		assert.Equal(suite.T(), byCategory[c.Name], c.Value, c.Name)
	}
	assert.Len(suite.T(), annual.Categories, len(byCategory))
}

func (suite *TestSuiteStandard) TestAnnualSummaryDeterministicOrder() {
	for _, name := range []string{"Rent", "Fun", "Food"} {
		suite.createTestCategory(name, "0")
	}

	expenses := []struct {
		category string
		amount   string
	}{
		{"Food", "100"},
		{"Food", "200"},
		{"Rent", "300"},
		{"Fun", "50"},
	}

	r := rand.New(rand.NewPCG(1, 2))
	for round := range 3 {
		r.Shuffle(len(expenses), func(i, j int) { expenses[i], expenses[j] = expenses[j], expenses[i] })

		year := 2020 + round
		for _, e := range expenses {
			suite.createTestTransaction(types.NewMonth(year, 3).FirstDay().String(), e.amount, e.category, "", models.TypeExpense)
		}

		summary, err := ledger.AnnualSummaryFor(models.DB, year)
		require.Nil(suite.T(), err)

		names := make([]string, 0, len(summary.Categories))
		for _, c := range summary.Categories {
			names = append(names, c.Name)
		}

		assert.Equal(suite.T(), []string{"Food", "Rent", "Fun"}, names)
		assert.Equal(suite.T(), suite.amount("300"), summary.Categories[0].Value)
		assert.Equal(suite.T(), suite.amount("300"), summary.Categories[1].Value)
	}
}

func (suite *TestSuiteStandard) TestSummaryInvalidPeriod() {
	_, err := ledger.Monthly(models.DB, "2024-00")
	assert.ErrorIs(suite.T(), err, models.ErrMonthInvalid)

	_, err = ledger.Annual(models.DB, "20x4")
	assert.ErrorIs(suite.T(), err, models.ErrYearInvalid)
}

func (suite *TestSuiteStandard) TestSummaryDatabaseError() {
	suite.CloseDB()

	_, err := ledger.Monthly(models.DB, "2024-02")
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)

	_, err = ledger.Annual(models.DB, "2024")
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
