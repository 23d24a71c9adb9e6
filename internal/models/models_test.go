package models_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/pocket-ledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestValidationErrorsAreValidation() {
	for _, err := range []error{
		models.ErrAmountNotPositive,
		models.ErrTransactionTypeInvalid,
		models.ErrDateInvalid,
		models.ErrMonthInvalid,
		models.ErrYearInvalid,
		models.ErrCategoryNameEmpty,
		models.ErrBudgetNegative,
		models.ErrGoalAmountNegative,
		models.ErrGoalTargetMissing,
	} {
		assert.ErrorIs(suite.T(), err, models.ErrValidation, err.Error())
		assert.NotErrorIs(suite.T(), err, models.ErrResourceNotFound)
	}

	wrapped := models.Validation(errors.New("strconv.ParseInt: parsing \"x\": invalid syntax"))
	assert.ErrorIs(suite.T(), wrapped, models.ErrValidation)
	assert.Nil(suite.T(), models.Validation(nil))
	assert.Equal(suite.T(), models.ErrDateInvalid, models.Validation(models.ErrDateInvalid))
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	valid := models.Transaction{
		Amount: 1500,
		Date:   types.NewDate(2024, time.March, 3),
		Type:   models.TypeExpense,
	}

	tests := []struct {
		name   string
		mutate func(*models.Transaction)
		err    error
	}{
		{"Valid", func(*models.Transaction) {}, nil},
		{"Zero amount", func(t *models.Transaction) { t.Amount = 0 }, models.ErrAmountNotPositive},
		{"Negative amount", func(t *models.Transaction) { t.Amount = -100 }, models.ErrAmountNotPositive},
		{"Missing date", func(t *models.Transaction) { t.Date = types.Date{} }, models.ErrDateInvalid},
		{"Unknown type", func(t *models.Transaction) { t.Type = "transfer" }, models.ErrTransactionTypeInvalid},
		{"Empty type", func(t *models.Transaction) { t.Type = "" }, models.ErrTransactionTypeInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transaction := valid
			tt.mutate(&transaction)

			err := models.DB.Create(&transaction).Error
			if tt.err == nil {
				assert.Nil(t, err)
				assert.NotEqual(t, uuid.Nil, transaction.ID)
				return
			}

			assert.ErrorIs(t, err, tt.err)
		})
	}

	var count int64
	assert.Nil(suite.T(), models.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count, "only the valid transaction must be stored")
}

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := models.Transaction{
		Amount:      100,
		Date:        types.NewDate(2024, time.March, 3),
		Type:        models.TypeIncome,
		Category:    "  Salary\t",
		Description: " March  ",
	}

	assert.Nil(suite.T(), models.DB.Create(&transaction).Error)

	var stored models.Transaction
	assert.Nil(suite.T(), models.DB.First(&stored, "id = ?", transaction.ID).Error)
	assert.Equal(suite.T(), "Salary", stored.Category)
	assert.Equal(suite.T(), "March", stored.Description)
	assert.Equal(suite.T(), "2024-03-03", stored.Date.String())
	assert.Nil(suite.T(), stored.TemplateID)
}

func (suite *TestSuiteStandard) TestCategoryValidation() {
	tests := []struct {
		category models.Category
		err      error
	}{
		{models.Category{Name: "Food", Budget: 20000}, nil},
		{models.Category{Name: "Untracked"}, nil},
		{models.Category{Name: "   "}, models.ErrCategoryNameEmpty},
		{models.Category{Name: "Fun", Budget: -1}, models.ErrBudgetNegative},
	}

	for _, tt := range tests {
		err := models.DB.Create(&tt.category).Error
		if tt.err == nil {
			assert.Nil(suite.T(), err)
			assert.Equal(suite.T(), strings.TrimSpace(tt.category.Name), tt.category.Name)
			continue
		}

		assert.ErrorIs(suite.T(), err, tt.err)
		assert.ErrorIs(suite.T(), err, models.ErrValidation)
	}
}

func (suite *TestSuiteStandard) TestRecurringTemplateValidation() {
	err := models.DB.Create(&models.RecurringTemplate{Amount: 0, Type: models.TypeExpense}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)

	err = models.DB.Create(&models.RecurringTemplate{Amount: 100, Type: "weekly"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrTransactionTypeInvalid)

	template := models.RecurringTemplate{Amount: 95000, Type: models.TypeExpense, Category: "Rent", Description: "Flat"}
	assert.Nil(suite.T(), models.DB.Create(&template).Error)

	transaction := template.Instantiate(types.NewMonth(2024, time.May).FirstDay())
	assert.Equal(suite.T(), "2024-05-01", transaction.Date.String())
	assert.Equal(suite.T(), template.Amount, transaction.Amount)
	assert.Equal(suite.T(), "Rent", transaction.Category)
	assert.Equal(suite.T(), "Flat", transaction.Description)
	assert.Equal(suite.T(), models.TypeExpense, transaction.Type)
	assert.Equal(suite.T(), template.ID, *transaction.TemplateID)
}

func (suite *TestSuiteStandard) TestGoalValidation() {
	err := models.DB.Create(&models.Goal{Name: "Car", TargetAmount: -1}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGoalAmountNegative)

	goal := models.Goal{Name: "  Holiday ", TargetAmount: 100000, Deadline: types.NewDate(2025, time.June, 1)}
	assert.Nil(suite.T(), models.DB.Create(&goal).Error)

	var stored models.Goal
	assert.Nil(suite.T(), models.DB.First(&stored, "id = ?", goal.ID).Error)
	assert.Equal(suite.T(), "Holiday", stored.Name)
	assert.Equal(suite.T(), "2025-06-01", stored.Deadline.String())

	// The deadline is optional
	assert.Nil(suite.T(), models.DB.Create(&models.Goal{Name: "Emergency fund", TargetAmount: 500000}).Error)
}

func (suite *TestSuiteStandard) TestTemplateApplicationUnique() {
	marker := models.TemplateApplication{
		TemplateID:    uuid.New(),
		Month:         types.NewMonth(2024, time.January),
		TransactionID: uuid.New(),
	}
	assert.Nil(suite.T(), models.DB.Create(&marker).Error)

	duplicate := marker
	duplicate.TransactionID = uuid.New()
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrTemplateApplicationConflict)

	// Another month for the same template is fine
	other := marker
	other.Month = types.NewMonth(2024, time.February)
	assert.Nil(suite.T(), models.DB.Create(&other).Error)

	var stored models.TemplateApplication
	err = models.DB.First(&stored, "template_id = ? AND month = ?", marker.TemplateID, types.NewMonth(2024, time.February)).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "2024-02", stored.Month.String())
}

func (suite *TestSuiteStandard) TestNotFoundMessage() {
	err := models.DB.First(&models.Category{}, "id = ?", uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no category matching your query", err.Error())

	err = models.DB.First(&models.RecurringTemplate{}, "id = ?", uuid.New()).Error
	assert.Equal(suite.T(), "there is no recurring template matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	err := models.DB.Create(&models.Category{Name: "Food"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)

	err = models.DB.First(&models.Category{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestSeedCategories() {
	created, err := models.SeedCategories(models.DB)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), len(models.DefaultCategories), created)

	var food models.Category
	assert.Nil(suite.T(), models.DB.First(&food, "name = ?", "Food").Error)
	assert.Equal(suite.T(), int64(20000), int64(food.Budget))

	// Seeding only happens for an empty registry
	created, err = models.SeedCategories(models.DB)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, created)
}

func (suite *TestSuiteStandard) TestSelf() {
	assert.Equal(suite.T(), "Category", models.Category{}.Self())
	assert.Equal(suite.T(), "Transaction", models.Transaction{}.Self())
	assert.Equal(suite.T(), "Recurring Template", models.RecurringTemplate{}.Self())
	assert.Equal(suite.T(), "Template Application", models.TemplateApplication{}.Self())
	assert.Equal(suite.T(), "Goal", models.Goal{}.Self())
}

func (suite *TestSuiteStandard) TestConnectBusyTimeout() {
	suite.CloseDB()

	err := models.Connect(test.TmpFile(suite.T()) + "?_pragma=busy_timeout(5000)")
	suite.Require().Nil(err)

	var timeout int
	suite.Require().Nil(models.DB.Raw("PRAGMA busy_timeout").Scan(&timeout).Error)
	suite.Assert().Equal(5000, timeout)
}
