package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/shopspring/decimal"
)

type RecurringTemplateEditable struct {
	Amount      decimal.Decimal        `json:"amount" example:"850" swaggertype:"number"` // The amount, must be larger than zero
	Category    string                 `json:"category" example:"Housing"`                // Name of the category. May be empty
	Description string                 `json:"description" example:"Rent"`                // Free text description
	Type        models.TransactionType `json:"type" example:"expense" enums:"income,expense"`
}

func (editable RecurringTemplateEditable) model() (models.RecurringTemplate, error) {
	amount, err := money.FromDecimal(editable.Amount)
	if err != nil {
		return models.RecurringTemplate{}, models.Validation(err)
	}

	return models.RecurringTemplate{
		Amount:      amount,
		Category:    editable.Category,
		Description: editable.Description,
		Type:        editable.Type,
	}, nil
}

// RecurringTemplate is the API representation of a recurring template.
type RecurringTemplate struct {
	models.DefaultModel
	RecurringTemplateEditable
	Links ResourceLinks `json:"links"`
}

func newRecurringTemplate(c *gin.Context, model models.RecurringTemplate) RecurringTemplate {
	return RecurringTemplate{
		DefaultModel: model.DefaultModel,
		RecurringTemplateEditable: RecurringTemplateEditable{
			Amount:      model.Amount.Decimal(),
			Category:    model.Category,
			Description: model.Description,
			Type:        model.Type,
		},
		Links: ResourceLinks{
			Self: link(c, "fixed", model.ID),
		},
	}
}

type RecurringTemplateListResponse struct {
	Data  []RecurringTemplate `json:"data"`                                                          // List of recurring templates
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTemplateResponse struct {
	Data  *RecurringTemplate `json:"data"`                                                          // Data for the recurring template
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ApplyResult is the outcome of applying the recurring templates to a month.
type ApplyResult struct {
	Month        string        `json:"month" example:"2024-05"` // The month the templates were applied to
	Created      int           `json:"created" example:"3"`     // Number of transactions created
	Skipped      int           `json:"skipped" example:"1"`     // Number of templates already applied to the month
	Transactions []Transaction `json:"transactions"`            // The transactions that were created
}

func newApplyResult(c *gin.Context, result ledger.ApplyResult) ApplyResult {
	return ApplyResult{
		Month:        result.Month.String(),
		Created:      result.Created,
		Skipped:      result.Skipped,
		Transactions: newTransactions(c, result.Transactions),
	}
}

type ApplyResponse struct {
	Data  *ApplyResult `json:"data"`                                                              // The result of the application
	Error *string      `json:"error" example:"the month is invalid, did you use YYYY-MM format?"` // The error, if any occurred
}
