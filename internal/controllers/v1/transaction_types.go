package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Date        string                 `json:"date" example:"2024-05-17"`                   // Date of the transaction in YYYY-MM-DD format
	Amount      decimal.Decimal        `json:"amount" example:"14.03" swaggertype:"number"` // The amount, must be larger than zero
	Category    string                 `json:"category" example:"Food"`                     // Name of the category. May be empty
	Description string                 `json:"description" example:"Groceries"`             // Free text description
	Type        models.TransactionType `json:"type" example:"expense" enums:"income,expense"`
}

func (editable TransactionEditable) model() (models.Transaction, error) {
	date, err := types.ParseDate(editable.Date)
	if err != nil {
		return models.Transaction{}, models.ErrDateInvalid
	}

	amount, err := money.FromDecimal(editable.Amount)
	if err != nil {
		return models.Transaction{}, models.Validation(err)
	}

	return models.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    editable.Category,
		Description: editable.Description,
		Type:        editable.Type,
	}, nil
}

// Transaction is the API representation of a Transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	TemplateID *uuid.UUID    `json:"templateId" example:"e5ab2d1a-8bca-4ef4-96f8-f6ab2ab4c5ae"` // The recurring template the transaction was created from, if any
	Links      ResourceLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date.String(),
			Amount:      model.Amount.Decimal(),
			Category:    model.Category,
			Description: model.Description,
			Type:        model.Type,
		},
		TemplateID: model.TemplateID,
		Links: ResourceLinks{
			Self: link(c, "transactions", model.ID),
		},
	}
}

func newTransactions(c *gin.Context, transactions []models.Transaction) []Transaction {
	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		data = append(data, newTransaction(c, t))
	}

	return data
}

// TransactionQueryFilter contains the fields that transactions can be filtered with.
type TransactionQueryFilter struct {
	Month    string `form:"month" example:"2024-05"`     // By month, YYYY-MM
	Year     string `form:"year" example:"2024"`         // By year, YYYY
	Type     string `form:"type" example:"expense"`      // By type
	Category string `form:"category" example:"Food"`     // By exact category name
	Search   string `form:"search" example:"groceries*"` // By description, case insensitive, * matches any characters
	Offset   uint   `form:"offset"`                      // The offset of the first transaction returned. Defaults to 0.
	Limit    int    `form:"limit"`                       // Maximum number of transactions to return. Defaults to no limit.
}

func (f TransactionQueryFilter) filter() ledger.Filter {
	return ledger.Filter{
		Month:    f.Month,
		Year:     f.Year,
		Type:     models.TransactionType(f.Type),
		Category: f.Category,
		Search:   f.Search,
		Offset:   f.Offset,
		Limit:    f.Limit,
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
