package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/shopspring/decimal"
)

type CategoryEditable struct {
	Name   string          `json:"name" example:"Food"`                        // Name of the category
	Budget decimal.Decimal `json:"budget" example:"200" swaggertype:"number"` // Monthly budget. 0 means the spending is not tracked against a budget
}

func (editable CategoryEditable) model() (models.Category, error) {
	budget, err := money.FromDecimal(editable.Budget)
	if err != nil {
		return models.Category{}, models.Validation(err)
	}

	return models.Category{
		Name:   editable.Name,
		Budget: budget,
	}, nil
}

// Category is the API representation of a Category.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links ResourceLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:   model.Name,
			Budget: model.Budget.Decimal(),
		},
		Links: ResourceLinks{
			Self: link(c, "categories", model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
