package v1

import (
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

type GoalEditable struct {
	Name         string           `json:"name" example:"Emergency fund"`                     // Name of the goal
	TargetAmount *decimal.Decimal `json:"target_amount" example:"5000" swaggertype:"number"` // The amount to save
	Deadline     string           `json:"deadline" example:"2025-12-31"`                     // Optional deadline in YYYY-MM-DD format. It does not influence the progress
}

func (editable GoalEditable) model() (models.Goal, error) {
	var deadline types.Date
	if editable.Deadline != "" {
		d, err := types.ParseDate(editable.Deadline)
		if err != nil {
			return models.Goal{}, models.ErrDateInvalid
		}
		deadline = d
	}

	if editable.TargetAmount == nil {
		return models.Goal{}, models.ErrGoalTargetMissing
	}

	target, err := money.FromDecimal(*editable.TargetAmount)
	if err != nil {
		return models.Goal{}, models.Validation(err)
	}

	return models.Goal{
		Name:         editable.Name,
		TargetAmount: target,
		Deadline:     deadline,
	}, nil
}

// Goal is the API representation of a savings goal.
type Goal struct {
	models.DefaultModel
	GoalEditable
}

func newGoal(model models.Goal) Goal {
	var deadline string
	if !model.Deadline.IsZero() {
		deadline = model.Deadline.String()
	}

	target := model.TargetAmount.Decimal()

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:         model.Name,
			TargetAmount: &target,
			Deadline:     deadline,
		},
	}
}

type GoalListResponse struct {
	Data  []Goal  `json:"data"`                                                 // List of goals, newest first
	Error *string `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                 // Data for the goal
	Error *string `json:"error" example:"the request body must not be empty"` // The error, if any occurred
}

// GoalProgress is the progress towards the active goal.
type GoalProgress struct {
	Goal         Goal            `json:"goal"`                                             // The active goal
	TargetAmount decimal.Decimal `json:"targetAmount" example:"5000" swaggertype:"number"` // The target amount of the goal
	CurrentNet   decimal.Decimal `json:"currentNet" example:"1250" swaggertype:"number"`   // All-time income minus all-time expense
	Percent      decimal.Decimal `json:"percent" example:"25" swaggertype:"number"`        // Progress in percent, between 0 and 100
}

func newGoalProgress(progress ledger.GoalProgress) GoalProgress {
	return GoalProgress{
		Goal:         newGoal(progress.Goal),
		TargetAmount: progress.TargetAmount.Decimal(),
		CurrentNet:   progress.CurrentNet.Decimal(),
		Percent:      progress.Percent,
	}
}

type GoalProgressResponse struct {
	Data  *GoalProgress `json:"data"`                                                                            // The progress
	Error *string       `json:"error" example:"there is no active goal with a target amount larger than zero"` // The error, if any occurred
}
