package ledger

import (
	"errors"
	"fmt"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNoActiveGoal is returned by Progress when there is no goal or the
// most recent goal does not have a positive target.
var ErrNoActiveGoal = fmt.Errorf("%w active goal with a target amount larger than zero", models.ErrResourceNotFound)

var hundred = decimal.NewFromInt(100)

// GoalProgress compares the all-time net balance with the active goal.
type GoalProgress struct {
	Goal         models.Goal
	TargetAmount money.Amount
	CurrentNet   money.Amount    // All-time income - all-time expense
	Percent      decimal.Decimal // Between 0 and 100, rounded to two decimal places
}

// ActiveGoal returns the most recently created goal.
func ActiveGoal(db *gorm.DB) (models.Goal, error) {
	var goal models.Goal

	err := db.Order("created_at DESC, rowid DESC").First(&goal).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.Goal{}, ErrNoActiveGoal
	}

	return goal, err
}

// NetBalance returns all-time income minus all-time expense.
func NetBalance(db *gorm.DB) (money.Amount, error) {
	var totals []struct {
		Type  models.TransactionType
		Total int64
	}

	err := db.Model(&models.Transaction{}).
		Select("type, SUM(amount) AS total").
		Group("type").
		Scan(&totals).Error
	if err != nil {
		return 0, err
	}

	var net money.Amount
	for _, t := range totals {
		switch t.Type {
		case models.TypeIncome:
			net += money.Amount(t.Total)
		case models.TypeExpense:
			net -= money.Amount(t.Total)
		}
	}

	return net, nil
}

// Progress computes the progress towards the active goal.
func Progress(db *gorm.DB) (GoalProgress, error) {
	var progress GoalProgress

	err := models.InTransaction(db, func(tx *gorm.DB) error {
		goal, err := ActiveGoal(tx)
		if err != nil {
			return err
		}

		if goal.TargetAmount <= 0 {
			return ErrNoActiveGoal
		}

		net, err := NetBalance(tx)
		if err != nil {
			return err
		}

		progress = GoalProgress{
			Goal:         goal,
			TargetAmount: goal.TargetAmount,
			CurrentNet:   net,
			Percent:      Percent(net, goal.TargetAmount),
		}
		return nil
	})

	return progress, err
}

// Percent returns net as a percentage of target, clamped to [0, 100]
// and rounded to two decimal places. target must be positive.
func Percent(net, target money.Amount) decimal.Decimal {
	percent := decimal.NewFromInt(int64(net)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(target)), 2)

	if percent.IsNegative() {
		return decimal.Zero
	}

	if percent.GreaterThan(hundred) {
		return hundred
	}

	return percent
}
