package models

import (
	"strings"

	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// Goal is a savings goal. The most recently created goal is the active one.
type Goal struct {
	DefaultModel
	Name         string       `json:"name"`
	TargetAmount money.Amount `json:"targetAmount"`
	Deadline     types.Date   `json:"deadline" swaggertype:"string" example:"2025-12-31"` // Advisory only, it does not influence progress
}

func (Goal) Self() string {
	return "Goal"
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if g.TargetAmount < 0 {
		return ErrGoalAmountNegative
	}

	return nil
}
