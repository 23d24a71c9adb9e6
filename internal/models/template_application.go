package models

import (
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/types"
)

// TemplateApplication records that a template has been applied to a month.
//
// The composite primary key guarantees that at most one transaction is
// created per template and month. Markers are kept when the template or the
// created transaction is deleted so that a month is never filled twice.
type TemplateApplication struct {
	TemplateID    uuid.UUID   `json:"templateId" gorm:"primaryKey"`
	Month         types.Month `json:"month" gorm:"primaryKey"`
	TransactionID uuid.UUID   `json:"transactionId"`
	Timestamps
}

func (TemplateApplication) Self() string {
	return "Template Application"
}
