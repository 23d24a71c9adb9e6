package ledger

import (
	"fmt"
	"sync"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// applyMu serializes template application within the process.
// Across processes, the marker primary key rejects duplicates.
var applyMu sync.Mutex

var templatesApplied = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_templates_applied_total",
		Help: "How many recurring templates were considered for a month, partitioned by outcome.",
	},
	[]string{"outcome"},
)

// Metrics are the Prometheus collectors of the ledger.
var Metrics = []prometheus.Collector{
	templatesApplied,
}

// ApplyResult reports what applying the templates to a month did.
type ApplyResult struct {
	Month        types.Month          `json:"month"`
	Created      int                  `json:"created"`      // Number of transactions created
	Skipped      int                  `json:"skipped"`      // Number of templates that had already been applied to the month
	Transactions []models.Transaction `json:"transactions"` // The created transactions
}

// Apply materializes all recurring templates into the month given as YYYY-MM.
func Apply(db *gorm.DB, month string) (ApplyResult, error) {
	m, err := types.ParseMonth(month)
	if err != nil {
		return ApplyResult{}, models.ErrMonthInvalid
	}

	return ApplyMonth(db, m)
}

// ApplyMonth creates one transaction dated on the first day of the month for
// every template that has not been applied to the month yet.
//
// Templates are processed in the order they were created. All writes happen
// in a single database transaction, either every pending template is applied
// or none is. Applying a month again is not an error, already applied
// templates are skipped.
func ApplyMonth(db *gorm.DB, month types.Month) (ApplyResult, error) {
	applyMu.Lock()
	defer applyMu.Unlock()

	result := ApplyResult{
		Month:        month,
		Transactions: make([]models.Transaction, 0),
	}

	err := models.InTransaction(db, func(tx *gorm.DB) error {
		var templates []models.RecurringTemplate
		err := tx.Order("created_at ASC, rowid ASC").Find(&templates).Error
		if err != nil {
			return err
		}

		for _, template := range templates {
			var applied int64
			err := tx.Model(&models.TemplateApplication{}).
				Where("template_id = ? AND month = ?", template.ID, month).
				Count(&applied).Error
			if err != nil {
				return err
			}

			if applied > 0 {
				result.Skipped++
				continue
			}

			transaction := template.Instantiate(month.FirstDay())
			err = tx.Create(&transaction).Error
			if err != nil {
				return fmt.Errorf("could not create transaction for template %s: %w", template.ID, err)
			}

			err = tx.Create(&models.TemplateApplication{
				TemplateID:    template.ID,
				Month:         month,
				TransactionID: transaction.ID,
			}).Error
			if err != nil {
				return err
			}

			result.Created++
			result.Transactions = append(result.Transactions, transaction)
		}

		return nil
	})
	if err != nil {
		return ApplyResult{Month: month, Transactions: make([]models.Transaction, 0)}, err
	}

	templatesApplied.WithLabelValues("created").Add(float64(result.Created))
	templatesApplied.WithLabelValues("skipped").Add(float64(result.Skipped))

	log.Info().
		Str("month", month.String()).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("applied recurring templates")

	return result, nil
}
