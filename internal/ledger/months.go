package ledger

import (
	"time"

	"github.com/pocket-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// Months returns the months that have transactions, newest first.
// For an empty ledger, the current month is returned.
func Months(db *gorm.DB) ([]types.Month, error) {
	var keys []string

	// Dates are stored as YYYY-MM-DD, the month key is their prefix
	err := db.Raw("SELECT DISTINCT substr(date, 1, 7) AS month FROM transactions ORDER BY month DESC").
		Scan(&keys).Error
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []types.Month{types.MonthOf(time.Now().UTC())}, nil
	}

	months := make([]types.Month, 0, len(keys))
	for _, key := range keys {
		month, err := types.ParseMonth(key)
		if err != nil {
			return nil, err
		}
		months = append(months, month)
	}

	return months, nil
}
