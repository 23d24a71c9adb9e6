// Package ledger implements the operations on the ledger that span more
// than a single model: listing and filtering transactions, applying
// recurring templates to a month, period summaries and goal progress.
package ledger

import (
	"iter"
	"strings"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Filter restricts the transactions returned by Transactions.
// All set fields must match.
type Filter struct {
	Month    string                 // Month key, YYYY-MM
	Year     string                 // Year, YYYY
	Type     models.TransactionType // income or expense
	Category string                 // Exact category name
	Search   string                 // Case insensitive glob on the description, * matches any characters
	Offset   uint
	Limit    int // Values smaller than 1 disable the limit
}

// Transactions returns the transactions matching the filter, newest first.
//
// Transactions on the same date are ordered by creation time, newest first.
// The sequence can be ranged over multiple times, every iteration queries
// the database again. The database must not be used for other queries
// while the sequence is being consumed.
func Transactions(db *gorm.DB, f Filter) iter.Seq2[models.Transaction, error] {
	return func(yield func(models.Transaction, error) bool) {
		query, err := f.query(db)
		if err != nil {
			yield(models.Transaction{}, err)
			return
		}

		rows, err := query.Rows()
		if err != nil {
			yield(models.Transaction{}, err)
			return
		}
		defer rows.Close()

		pattern := f.pattern()
		var skipped uint
		var yielded int

		for rows.Next() {
			var t models.Transaction
			if err := db.ScanRows(rows, &t); err != nil {
				yield(models.Transaction{}, err)
				return
			}

			// Searches cannot be expressed in SQL, paging is done here for them
			if pattern != "" {
				if !glob.Glob(pattern, strings.ToLower(t.Description)) {
					continue
				}

				if skipped < f.Offset {
					skipped++
					continue
				}

				if f.Limit > 0 && yielded >= f.Limit {
					return
				}
			}

			yielded++
			if !yield(t, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(models.Transaction{}, err)
		}
	}
}

// ListTransactions collects all transactions matching the filter.
func ListTransactions(db *gorm.DB, f Filter) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)

	for t, err := range Transactions(db, f) {
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	return transactions, nil
}

// Validate checks the filter for invalid values.
func (f Filter) Validate() error {
	if f.Month != "" {
		if _, err := types.ParseMonth(f.Month); err != nil {
			return models.ErrMonthInvalid
		}
	}

	if f.Year != "" {
		if _, err := types.ParseYear(f.Year); err != nil {
			return models.ErrYearInvalid
		}
	}

	if f.Type != "" && !f.Type.Valid() {
		return models.ErrTransactionTypeInvalid
	}

	return nil
}

func (f Filter) query(db *gorm.DB) (*gorm.DB, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	query := db.Model(&models.Transaction{})

	if f.Month != "" {
		month, _ := types.ParseMonth(f.Month)
		query = inMonths(query, month, month.AddDate(0, 1))
	}

	if f.Year != "" {
		year, _ := types.ParseYear(f.Year)
		start := types.MonthsOfYear(year)[0]
		query = inMonths(query, start, start.AddDate(1, 0))
	}

	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}

	if f.Category != "" {
		query = query.Where("category = ?", strings.TrimSpace(f.Category))
	}

	if f.Search == "" {
		if f.Offset > 0 {
			query = query.Offset(int(f.Offset))
		}

		if f.Limit > 0 {
			query = query.Limit(f.Limit)
		}
	}

	return query.Order("date DESC, created_at DESC, rowid DESC"), nil
}

// pattern returns the glob the lower cased description must match.
// A search without wildcards matches anywhere in the description.
func (f Filter) pattern() string {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return ""
	}

	if !strings.Contains(search, "*") {
		search = "*" + search + "*"
	}

	return search
}

// inMonths restricts the query to transactions dated in [from, to).
// Dates are stored as YYYY-MM-DD text, which sorts chronologically.
func inMonths(query *gorm.DB, from, to types.Month) *gorm.DB {
	return query.Where("date >= ? AND date < ?", from.FirstDay().String(), to.FirstDay().String())
}
