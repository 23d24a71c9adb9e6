package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/money"
	"github.com/pocket-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CSVColumns are the columns of a transaction CSV file. The category column
// is optional, the order of the columns does not matter.
var CSVColumns = []string{"date", "description", "amount", "category", "type"}

var requiredCSVColumns = []string{"date", "description", "amount", "type"}

var ErrCSVEmpty = errors.New("the CSV file does not contain a header")

// ParseCSV reads transactions from a CSV file with a header row.
// Errors name the line of the file they occurred on.
func ParseCSV(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, models.Validation(ErrCSVEmpty)
	}
	if err != nil {
		return nil, models.Validation(fmt.Errorf("reading CSV header: %w", err))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if slices.Contains(CSVColumns, name) {
			columns[name] = i
		}
	}

	for _, name := range requiredCSVColumns {
		if _, ok := columns[name]; !ok {
			return nil, models.Validation(fmt.Errorf("the CSV header is missing the %q column", name))
		}
	}

	transactions := make([]models.Transaction, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, models.Validation(fmt.Errorf("reading CSV: %w", err))
		}

		t, err := parseCSVRecord(record, columns)
		if err != nil {
			return nil, models.Validation(fmt.Errorf("line %d: %w", line, err))
		}

		transactions = append(transactions, t)
	}

	return transactions, nil
}

func parseCSVRecord(record []string, columns map[string]int) (models.Transaction, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := types.ParseDate(field("date"))
	if err != nil {
		return models.Transaction{}, models.ErrDateInvalid
	}

	d, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parsing amount %q: %w", field("amount"), err)
	}

	amount, err := money.FromDecimal(d)
	if err != nil {
		return models.Transaction{}, err
	}

	t := models.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    field("category"),
		Description: field("description"),
		Type:        models.TransactionType(strings.ToLower(field("type"))),
	}

	return t, t.Validate()
}

// ImportCSV parses the CSV file and stores all transactions in a single
// database transaction. If any row is invalid, nothing is stored.
func ImportCSV(db *gorm.DB, r io.Reader) ([]models.Transaction, error) {
	transactions, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		return transactions, nil
	}

	err = models.InTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&transactions).Error
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
