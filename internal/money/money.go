// Package money converts between decimal values at the API boundary and
// integer minor units used for all arithmetic inside the ledger.
package money

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Amount is a monetary value in minor units of the configured currency,
// e.g. cents for EUR.
type Amount int64

var (
	ErrAmountOutOfRange = errors.New("the amount is too large")
	ErrUnknownCurrency  = errors.New("the currency is not a known ISO 4217 code")
)

var (
	mu       sync.RWMutex
	code     = currency.EUR
	minorExp = int32(2)
)

// SetCurrency configures the currency all amounts are denominated in.
// The number of minor unit digits follows the ISO 4217 standard rounding.
func SetCurrency(iso string) error {
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, iso)
	}

	scale, _ := currency.Standard.Rounding(unit)

	mu.Lock()
	defer mu.Unlock()
	code = unit
	minorExp = int32(scale)
	return nil
}

// Currency returns the ISO 4217 code of the configured currency.
func Currency() string {
	mu.RLock()
	defer mu.RUnlock()
	return code.String()
}

// Scale returns the number of minor unit digits of the configured currency.
func Scale() int32 {
	mu.RLock()
	defer mu.RUnlock()
	return minorExp
}

// FromDecimal converts a decimal to minor units.
//
// Digits beyond the minor unit are rounded half away from zero,
// 12.345 EUR becomes 1235.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	minor := d.Round(Scale()).Shift(Scale())

	i := minor.BigInt()
	if !i.IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, d)
	}

	return Amount(i.Int64()), nil
}

// Parse parses a decimal string into minor units.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return FromDecimal(d)
}

// Decimal returns the amount in major units for display.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale())
}

// String formats the amount in major units with all minor digits.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale())
}

// MarshalJSON encodes the amount as a number in major units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON decodes a number or numeric string in major units.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}

	amount, err := FromDecimal(d)
	if err != nil {
		return err
	}

	*a = amount
	return nil
}
