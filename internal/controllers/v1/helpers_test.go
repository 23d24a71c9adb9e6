package v1_test

import (
	"net/http"
	"testing"
	"time"

	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestCategory(t *testing.T, c v1.CategoryEditable, expectedStatus ...int) v1.Category {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", c)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CategoryResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return *response.Data
	}

	return v1.Category{}
}

func createTestTransaction(t *testing.T, tr v1.TransactionEditable, expectedStatus ...int) v1.Transaction {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if tr.Date == "" {
		tr.Date = "2024-05-17"
	}

	if tr.Type == "" {
		tr.Type = "expense"
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tr)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.TransactionResponse
	test.DecodeResponse(t, &r, &response)

	// Creation times must differ for the ordering to be deterministic
	time.Sleep(time.Millisecond)

	if r.Code == http.StatusCreated {
		return *response.Data
	}

	return v1.Transaction{}
}

func createTestTemplate(t *testing.T, tr v1.RecurringTemplateEditable, expectedStatus ...int) v1.RecurringTemplate {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if tr.Type == "" {
		tr.Type = "expense"
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/fixed", tr)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RecurringTemplateResponse
	test.DecodeResponse(t, &r, &response)

	time.Sleep(time.Millisecond)

	if r.Code == http.StatusCreated {
		return *response.Data
	}

	return v1.RecurringTemplate{}
}

func createTestGoal(t *testing.T, g v1.GoalEditable, expectedStatus ...int) v1.Goal {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", g)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.GoalResponse
	test.DecodeResponse(t, &r, &response)

	time.Sleep(time.Millisecond)

	if r.Code == http.StatusCreated {
		return *response.Data
	}

	return v1.Goal{}
}

// assertDecimal compares decimals by value, 200 equals 200.00.
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

// target returns a pointer to the decimal value of s.
func target(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
