package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/events"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestTransaction(t, v1.TransactionEditable{Amount: decimal.NewFromInt(10)}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/transactions", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.TransactionListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
		{
			"DELETE fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodDelete, "http://example.com/v1/transactions/8e2a9a67-7e1b-4a2c-9fd3-2a1f7a4f1c55", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	tests := []struct {
		name        string
		transaction v1.TransactionEditable
		status      int
		err         string
	}{
		{"Expense", v1.TransactionEditable{Date: "2024-05-17", Amount: decimal.RequireFromString("14.03"), Category: "Food", Description: "Groceries", Type: models.TypeExpense}, http.StatusCreated, ""},
		{"Income without category", v1.TransactionEditable{Date: "2024-05-01", Amount: decimal.NewFromInt(2500), Description: "Salary", Type: models.TypeIncome}, http.StatusCreated, ""},
		{"Zero amount", v1.TransactionEditable{Date: "2024-05-17", Amount: decimal.Zero, Type: models.TypeExpense}, http.StatusBadRequest, models.ErrAmountNotPositive.Error()},
		{"Negative amount", v1.TransactionEditable{Date: "2024-05-17", Amount: decimal.NewFromInt(-5), Type: models.TypeExpense}, http.StatusBadRequest, models.ErrAmountNotPositive.Error()},
		{"Amount rounds to zero", v1.TransactionEditable{Date: "2024-05-17", Amount: decimal.RequireFromString("0.001"), Type: models.TypeExpense}, http.StatusBadRequest, models.ErrAmountNotPositive.Error()},
		{"Invalid date", v1.TransactionEditable{Date: "2024-02-30", Amount: decimal.NewFromInt(5), Type: models.TypeExpense}, http.StatusBadRequest, models.ErrDateInvalid.Error()},
		{"Wrong date format", v1.TransactionEditable{Date: "17.05.2024", Amount: decimal.NewFromInt(5), Type: models.TypeExpense}, http.StatusBadRequest, models.ErrDateInvalid.Error()},
		{"Invalid type", v1.TransactionEditable{Date: "2024-05-17", Amount: decimal.NewFromInt(5), Type: "transfer"}, http.StatusBadRequest, models.ErrTransactionTypeInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.transaction)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.err != "" {
				assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
				return
			}

			var response v1.TransactionResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.transaction.Date, response.Data.Date)
			assert.True(t, tt.transaction.Amount.Equal(response.Data.Amount))
			assert.Equal(t, tt.transaction.Category, response.Data.Category)
			assert.Equal(t, tt.transaction.Type, response.Data.Type)
			assert.Nil(t, response.Data.TemplateID)
			assert.Equal(t, "http://example.com/v1/transactions/"+response.Data.ID.String(), response.Data.Links.Self)
		})
	}
}

// TestTransactionsAmountJSONNumber verifies that amounts are numbers in the JSON response.
func (suite *TestSuiteStandard) TestTransactionsAmountJSONNumber() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `{"date": "2024-05-17", "amount": 14.5, "type": "expense"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	suite.Assert().Contains(r.Body.String(), `"amount":14.5`)
}

func (suite *TestSuiteStandard) TestTransactionsList() {
	createTestTransaction(suite.T(), v1.TransactionEditable{Date: "2024-04-30", Amount: decimal.NewFromInt(10), Category: "Food", Description: "Bakery"})
	createTestTransaction(suite.T(), v1.TransactionEditable{Date: "2024-05-01", Amount: decimal.NewFromInt(2500), Description: "May salary", Type: models.TypeIncome})
	createTestTransaction(suite.T(), v1.TransactionEditable{Date: "2024-05-17", Amount: decimal.NewFromInt(40), Category: "Food", Description: "Groceries"})
	createTestTransaction(suite.T(), v1.TransactionEditable{Date: "2024-05-17", Amount: decimal.NewFromInt(15), Category: "Fun", Description: "Cinema"})
	createTestTransaction(suite.T(), v1.TransactionEditable{Date: "2023-12-24", Amount: decimal.NewFromInt(80), Category: "Fun", Description: "Presents"})

	tests := []struct {
		name         string
		query        string
		descriptions []string
		total        int64
	}{
		{"All, newest first", "", []string{"Cinema", "Groceries", "May salary", "Bakery", "Presents"}, 5},
		{"Month", "?month=2024-05", []string{"Cinema", "Groceries", "May salary"}, 3},
		{"Year", "?year=2023", []string{"Presents"}, 1},
		{"Type", "?type=income", []string{"May salary"}, 1},
		{"Category", "?category=Food", []string{"Groceries", "Bakery"}, 2},
		{"Search substring", "?search=SALARY", []string{"May salary"}, 1},
		{"Search glob", "?search=*e*s", []string{"Groceries", "Presents"}, 2},
		{"Limit", "?limit=2", []string{"Cinema", "Groceries"}, 5},
		{"Offset and limit", "?offset=1&limit=2", []string{"Groceries", "May salary"}, 5},
		{"Combined", "?month=2024-05&type=expense&limit=1", []string{"Cinema"}, 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)

			descriptions := make([]string, 0)
			for _, transaction := range response.Data {
				descriptions = append(descriptions, transaction.Description)
			}

			assert.Equal(t, tt.descriptions, descriptions)
			assert.Equal(t, len(tt.descriptions), response.Pagination.Count)
			assert.Equal(t, tt.total, response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsListInvalidFilter() {
	tests := []struct {
		name  string
		query string
	}{
		{"Month", "?month=2024-13"},
		{"Year", "?year=twenty"},
		{"Type", "?type=transfer"},
		{"Offset", "?offset=-1"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(10)})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, transaction.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("there is no transaction matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 0)
}

// countingPublisher counts the published events by type.
type countingPublisher struct {
	deleted atomic.Int32
}

func (p *countingPublisher) Publish(_ context.Context, e events.Event) error {
	if e.Type == events.TransactionDeleted {
		p.deleted.Add(1)
	}
	return nil
}

func (p *countingPublisher) Close() error { return nil }

func (suite *TestSuiteStandard) TestTransactionsDeleteConcurrent() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(10), Description: "Coffee"})

	publisher := &countingPublisher{}
	previous := events.SetPublisher(publisher)
	defer events.SetPublisher(previous)

	// One engine for all requests, test.Request configures global state
	engine := gin.New()
	v1.RegisterRoutes(engine.Group("/v1"))

	var wg sync.WaitGroup
	var deleted, notFound atomic.Int32
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			recorder := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodDelete, "http://example.com/v1/transactions/"+transaction.ID.String(), nil)
			engine.ServeHTTP(recorder, req)

			switch recorder.Code {
			case http.StatusNoContent:
				deleted.Add(1)
			case http.StatusNotFound:
				notFound.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Assert().Equal(int32(1), deleted.Load())
	suite.Assert().Equal(int32(4), notFound.Load())
	suite.Assert().Equal(int32(1), publisher.deleted.Load())
}

func (suite *TestSuiteStandard) TestTransactionsOptions() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(10)})

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, transaction.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, DELETE", r.Header().Get("allow"))
}
