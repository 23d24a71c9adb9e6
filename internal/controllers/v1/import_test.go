package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestImportCSV() {
	content := "date,description,amount,category,type\n" +
		"2024-05-01,Salary,2500,,income\n" +
		"2024-05-03,Groceries,45.90,Food,expense\n"

	body, headers := test.MultipartFile(suite.T(), "file", "may.csv", []byte(content))
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Salary", response.Data[0].Description)
	assertDecimal(suite.T(), "45.9", response.Data[1].Amount)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 2)
}

// TestImportCSVAllOrNothing verifies that nothing is imported when one row is invalid.
func (suite *TestSuiteStandard) TestImportCSVAllOrNothing() {
	content := "date,description,amount,category,type\n" +
		"2024-05-01,Salary,2500,,income\n" +
		"2024-05-03,Groceries,-4,Food,expense\n"

	body, headers := test.MultipartFile(suite.T(), "file", "may.csv", []byte(content))
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "line 3")

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)
}

func (suite *TestSuiteStandard) TestImportCSVFileErrors() {
	tests := []struct {
		name     string
		field    string
		filename string
		err      string
	}{
		{"Wrong suffix", "file", "may.json", "this endpoint only supports files of the following types: .csv"},
		{"Wrong field", "upload", "may.csv", "you must send a file to this endpoint"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.MultipartFile(t, tt.field, tt.filename, []byte("date,description,amount,type\n"))
			r := test.Request(t, http.MethodPost, "http://example.com/v1/import/csv", body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}

	suite.T().Run("No body", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, "http://example.com/v1/import/csv", "")
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		assert.Equal(t, "you must send a file to this endpoint", test.DecodeError(t, r.Body.Bytes()))
	})
}

func (suite *TestSuiteStandard) TestImportCSVDBClosed() {
	suite.CloseDB()

	content := "date,description,amount,category,type\n2024-05-01,Salary,2500,,income\n"
	body, headers := test.MultipartFile(suite.T(), "file", "may.csv", []byte(content))
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import/csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
