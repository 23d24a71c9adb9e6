package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/events"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail[models.Transaction](c)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionListResponse
// @Failure		400			{object}	TransactionListResponse
// @Failure		500			{object}	TransactionListResponse
// @Param			month		query		string	false	"Filter by month, YYYY-MM"
// @Param			year		query		string	false	"Filter by year, YYYY"
// @Param			type		query		string	false	"Filter by type, income or expense"
// @Param			category	query		string	false	"Filter by category name"
// @Param			search		query		string	false	"Search the description. Case insensitive, * matches any characters"
// @Param			offset		query		uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of Transactions to return. Defaults to no limit."
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	err := httputil.BindQuery(c, &query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	filter := query.filter()

	// The page and the total are read from the same snapshot
	var transactions []models.Transaction
	var total int64
	err = models.InTransaction(models.DB, func(tx *gorm.DB) error {
		transactions, err = ledger.ListTransactions(tx, filter)
		if err != nil {
			return err
		}

		// The total is counted without paging
		all := filter
		all.Offset = 0
		all.Limit = 0
		for _, err := range ledger.Transactions(tx, all) {
			if err != nil {
				return err
			}
			total++
		}

		return nil
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := newTransactions(c, transactions)
	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: query.Offset,
			Limit:  query.Limit,
			Total:  total,
		},
	})
}

// @Summary		Create transaction
// @Description	Creates a transaction. The amount must be larger than zero, the type either income or expense.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := editable.model()
	if err == nil {
		err = models.DB.Create(&transaction).Error
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(c, transaction)
	events.Publish(c.Request.Context(), events.New(events.TransactionCreated, data))

	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Permanently deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, ok := resourceDelete[models.Transaction](c)
	if !ok {
		return
	}

	events.Publish(c.Request.Context(), events.New(events.TransactionDeleted, newTransaction(c, transaction)))
}
