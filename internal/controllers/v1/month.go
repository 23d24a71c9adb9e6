package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonthList)
		r.GET("", GetMonths)
	}

	{
		r.OPTIONS("/:month", OptionsMonth)
		r.GET("/:month", GetMonth)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonthList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get months
// @Description	Returns all months that have transactions, newest first. When there are no transactions, the current month is returned.
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthListResponse
// @Failure		500	{object}	MonthListResponse
// @Router			/v1/months [get]
func GetMonths(c *gin.Context) {
	months, err := ledger.Months(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthListResponse{Error: &e})
		return
	}

	data := make([]string, 0, len(months))
	for _, m := range months {
		data = append(data, m.String())
	}

	c.JSON(http.StatusOK, MonthListResponse{Data: data})
}

// @Summary		Get month summary
// @Description	Returns income, expense and balance of a month together with the expenses per category and the budget status
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthSummaryResponse
// @Failure		400		{object}	MonthSummaryResponse
// @Failure		500		{object}	MonthSummaryResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [get]
func GetMonth(c *gin.Context) {
	summary, err := ledger.Monthly(models.DB, c.Param("month"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthSummaryResponse{Error: &e})
		return
	}

	data := newMonthSummary(summary)
	c.JSON(http.StatusOK, MonthSummaryResponse{Data: &data})
}
