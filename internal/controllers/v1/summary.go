package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
)

func RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:year", OptionsSummary)
	r.GET("/:year", GetSummary)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Param			year	path	string	true	"The year in YYYY format"
// @Router			/v1/summary/{year} [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get annual summary
// @Description	Returns income, expense and savings of a year together with the expenses per category
// @Tags			Summary
// @Produce		json
// @Success		200		{object}	YearSummaryResponse
// @Failure		400		{object}	YearSummaryResponse
// @Failure		500		{object}	YearSummaryResponse
// @Param			year	path		string	true	"The year in YYYY format"
// @Router			/v1/summary/{year} [get]
func GetSummary(c *gin.Context) {
	summary, err := ledger.Annual(models.DB, c.Param("year"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), YearSummaryResponse{Error: &e})
		return
	}

	data := newYearSummary(summary)
	c.JSON(http.StatusOK, YearSummaryResponse{Data: &data})
}
