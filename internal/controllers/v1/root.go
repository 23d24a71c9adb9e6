package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterRoutes registers all v1 routes on the group.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	RegisterCategoryRoutes(r.Group("/categories"))
	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterFixedRoutes(r.Group("/fixed"))
	RegisterGoalRoutes(r.Group("/goals"))
	RegisterMonthRoutes(r.Group("/months"))
	RegisterSummaryRoutes(r.Group("/summary"))
	RegisterImportRoutes(r.Group("/import"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`     // URL of Category collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Fixed        string `json:"fixed" example:"https://example.com/api/v1/fixed"`               // URL of Recurring Template collection endpoint
	Goals        string `json:"goals" example:"https://example.com/api/v1/goals"`               // URL of Goal collection endpoint
	Months       string `json:"months" example:"https://example.com/api/v1/months"`             // URL of Month endpoint
	Summary      string `json:"summary" example:"https://example.com/api/v1/summary/{year}"`    // URL template for the annual summary
	Import       string `json:"import" example:"https://example.com/api/v1/import/csv"`         // URL of CSV import endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Categories:   url + "/categories",
			Transactions: url + "/transactions",
			Fixed:        url + "/fixed",
			Goals:        url + "/goals",
			Months:       url + "/months",
			Summary:      url + "/summary/{year}",
			Import:       url + "/import/csv",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
