package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
)

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request. 0 means no limit
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

type ResourceLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The resource itself
}

// link returns the URL of a resource.
func link(c *gin.Context, collection string, id uuid.UUID) string {
	return c.GetString(string(models.DBContextURL)) + "/v1/" + collection + "/" + id.String()
}

// idParam parses the id path parameter and writes an error response if it is invalid.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return uuid.Nil, false
	}

	return id, true
}
