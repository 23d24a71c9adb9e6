package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/events"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
)

type ImportResponse struct {
	Data  []Transaction `json:"data"`                                                         // The imported transactions
	Error *string       `json:"error" example:"line 3: the amount must be larger than zero"` // The error, if any occurred
}

func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/csv", OptionsImportCSV)
	r.POST("/csv", ImportCSV)
}

// uploadedFile returns the form file and handles potential errors.
func uploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(formFile.Filename), suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	return formFile.Open()
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/csv [options]
func OptionsImportCSV(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import CSV
// @Description	Imports transactions from a CSV file with the header "date,description,amount,category,type".
// @Description	Either all rows are imported or none. The error names the first line that could not be imported.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	ImportResponse
// @Failure		500		{object}	ImportResponse
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/csv [post]
func ImportCSV(c *gin.Context) {
	f, err := uploadedFile(c, ".csv")
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{Error: &e})
		return
	}
	defer f.Close()

	transactions, err := ledger.ImportCSV(models.DB, f)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{Error: &e})
		return
	}

	data := newTransactions(c, transactions)
	for _, t := range data {
		events.Publish(c.Request.Context(), events.New(events.TransactionCreated, t))
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: data})
}
