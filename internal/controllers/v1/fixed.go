package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/events"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterFixedRoutes registers the routes for recurring templates with
// the RouterGroup that is passed.
func RegisterFixedRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFixedList)
		r.GET("", GetFixed)
		r.POST("", CreateFixed)
	}

	// Template with ID
	{
		r.OPTIONS("/:id", OptionsFixedDetail)
		r.DELETE("/:id", DeleteFixed)
	}

	{
		r.OPTIONS("/apply/:month", OptionsFixedApply)
		r.POST("/apply/:month", ApplyFixed)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Templates
// @Success		204
// @Router			/v1/fixed [options]
func OptionsFixedList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/fixed/{id} [options]
func OptionsFixedDetail(c *gin.Context) {
	resourceOptionsDetail[models.RecurringTemplate](c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Templates
// @Success		204
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/fixed/apply/{month} [options]
func OptionsFixedApply(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get recurring templates
// @Description	Returns all recurring templates in the order they were created
// @Tags			Recurring Templates
// @Produce		json
// @Success		200	{object}	RecurringTemplateListResponse
// @Failure		500	{object}	RecurringTemplateListResponse
// @Router			/v1/fixed [get]
func GetFixed(c *gin.Context) {
	var templates []models.RecurringTemplate

	err := models.DB.Order("created_at ASC, rowid ASC").Find(&templates).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTemplateListResponse{Error: &e})
		return
	}

	data := make([]RecurringTemplate, 0, len(templates))
	for _, t := range templates {
		data = append(data, newRecurringTemplate(c, t))
	}

	c.JSON(http.StatusOK, RecurringTemplateListResponse{Data: data})
}

// @Summary		Create recurring template
// @Description	Creates a recurring template. It is applied to a month with POST /v1/fixed/apply/{month}.
// @Tags			Recurring Templates
// @Produce		json
// @Success		201			{object}	RecurringTemplateResponse
// @Failure		400			{object}	RecurringTemplateResponse
// @Failure		500			{object}	RecurringTemplateResponse
// @Param			template	body		RecurringTemplateEditable	true	"Recurring Template"
// @Router			/v1/fixed [post]
func CreateFixed(c *gin.Context) {
	var editable RecurringTemplateEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{Error: &e})
		return
	}

	template, err := editable.model()
	if err == nil {
		err = models.DB.Create(&template).Error
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTemplateResponse{Error: &e})
		return
	}

	data := newRecurringTemplate(c, template)
	c.JSON(http.StatusCreated, RecurringTemplateResponse{Data: &data})
}

// @Summary		Delete recurring template
// @Description	Deletes a recurring template. Transactions it created are kept.
// @Tags			Recurring Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/fixed/{id} [delete]
func DeleteFixed(c *gin.Context) {
	resourceDelete[models.RecurringTemplate](c)
}

// @Summary		Apply recurring templates
// @Description	Creates a transaction on the first day of the month for every recurring template that has not been applied to the month yet.
// @Description	Applying a month multiple times is safe, templates that were already applied are skipped.
// @Tags			Recurring Templates
// @Produce		json
// @Success		200		{object}	ApplyResponse
// @Failure		400		{object}	ApplyResponse
// @Failure		409		{object}	ApplyResponse
// @Failure		500		{object}	ApplyResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/fixed/apply/{month} [post]
func ApplyFixed(c *gin.Context) {
	result, err := ledger.Apply(models.DB, c.Param("month"))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ApplyResponse{Error: &e})
		return
	}

	data := newApplyResult(c, result)
	if result.Created > 0 {
		events.Publish(c.Request.Context(), events.New(events.TemplatesApplied, data))
	}

	c.JSON(http.StatusOK, ApplyResponse{Data: &data})
}
