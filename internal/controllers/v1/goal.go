package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/ledger"
	"github.com/pocket-ledger/backend/internal/models"
)

// RegisterGoalRoutes registers the routes for goals with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGoalList)
		r.GET("", GetGoals)
		r.POST("", CreateGoal)
	}

	{
		r.OPTIONS("/progress", OptionsGoalProgress)
		r.GET("/progress", GetGoalProgress)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals [options]
func OptionsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals/progress [options]
func OptionsGoalProgress(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get goals
// @Description	Returns all goals, newest first. The first goal is the active one.
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalListResponse
// @Failure		500	{object}	GoalListResponse
// @Router			/v1/goals [get]
func GetGoals(c *gin.Context) {
	var goals []models.Goal

	err := models.DB.Order("created_at DESC, rowid DESC").Find(&goals).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &e})
		return
	}

	data := make([]Goal, 0, len(goals))
	for _, g := range goals {
		data = append(data, newGoal(g))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: data})
}

// @Summary		Create goal
// @Description	Creates a goal. The new goal becomes the active goal, earlier goals are kept.
// @Tags			Goals
// @Produce		json
// @Success		201		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		500		{object}	GoalResponse
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals [post]
func CreateGoal(c *gin.Context) {
	var editable GoalEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goal, err := editable.model()
	if err == nil {
		err = models.DB.Create(&goal).Error
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	data := newGoal(goal)
	c.JSON(http.StatusCreated, GoalResponse{Data: &data})
}

// @Summary		Get goal progress
// @Description	Returns the progress of the all-time net balance towards the active goal
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalProgressResponse
// @Failure		404	{object}	GoalProgressResponse
// @Failure		500	{object}	GoalProgressResponse
// @Router			/v1/goals/progress [get]
func GetGoalProgress(c *gin.Context) {
	progress, err := ledger.Progress(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalProgressResponse{Error: &e})
		return
	}

	data := newGoalProgress(progress)
	c.JSON(http.StatusOK, GoalProgressResponse{Data: &data})
}
