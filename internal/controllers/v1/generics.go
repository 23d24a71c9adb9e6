package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocket-ledger/backend/internal/httputil"
	"github.com/pocket-ledger/backend/internal/models"
	"gorm.io/gorm"
)

type resource interface {
	models.Category | models.Transaction | models.RecurringTemplate | models.Goal
}

// getByID fetches a resource by its ID.
func getByID[R resource](id uuid.UUID) (R, error) {
	var r R
	err := models.DB.First(&r, "id = ?", id).Error
	return r, err
}

// deleteByID permanently deletes a resource and returns it.
//
// Of concurrent deletes for the same id, only one succeeds.
func deleteByID[R resource](id uuid.UUID) (R, error) {
	var r R

	err := models.InTransaction(models.DB, func(tx *gorm.DB) error {
		err := tx.First(&r, "id = ?", id).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&r, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return models.NotFound(result)
		}

		return nil
	})

	return r, err
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a single resource that can only be deleted.
func resourceOptionsDetail[R resource](c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	_, err := getByID[R](id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsDelete(c)
}

// resourceDelete handles an HTTP DELETE request for a single resource.
func resourceDelete[R resource](c *gin.Context) (R, bool) {
	var r R

	id, ok := idParam(c)
	if !ok {
		return r, false
	}

	r, err := deleteByID[R](id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return r, false
	}

	c.Status(http.StatusNoContent)
	return r, true
}
