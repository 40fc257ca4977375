// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/services"
	"github.com/javajoker/farmfresh/internal/utils"
	"github.com/javajoker/farmfresh/internal/workflow"
)

// respondError maps service errors onto the API's status codes.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var stockErr *services.StockError
	switch {
	case errors.As(err, &stockErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_STOCK",
			i18n.T(lang, i18n.KeyProductOutOfStock, stockErr.Available), stockErr)
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "user")
	case errors.Is(err, services.ErrUserExists):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrOwnProduct):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductOwnOrder), nil)
	case errors.Is(err, services.ErrMixedFarmers):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderMixedFarmers), nil)
	case errors.Is(err, workflow.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// pathID returns the :id parameter, answering 404 itself when it is not a valid ID.
func pathID(c *gin.Context, resource string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.NotFoundResponse(c, resource)
		return "", false
	}
	return id, true
}

// bindAndValidate decodes the JSON body into req and runs the struct validators.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists || userID == "" {
		utils.UnauthorizedResponse(c, "")
		return "", false
	}
	return userID, true
}
