// Package handler contains the gin HTTP handlers. Handlers bind input, call
// one service method and render the result; business rules live below.
package handler

import (
	"net/http"

	"bakehouse-backend/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.New(apperr.CodeInternal, "internal error")
	}
	c.JSON(apperr.HTTPStatus(appErr.Code), gin.H{"error": appErr})
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperr.New(apperr.CodeInvalidInput, "invalid %s", name)})
		return primitive.NilObjectID, false
	}
	return id, true
}
