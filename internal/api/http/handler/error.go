package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/expense-auth/internal/apperr"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func httpStatus(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidToken:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(httpStatus(apperr.KindOf(err)), ErrorResponse{Error: apperr.PublicMessage(err)})
}
