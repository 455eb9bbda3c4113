package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rivalrockets/rivalrockets/internal/common"
)

var statusText = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not found",
	http.StatusInternalServerError: "internal server error",
}

// writeError maps a service error onto an HTTP status and the
// {error, message} body. Unknown errors are reported as 500 without
// leaking their text.
func writeError(c *gin.Context, err error) {
	var ve *common.ValidationError

	switch {
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, common.ErrorEmailTaken),
		errors.Is(err, common.ErrorUsernameTaken):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		respondError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrorInvalidToken),
		errors.Is(err, common.ErrorTokenExpired):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		respondError(c, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, "resource not found")
	default:
		respondError(c, http.StatusInternalServerError, "unexpected error")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": statusText[status], "message": message})
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": statusText[status], "message": message})
}
