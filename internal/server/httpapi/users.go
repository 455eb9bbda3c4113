package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) getUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, machineCount, err := a.users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Projection(a.urls, machineCount))
}
