package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

func commentProjections(urls *models.URLBuilder, items []*models.Comment) []models.CommentProjection {
	projections := make([]models.CommentProjection, 0, len(items))
	for _, cm := range items {
		projections = append(projections, cm.Projection(urls))
	}
	return projections
}

func (a *API) listComments(c *gin.Context) {
	page := pageParam(c)
	items, count, err := a.comments.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.listEnvelope(c, "comments",
		commentProjections(a.urls, items), page, a.comments.PerPage(), count))
}

func (a *API) listMachineComments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page := pageParam(c)
	items, count, err := a.comments.ListByMachine(c.Request.Context(), id, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.listEnvelope(c, "comments",
		commentProjections(a.urls, items), page, a.comments.PerPage(), count))
}

func (a *API) getComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	comment, err := a.comments.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment.Projection(a.urls))
}

func (a *API) createComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in models.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	comment, err := a.comments.Create(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", a.urls.Comment(comment.ID))
	c.JSON(http.StatusCreated, comment.Projection(a.urls))
}
