package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

func revisionProjections(urls *models.URLBuilder, items []*models.Revision) []models.RevisionProjection {
	projections := make([]models.RevisionProjection, 0, len(items))
	for _, r := range items {
		projections = append(projections, r.Projection(urls))
	}
	return projections
}

func (a *API) listRevisions(c *gin.Context) {
	page := pageParam(c)
	items, count, err := a.revisions.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.listEnvelope(c, "revisions",
		revisionProjections(a.urls, items), page, a.revisions.PerPage(), count))
}

func (a *API) listMachineRevisions(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page := pageParam(c)
	items, count, err := a.revisions.ListByMachine(c.Request.Context(), id, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.listEnvelope(c, "revisions",
		revisionProjections(a.urls, items), page, a.revisions.PerPage(), count))
}

func (a *API) getRevision(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	revision, err := a.revisions.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, revision.Projection(a.urls))
}

func (a *API) createRevision(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in models.RevisionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	revision, err := a.revisions.Create(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", a.urls.Revision(revision.ID))
	c.JSON(http.StatusCreated, revision.Projection(a.urls))
}

func (a *API) updateRevision(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.RevisionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	revision, err := a.revisions.Update(c.Request.Context(), currentUser(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, revision.Projection(a.urls))
}
