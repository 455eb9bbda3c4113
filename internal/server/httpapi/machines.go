package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

// idParam parses the :id path segment. Non-numeric ids are treated the
// same as missing resources.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusNotFound, "resource not found")
		return 0, false
	}
	return id, true
}

func (a *API) listMachines(c *gin.Context) {
	page := pageParam(c)
	items, count, err := a.machines.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.listEnvelope(c, "machines",
		a.machineProjections(c, items), page, a.machines.PerPage(), count))
}

// machineProjections renders a page of machines with their child
// counts. Count lookups that fail leave zeros rather than failing the
// whole page.
func (a *API) machineProjections(c *gin.Context, items []*models.Machine) []models.MachineProjection {
	projections := make([]models.MachineProjection, 0, len(items))
	for _, m := range items {
		revCount, comCount, err := a.machines.Counts(c.Request.Context(), m.ID)
		if err != nil {
			revCount, comCount = 0, 0
		}
		projections = append(projections, m.Projection(a.urls, revCount, comCount))
	}
	return projections
}

func (a *API) getMachine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	machine, revCount, comCount, err := a.machines.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, machine.Projection(a.urls, revCount, comCount))
}

func (a *API) createMachine(c *gin.Context) {
	var in models.MachineInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	machine, err := a.machines.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", a.urls.Machine(machine.ID))
	c.JSON(http.StatusCreated, machine.Projection(a.urls, 0, 0))
}

func (a *API) updateMachine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch models.MachinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	machine, err := a.machines.Update(c.Request.Context(), currentUser(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	revCount, comCount, err := a.machines.Counts(c.Request.Context(), id)
	if err != nil {
		revCount, comCount = 0, 0
	}
	c.JSON(http.StatusOK, machine.Projection(a.urls, revCount, comCount))
}

func (a *API) listUserMachines(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page := pageParam(c)
	items, count, err := a.machines.ListByUser(c.Request.Context(), id, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.listEnvelope(c, "machines",
		a.machineProjections(c, items), page, a.machines.PerPage(), count))
}
