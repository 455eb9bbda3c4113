package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParam reads the 1-based "page" query parameter. Missing,
// malformed, or sub-1 values fall back to the first page instead of
// erroring.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// listEnvelope builds the standard list response: the items under a
// resource-specific key plus prev/next hyperlinks and the total count.
// Page 1 carries no prev link; the last page (and anything past it)
// carries no next link.
func (a *API) listEnvelope(c *gin.Context, key string, items any, page, perPage int, count int64) gin.H {
	body := gin.H{key: items, "count": count}
	if page > 1 {
		body["prev"] = a.pageLink(c, page-1)
	}
	if int64(page*perPage) < count {
		body["next"] = a.pageLink(c, page+1)
	}
	return body
}

func (a *API) pageLink(c *gin.Context, page int) string {
	return fmt.Sprintf("%s%s?page=%d", a.externalBase, c.Request.URL.Path, page)
}
