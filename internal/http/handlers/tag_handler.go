// Personality-tag lookup handler.
//
// GET /tags/personality returns the whole seeded vocabulary. The table
// changes rarely, so the endpoint carries a weak ETag derived from the row
// count and the newest updated_at, and answers 304 on a matching
// If-None-Match.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawpal/pawpal-backend/internal/repo"
)

// ListPersonalityTags godoc
// @ID          listPersonalityTags
// @Summary     Personality tag vocabulary
// @Description Returns all personality tags ordered by name. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Tags
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {object}  map[string]any
// @Header      200  {string}  ETag  "Weak ETag for the current vocabulary"
// @Success     304  {string}  string  "Not Modified"
// @Router      /tags/personality [get]
func (h *Handlers) ListPersonalityTags(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	count, maxTS, err := repo.TagsStats(ctx, h.DB)
	if err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"tags:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	tags, err := repo.ListPersonalityTags(ctx, h.DB)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "items": tags})
}
