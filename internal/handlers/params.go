package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vetclinic-admin-server/internal/store"
	"vetclinic-admin-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// pageFromQuery reads the page and limit query parameters.
func pageFromQuery(c *gin.Context) store.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return store.Page{Page: page, Limit: limit}.Normalize()
}

// idParam validates that the named path parameter is a UUID. It writes a 400
// response and returns false otherwise.
func idParam(c *gin.Context, name, what string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		utils.BadRequest(c, fmt.Sprintf("Invalid %s ID format", what))
		return "", false
	}
	return raw, true
}

// parseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", raw)
}

// respondStoreError maps store errors onto the response envelope.
func respondStoreError(c *gin.Context, what string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(c, what+" not found")
		return
	}
	utils.InternalServerError(c, err.Error())
}
