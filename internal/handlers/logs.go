package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"number_generator/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errActivityFrom  = "bad 'from': expected RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"
	errActivityTo    = "bad 'to': expected RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"
	errActivityRange = "'from' is after 'to'"
	errActivityLoad  = "could not read widget activity"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

var activityLayouts = []string{time.RFC3339, layoutDateTime, layoutDate}

// activityBound parses one end of the range. A bare date used as the upper
// bound covers the whole day.
func activityBound(raw string, upper bool) (time.Time, error) {
	for _, layout := range activityLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if upper && layout == layoutDate {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// activityFilter reads ?from, ?to and ?type. The first return value is the
// message for a 400 response.
func activityFilter(c *gin.Context) (service.LogFilter, string) {
	f := service.LogFilter{Type: strings.ToUpper(strings.TrimSpace(c.Query("type")))}
	var err error
	if raw := c.Query("from"); raw != "" {
		if f.From, err = activityBound(raw, false); err != nil {
			return f, errActivityFrom
		}
	}
	if raw := c.Query("to"); raw != "" {
		if f.To, err = activityBound(raw, true); err != nil {
			return f, errActivityTo
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, errActivityRange
	}
	return f, ""
}

// @Summary      Widget activity
// @Description  What the caller did to the widget, oldest first. 'from' and 'to' take RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a bare 'to' date includes that whole day.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Earliest event time"  example(2025-08-01)
// @Param        to    query   string  false  "Latest event time"  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(GENERATE,CLEAR,PARAMS,THEME,AUTO_ON,AUTO_OFF)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	f, bad := activityFilter(c)
	if bad != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": bad})
		return
	}
	events, err := h.services.EventLog.List(c.Request.Context(), sessionID(c), f)
	switch {
	case errors.Is(err, service.ErrRangeInverted):
		c.JSON(http.StatusBadRequest, gin.H{"error": errActivityRange})
		return
	case err != nil:
		if h.log != nil {
			h.log.Errorw("widget_activity_read_failed", "err", err, "session_id", sessionID(c), "filter", f)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errActivityLoad})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
