package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"number_generator/internal/chart"
	"number_generator/internal/widget"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusGenerated = "generated"
	statusCleared   = "cleared"
	statusParamsSet = "params_set"
	statusThemeSet  = "theme_set"
	statusAutoSet   = "auto_set"

	errGenerate        = "failed to generate numbers"
	errClear           = "failed to clear numbers"
	errSaveSettings    = "failed to save settings"
	errGetState        = "failed to load state"
	errRenderChart     = "failed to render chart"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError answers 400 with the message for validation failures and a
// generic 500 otherwise.
func (h *Handler) serviceError(c *gin.Context, userMsg, logKey string, err error) {
	if widget.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, "session_id", sessionID(c))
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(c.Request.Context(), sessionID(c))
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// SetParamsRequest is the payload of PUT /api/v1/widget/params.
// Omitted fields keep their current value.
type SetParamsRequest struct {
	Min    *int64  `json:"min,omitempty" example:"1"`
	Max    *int64  `json:"max,omitempty" example:"100"`
	Count  *int    `json:"count,omitempty" example:"10"`
	Filter *string `json:"filter,omitempty" example:"even" enums:"all,even,odd"`
}

func (r SetParamsRequest) merge(p widget.Params) (widget.Params, error) {
	if r.Min != nil {
		p.Min = *r.Min
	}
	if r.Max != nil {
		p.Max = *r.Max
	}
	if r.Count != nil {
		p.Count = *r.Count
	}
	if r.Filter != nil {
		f, err := widget.ParseFilter(*r.Filter)
		if err != nil {
			return p, err
		}
		p.Filter = f
	}
	return p, nil
}

// SetThemeRequest is the payload of PUT /api/v1/widget/theme.
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required" example:"dark" enums:"light,dark"`
}

// SetAutoRequest is the payload of PUT /api/v1/widget/auto.
type SetAutoRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"true"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get widget state
// @Tags         widget
// @Produce      json
// @Success      200  {object}  widget.State
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/widget/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "widget_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Generate numbers
// @Description  Draws count numbers in [min, max], keeps those matching the filter and records them.
// @Tags         widget
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, numbers, text, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/widget/generate [post]
// @Security     BearerAuth
func (h *Handler) generate(c *gin.Context) {
	rs, err := h.services.Generator.Generate(c.Request.Context(), sessionID(c))
	if err != nil {
		h.serviceError(c, errGenerate, "widget_generate_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusGenerated, gin.H{"numbers": rs, "text": rs.String()})
}

// @Summary      Clear current numbers
// @Description  History is kept.
// @Tags         widget
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/widget/clear [post]
// @Security     BearerAuth
func (h *Handler) clear(c *gin.Context) {
	if err := h.services.Generator.Clear(c.Request.Context(), sessionID(c)); err != nil {
		h.serviceError(c, errClear, "widget_clear_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusCleared, gin.H{})
}

// @Summary      Set parameters
// @Description  Rejects min > max, count < 0, count above the configured limit and unknown filters.
// @Tags         widget
// @Accept       json
// @Produce      json
// @Param        body  body      SetParamsRequest  true  "Parameters"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/widget/params [put]
// @Security     BearerAuth
func (h *Handler) setParams(c *gin.Context) {
	var req SetParamsRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.Settings.UpdateParams(c.Request.Context(), sessionID(c), req.merge); err != nil {
		h.serviceError(c, errSaveSettings, "widget_set_params_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusParamsSet, gin.H{})
}

// @Summary      Set theme
// @Tags         widget
// @Accept       json
// @Produce      json
// @Param        body  body      SetThemeRequest  true  "Theme"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/widget/theme [put]
// @Security     BearerAuth
func (h *Handler) setTheme(c *gin.Context) {
	var req SetThemeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	t, err := widget.ParseTheme(req.Theme)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.services.Settings.SetTheme(c.Request.Context(), sessionID(c), t); err != nil {
		h.serviceError(c, errSaveSettings, "widget_set_theme_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusThemeSet, gin.H{"theme": t})
}

// @Summary      Toggle theme
// @Tags         widget
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/widget/theme/toggle [post]
// @Security     BearerAuth
func (h *Handler) toggleTheme(c *gin.Context) {
	t, err := h.services.Settings.ToggleTheme(c.Request.Context(), sessionID(c))
	if err != nil {
		h.serviceError(c, errSaveSettings, "widget_toggle_theme_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusThemeSet, gin.H{"theme": t})
}

// @Summary      Enable or disable auto-generate
// @Description  While enabled the server generates every configured period (3s by default).
// @Tags         widget
// @Accept       json
// @Produce      json
// @Param        body  body      SetAutoRequest  true  "Flag"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/widget/auto [put]
// @Security     BearerAuth
func (h *Handler) setAutoGenerate(c *gin.Context) {
	var req SetAutoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.AutoGenerator.SetAutoGenerate(c.Request.Context(), sessionID(c), *req.Enabled); err != nil {
		h.serviceError(c, errSaveSettings, "widget_set_auto_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusAutoSet, gin.H{"enabled": *req.Enabled})
}

// @Summary      Bar chart page
// @Description  One bar per current value, coloured by the session theme.
// @Tags         widget
// @Produce      html
// @Success      200
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/widget/chart [get]
// @Security     BearerAuth
func (h *Handler) chartHTML(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "widget_get_state_failed", err)
		return
	}
	var buf bytes.Buffer
	if err := chart.Bar(&buf, st.Current, st.Theme); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRenderChart, "chart_render_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// @Summary      Bar chart image
// @Description  204 when there are no current numbers.
// @Tags         widget
// @Produce      png
// @Success      200
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/widget/chart.png [get]
// @Security     BearerAuth
func (h *Handler) chartPNG(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "widget_get_state_failed", err)
		return
	}
	var buf bytes.Buffer
	if err := chart.PNG(&buf, st.Current, st.Theme); err != nil {
		if errors.Is(err, chart.ErrEmpty) {
			c.Status(http.StatusNoContent)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRenderChart, "chart_render_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
