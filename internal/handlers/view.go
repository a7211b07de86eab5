package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"number_generator/internal/widget"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

func mustParseTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// viewModel is everything view.html reads. It is derived from widget.State only.
type viewModel struct {
	Params    widget.Params
	Filters   []widget.Filter
	Theme     widget.Theme
	NextTheme widget.Theme
	Palette   widget.Palette
	Auto      bool
	Current   string
	HasValues bool
	History   []string
}

func newViewModel(st widget.State) viewModel {
	history := make([]string, len(st.History))
	for i, rs := range st.History {
		history[i] = rs.String()
	}
	return viewModel{
		Params:    st.Params,
		Filters:   []widget.Filter{widget.FilterAll, widget.FilterEven, widget.FilterOdd},
		Theme:     st.Theme,
		NextTheme: st.Theme.Toggled(),
		Palette:   st.Theme.Palette(),
		Auto:      st.AutoGenerate,
		Current:   st.Current.String(),
		HasValues: len(st.Current) > 0,
		History:   history,
	}
}

// @Summary      Page shell
// @Tags         view
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Palette": widget.ThemeLight.Palette()})
}

// @Summary      Widget view fragment
// @Description  Server-rendered controls, current numbers, chart frame and history.
// @Tags         view
// @Produce      html
// @Success      200
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/widget/view [get]
// @Security     BearerAuth
func (h *Handler) view(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "widget_get_state_failed", err)
		return
	}
	c.HTML(http.StatusOK, "view.html", newViewModel(st))
}
