package api

import "net/http"

// getStateHandler returns session, basket and quiz in one document.
// @Summary Get full state
// @Tags live
// @Produce json
// @Success 200 {object} stateView
// @Router /state [get]
func (a *API) getStateHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateView(visitFrom(r.Context()).sf))
}

// liveHandler streams state changes for the visitor over WebSocket.
// @Summary Live updates
// @Tags live
// @Description Upgrades to WebSocket; sends the full state now and after every change
// @Router /ws [get]
func (a *API) liveHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := visitFrom(ctx)
	if err := a.hub.Serve(w, r, v.id, newStateView(v.sf)); err != nil {
		a.log.Warn(ctx, "live connection", "visitor", v.id, "error", err)
	}
}
