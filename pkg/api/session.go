package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"nostalgiajars/pkg/identity"
	"nostalgiajars/pkg/otel"
)

type sendCodeRequest struct {
	Phone string `json:"phone"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// getSessionHandler returns the visitor's session.
// @Summary Get session
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /session [get]
func (a *API) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, visitFrom(r.Context()).sf.Session().State())
}

// showPromptHandler opens the login prompt.
// @Summary Show login prompt
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /session/prompt/show [post]
func (a *API) showPromptHandler(w http.ResponseWriter, r *http.Request) {
	s := visitFrom(r.Context()).sf.Session()
	s.ShowLoginPrompt()
	writeJSON(w, http.StatusOK, s.State())
}

// hidePromptHandler closes the login prompt.
// @Summary Hide login prompt
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /session/prompt/hide [post]
func (a *API) hidePromptHandler(w http.ResponseWriter, r *http.Request) {
	s := visitFrom(r.Context()).sf.Session()
	s.HideLoginPrompt()
	writeJSON(w, http.StatusOK, s.State())
}

// sendCodeHandler starts an OTP sign-in.
// @Summary Request one-time code
// @Tags session
// @Accept json
// @Param phone body sendCodeRequest true "Phone"
// @Success 202
// @Failure 400 {string} string
// @Router /login/otp/code [post]
func (a *API) sendCodeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.sendCode")
	defer span.End()

	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := a.codes.SendCode(ctx, req.Phone); err != nil {
		a.loginFailed(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// verifyCodeHandler completes an OTP sign-in and begins the session.
// @Summary Verify one-time code
// @Tags session
// @Accept json
// @Produce json
// @Param creds body verifyCodeRequest true "Phone and code"
// @Success 200 {object} session.State
// @Failure 400 {string} string
// @Router /login/otp/verify [post]
func (a *API) verifyCodeHandler(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.login(w, r, identity.Credentials{Method: identity.OTP, Phone: req.Phone, Code: req.Code})
}

// googleLoginHandler signs the visitor in through the simulated Google provider.
// @Summary Google sign-in
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /login/google [post]
func (a *API) googleLoginHandler(w http.ResponseWriter, r *http.Request) {
	a.login(w, r, identity.Credentials{Method: identity.Google})
}

func (a *API) login(w http.ResponseWriter, r *http.Request, creds identity.Credentials) {
	ctx, span := otel.AddSpan(r.Context(), "api.login")
	defer span.End()

	id, err := a.verifier.Verify(ctx, creds)
	if err != nil {
		a.loginFailed(ctx, w, err)
		return
	}
	v := visitFrom(ctx)
	v.sf.Session().Begin(id.DisplayName)
	a.metrics.Login(string(id.Method))
	a.log.Info(ctx, "session begun", "visitor", v.id, "method", id.Method)
	writeJSON(w, http.StatusOK, v.sf.Session().State())
}

func (a *API) loginFailed(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidPhone),
		errors.Is(err, identity.ErrInvalidCode),
		errors.Is(err, identity.ErrUnknownMethod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		a.log.Error(ctx, "identity verification", "error", err)
		http.Error(w, "sign-in failed", http.StatusInternalServerError)
	}
}

// logoutHandler ends the session. Logging out twice is harmless.
// @Summary Logout
// @Tags session
// @Produce json
// @Success 200 {object} session.State
// @Router /logout [post]
func (a *API) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s := visitFrom(r.Context()).sf.Session()
	s.End()
	writeJSON(w, http.StatusOK, s.State())
}

// profileHandler greets a signed-in visitor.
// @Summary Profile
// @Tags session
// @Produce json
// @Success 200 {object} profileView
// @Failure 401 {string} string
// @Router /profile [get]
func (a *API) profileHandler(w http.ResponseWriter, r *http.Request) {
	st := visitFrom(r.Context()).sf.Session().State()
	if !st.LoggedIn {
		http.Error(w, "please log in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, profileView{Name: st.Name})
}
