package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chethancinemas/cinema-admin/internal/auth"
)

// rememberCookie keeps the "remember me" email across sessions.
const rememberCookie = "adminEmail"

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	IDToken    string `json:"idToken"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// handleLogin resolves an identity (password sign-in, or a platform ID
// token the client already holds, verified with the identity service
// before its claims are trusted) and runs it through the gate. Bad
// credentials and a non-admin identity produce the same generic message.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", "")
		return
	}

	var (
		identity *auth.Identity
		err      error
	)
	if req.IDToken != "" {
		identity, err = a.authn.VerifyToken(r.Context(), req.IDToken)
	} else {
		identity, err = a.authn.SignIn(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		a.log.Info("login rejected", "email", req.Email, "error", err)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), loginRoute)
		return
	}

	gate := auth.NewGate(a.policy)
	if gate.Observe(identity) != auth.StateAuthorized {
		a.log.Info("login denied by identity gate", "uid", identity.UID)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), loginRoute)
		return
	}

	email := identity.Email
	if email == "" {
		email = req.Email
	}
	if err := a.profiles.RecordLogin(r.Context(), identity.UID, email); err != nil {
		a.log.Error("failed to record admin login", "uid", identity.UID, "error", err)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), loginRoute)
		return
	}

	token, err := auth.NewSessionToken(identity.UID, a.sessionSecret, a.sessionValidity)
	if err != nil {
		a.log.Error("failed to sign session token", "uid", identity.UID, "error", err)
		writeError(w, http.StatusInternalServerError, "operation failed", "")
		return
	}

	a.setRememberCookie(w, req.RememberMe, email)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, UID: identity.UID, Email: email})
}

// handleRememberedEmail returns the email remembered by a previous
// "remember me" login, or an empty string.
func (a *API) handleRememberedEmail(w http.ResponseWriter, r *http.Request) {
	email := ""
	if c, err := r.Cookie(rememberCookie); err == nil {
		email = c.Value
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}

func (a *API) setRememberCookie(w http.ResponseWriter, remember bool, email string) {
	cookie := &http.Cookie{
		Name:     rememberCookie,
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.Value = email
		cookie.Expires = time.Now().Add(30 * 24 * time.Hour)
	} else {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}
