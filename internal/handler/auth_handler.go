package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"senateur-site/internal/auth"
	"senateur-site/internal/logger"
	"senateur-site/internal/middleware"
	"senateur-site/internal/view"
)

// AuthHandler holds the dependencies for the authentication handlers.
// The OIDC authenticator is optional; password login always works.
type AuthHandler struct {
	credentials *auth.Credentials
	oidcAuth    *auth.Authenticator
	view        *view.View
	session     *scs.SessionManager
	log         logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(credentials *auth.Credentials, oidcAuth *auth.Authenticator, v *view.View, sm *scs.SessionManager, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		oidcAuth:    oidcAuth,
		view:        v,
		session:     sm,
		log:         log,
	}
}

// loginFormHandler renders the back-office login form.
func (h *AuthHandler) loginFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := map[string]interface{}{
		"Flash":       h.session.PopString(r.Context(), "flash"),
		"OIDCEnabled": h.oidcAuth != nil,
	}
	if err := h.view.Render(w, r, "login.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render login page", Code: http.StatusInternalServerError}
	}
	return nil
}

// loginSubmitHandler checks the submitted credentials and opens an admin
// session. The session token is renewed on privilege change.
func (h *AuthHandler) loginSubmitHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}
	username := r.FormValue("username")
	password := r.FormValue("password")

	if err := h.credentials.Verify(username, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.Info("Rejected login attempt for " + username)
			h.session.Put(r.Context(), "flash", "Identifiants invalides.")
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return nil
		}
		return &middleware.AppError{Error: err, Message: "Login failed", Code: http.StatusInternalServerError}
	}

	if err := h.session.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to open session", Code: http.StatusInternalServerError}
	}
	h.session.Put(r.Context(), middleware.SessionKeySubject, username)
	h.session.Put(r.Context(), middleware.SessionKeyRole, "admin")

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
	return nil
}

// logoutHandler destroys the server-side session.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.session.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to close session", Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

// oidcLoginHandler redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) oidcLoginHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.oidcAuth == nil {
		return &middleware.AppError{Error: errors.New("oidc not configured"), Message: "OIDC login is not available", Code: http.StatusNotFound}
	}
	state, err := randString(16)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to start login", Code: http.StatusInternalServerError}
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.oidcAuth.AuthCodeURL(state), http.StatusFound)
	return nil
}

// oidcCallbackHandler is the redirect URL for the OIDC provider. It handles
// the code exchange and token verification, then opens a server-side session
// for the verified subject.
func (h *AuthHandler) oidcCallbackHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.oidcAuth == nil {
		return &middleware.AppError{Error: errors.New("oidc not configured"), Message: "OIDC login is not available", Code: http.StatusNotFound}
	}

	// Verify the state parameter to prevent CSRF attacks.
	stateCookie, err := r.Cookie("state")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "State cookie not found", Code: http.StatusBadRequest}
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		return &middleware.AppError{Error: errors.New("state mismatch"), Message: "State did not match", Code: http.StatusBadRequest}
	}

	// Exchange the authorization code for an OAuth2 token.
	oauth2Token, err := h.oidcAuth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to exchange token", Code: http.StatusInternalServerError}
	}

	// Extract the ID Token from the OAuth2 token.
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return &middleware.AppError{Error: errors.New("no id_token in oauth2 token"), Message: "Login failed", Code: http.StatusInternalServerError}
	}

	// Verify the ID Token's signature and claims.
	// The OIDC library internally checks the nonce, issuer, audience, and expiry.
	idToken, err := h.oidcAuth.IDTokenVerifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to verify ID token", Code: http.StatusInternalServerError}
	}

	role := "anonymous"
	if h.oidcAuth.IsAdminSubject(idToken.Subject) {
		role = "admin"
	}

	if err := h.session.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to open session", Code: http.StatusInternalServerError}
	}
	h.session.Put(r.Context(), middleware.SessionKeySubject, idToken.Subject)
	h.session.Put(r.Context(), middleware.SessionKeyRole, role)

	if role == "admin" {
		http.Redirect(w, r, "/admin", http.StatusFound)
	} else {
		http.Redirect(w, r, "/", http.StatusFound)
	}
	return nil
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
