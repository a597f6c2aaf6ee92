// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/DongDongii/cce-game-guide/internal/middleware"
	"github.com/DongDongii/cce-game-guide/internal/session"
)

// Auth handles the single-password admin gate. There are no user
// accounts: one shared password, hashed at startup, unlocks a session.
type Auth struct {
	sessions     *session.Store
	passwordHash []byte
}

// NewAuth creates a new Auth handler group. passwordHash is the bcrypt
// hash of the configured admin password.
func NewAuth(sessions *session.Store, passwordHash []byte) *Auth {
	return &Auth{sessions: sessions, passwordHash: passwordHash}
}

// Login checks the submitted password and issues an admin session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)) != nil {
		slog.Warn("admin login rejected", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{IsAdmin: true}); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	slog.Info("admin login", "remote", r.RemoteAddr)
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// Logout destroys the current session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}

// Session reports whether the caller holds an admin session. The admin
// frontend calls this on load instead of trusting local state.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{
		"authenticated": sess != nil && sess.IsAdmin,
	})
}
