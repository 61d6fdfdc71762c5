package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/web"
)

type AuthHandler struct {
	svc           auth.Service
	renderer      *web.Renderer
	flash         *web.FlashCodec
	secureCookies bool
}

func NewAuthHandler(svc auth.Service, renderer *web.Renderer, flash *web.FlashCodec, secureCookies bool) *AuthHandler {
	return &AuthHandler{svc: svc, renderer: renderer, flash: flash, secureCookies: secureCookies}
}

func (h *AuthHandler) RegisterRoutes(router chi.Router) {
	router.Get("/login", h.handleLoginPage)
	router.Post("/login", h.handleLogin)
	router.Post("/logout", h.handleLogout)
}

func (h *AuthHandler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.IdentityFrom(r.Context()); ok {
		http.Redirect(w, r, reportsPath, http.StatusFound)
		return
	}

	h.renderer.Render(w, http.StatusOK, "login", web.PageData{
		Title: "Sign in",
		Flash: h.flash.Pop(w, r),
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	sess, err := h.svc.Login(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("Login failed")
		}
		h.flash.Set(w, web.Flash{Kind: web.FlashError, Message: "Invalid username or password"})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	auth.SetSessionCookie(w, sess, h.secureCookies)
	http.Redirect(w, r, reportsPath, http.StatusSeeOther)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		if sessionID, err := uuid.FromString(cookie.Value); err == nil {
			if err := h.svc.Logout(r.Context(), sessionID); err != nil {
				log.Error().Err(err).Msg("Logout failed")
			}
		}
	}

	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
