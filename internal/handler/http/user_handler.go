package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/apperr"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/customer"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/web"
)

const usersPath = "/admin/users"

type UserHandler struct {
	svc      customer.Service
	renderer *web.Renderer
	flash    *web.FlashCodec
}

func NewUserHandler(svc customer.Service, renderer *web.Renderer, flash *web.FlashCodec) *UserHandler {
	return &UserHandler{svc: svc, renderer: renderer, flash: flash}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/users", h.handleGet)
	router.Post("/users", h.handlePost)
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load customer list")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := web.PageData{
		Title: "Customers",
		Flash: h.flash.Pop(w, r),
		Data:  accounts,
	}
	if identity, ok := auth.IdentityFrom(r.Context()); ok {
		data.Identity = &identity
	}
	h.renderer.Render(w, http.StatusOK, "users", data)
}

func (h *UserHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	switch cmd := decodeUserCommand(r).(type) {
	case addUser:
		h.add(w, r, cmd)
	case editUser:
		h.edit(w, r, cmd)
	case archiveUser:
		h.archive(w, r, cmd)
	case listUsers:
		http.Redirect(w, r, usersPath, http.StatusSeeOther)
	}
}

func (h *UserHandler) add(w http.ResponseWriter, r *http.Request, cmd addUser) {
	_, err := h.svc.Add(r.Context(), customer.AddInput{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: cmd.Password,
		Name:     cmd.Name,
		Contact:  cmd.Contact,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Customer add failed")
		redirectWithError(w, r, h.flash, usersPath, err)
		return
	}

	redirectWithSuccess(w, r, h.flash, usersPath, "User added successfully!")
}

func (h *UserHandler) edit(w http.ResponseWriter, r *http.Request, cmd editUser) {
	id, err := uuid.FromString(cmd.ID)
	if err != nil {
		redirectWithError(w, r, h.flash, usersPath, apperr.InvalidErr("Invalid user id"))
		return
	}

	err = h.svc.Edit(r.Context(), id, customer.EditInput{
		Username: cmd.Username,
		Email:    cmd.Email,
		Name:     cmd.Name,
		Contact:  cmd.Contact,
	})
	if err != nil {
		log.Warn().Err(err).Stringer("user_id", id).Msg("Customer edit failed")
		redirectWithError(w, r, h.flash, usersPath, err)
		return
	}

	redirectWithSuccess(w, r, h.flash, usersPath, "User updated successfully!")
}

func (h *UserHandler) archive(w http.ResponseWriter, r *http.Request, cmd archiveUser) {
	id, err := uuid.FromString(cmd.ID)
	if err != nil {
		redirectWithError(w, r, h.flash, usersPath, apperr.InvalidErr("Invalid user id"))
		return
	}

	if err := h.svc.Archive(r.Context(), id); err != nil {
		log.Warn().Err(err).Stringer("user_id", id).Msg("Customer archive failed")
		redirectWithError(w, r, h.flash, usersPath, err)
		return
	}

	redirectWithSuccess(w, r, h.flash, usersPath, "User archived successfully!")
}
