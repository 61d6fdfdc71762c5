package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/apperr"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/report"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/web"
)

const reportsPath = "/admin/reports"

type ReportHandler struct {
	svc      report.Service
	renderer *web.Renderer
	flash    *web.FlashCodec
}

func NewReportHandler(svc report.Service, renderer *web.Renderer, flash *web.FlashCodec) *ReportHandler {
	return &ReportHandler{svc: svc, renderer: renderer, flash: flash}
}

func (h *ReportHandler) RegisterRoutes(router chi.Router) {
	router.Get("/reports", h.handleGet)
	router.Post("/reports", h.handlePost)
}

func (h *ReportHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	switch cmd := decodeReportCommand(r).(type) {
	case generateReport:
		h.generate(w, r, cmd)
	case deleteReport, listReports:
		h.renderList(w, r)
	}
}

func (h *ReportHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	switch cmd := decodeReportCommand(r).(type) {
	case deleteReport:
		h.delete(w, r, cmd)
	case generateReport, listReports:
		h.renderList(w, r)
	}
}

func (h *ReportHandler) generate(w http.ResponseWriter, r *http.Request, cmd generateReport) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if _, err := h.svc.Generate(r.Context(), cmd.StartDate, cmd.EndDate, identity); err != nil {
		log.Warn().Err(err).Str("start", cmd.StartDate).Str("end", cmd.EndDate).Msg("Report generation failed")
		redirectWithError(w, r, h.flash, reportsPath, err)
		return
	}

	redirectWithSuccess(w, r, h.flash, reportsPath, "Report generated successfully!")
}

func (h *ReportHandler) delete(w http.ResponseWriter, r *http.Request, cmd deleteReport) {
	id, err := uuid.FromString(cmd.ID)
	if err != nil {
		redirectWithError(w, r, h.flash, reportsPath, apperr.InvalidErr("Invalid report id"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		log.Warn().Err(err).Stringer("report_id", id).Msg("Report deletion failed")
		redirectWithError(w, r, h.flash, reportsPath, err)
		return
	}

	redirectWithSuccess(w, r, h.flash, reportsPath, "Report deleted successfully!")
}

func (h *ReportHandler) renderList(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load report list")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := web.PageData{
		Title: "Sales Reports",
		Flash: h.flash.Pop(w, r),
		Data:  reports,
	}
	if identity, ok := auth.IdentityFrom(r.Context()); ok {
		data.Identity = &identity
	}
	h.renderer.Render(w, http.StatusOK, "reports", data)
}
