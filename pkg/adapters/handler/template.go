package handler

import (
	"log/slog"
	"net/http"

	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

type TemplateHandler struct {
	service ports.TemplateService
	logger  *slog.Logger
}

func NewTemplateHandler(service ports.TemplateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{service: service, logger: logger}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// Get returns the named template, or the fallback for unknown names.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.service.GetTemplate(r.Context(), r.PathValue("key"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}
